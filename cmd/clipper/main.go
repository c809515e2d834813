package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clipper"
	clipexec "github.com/fwojciec/clipper/exec"
	clipfs "github.com/fwojciec/clipper/fs"
	"github.com/fwojciec/clipper/gemini"
	"github.com/fwojciec/clipper/goquery"
	"github.com/fwojciec/clipper/htmltomarkdown"
	cliphttp "github.com/fwojciec/clipper/http"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/fwojciec/clipper/readability"
	"github.com/fwojciec/clipper/rod"
	clipslog "github.com/fwojciec/clipper/slog"
	"github.com/fwojciec/clipper/sqlite"
	"github.com/fwojciec/clipper/trafilatura"
	"github.com/fwojciec/clipper/youtube"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; flags and the environment still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stdin is read by "import -".
	Stdin io.Reader

	// Services for end-to-end testing. When set, they replace the ones
	// built from flags.
	ClipService clipper.ClipService
	Extractor   clipper.Extractor

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clipper"),
		kong.Description("Save webpages, videos and social posts as clean text clips"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'clipper --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.LogLevel)
	defer m.Close()

	if command != "extract" {
		clips, err := m.openClipService(cli.DB, stderr)
		if err != nil {
			return err
		}
		deps.Clips = clips
	}

	switch command {
	case "extract", "add", "import":
		deps.Extractor = m.Extractor
		if deps.Extractor == nil {
			extractor, err := m.buildExtractor(&cli.Globals, deps.Logger)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: use --fetcher=http if Chrome or Chromium is not installed")
				return err
			}
			deps.Extractor = extractor
		}
	case "export":
		deps.Writer = clipfs.NewWriter(cli.Export.Dir)
	}

	if command == "add" && cli.Add.CountTokens {
		tokens, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokens
	}

	return kongCtx.Run(deps)
}

func (m *Main) openClipService(path string, stderr io.Writer) (clipper.ClipService, error) {
	if m.ClipService != nil {
		return m.ClipService, nil
	}
	if path == "" {
		path = m.DBPath
	}
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CLIPPER_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewClipService(m.DB), nil
}

// buildExtractor wires the orchestrator and its adapters from the global
// flags. Every adapter is wrapped in its logging decorator.
func (m *Main) buildExtractor(g *Globals, logger *slog.Logger) (clipper.Extractor, error) {
	var fetcher clipper.Fetcher
	switch g.Fetcher {
	case "rod":
		f, err := rod.NewFetcher(rod.WithFetchTimeout(g.FetchTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	default:
		fetcher = cliphttp.NewFetcher(cliphttp.WithTimeout(g.FetchTimeout))
	}
	fetcher = clipslog.NewLoggingFetcher(fetcher, logger)
	m.closers = append(m.closers, fetcher)

	articleName, article := newArticleExtractor(g)

	metadata := clipexec.NewMetadataService(g.YtDlp)
	metadata.Runner.Timeout = g.SubprocessTimeout

	// Transcripts always go over plain HTTP: the watch page must not be
	// rendered by a browser.
	pageFetcher := cliphttp.NewFetcher(cliphttp.WithTimeout(g.FetchTimeout))
	m.closers = append(m.closers, pageFetcher)
	transcripts := youtube.NewTranscriptService(pageFetcher)

	orchestrator := pipeline.NewOrchestrator(pipeline.Config{
		Fetcher:           fetcher,
		ArticleExtractor:  clipslog.NewLoggingArticleExtractor(article, articleName, logger),
		ArticleName:       articleName,
		DOM:               clipslog.NewLoggingArticleExtractor(goquery.NewDOMExtractor(), pipeline.StrategyDOMHeuristic, logger),
		MetadataService:   clipslog.NewLoggingMetadataService(metadata, logger),
		TranscriptService: clipslog.NewLoggingTranscriptService(transcripts, logger),
		SocialProxyHost:   g.SocialProxy,
		Logger:            logger,
	})
	return clipslog.NewLoggingExtractor(orchestrator, logger), nil
}

// newArticleExtractor returns the primary article extractor selected by
// --extractor and the name it reports as extraction_method.
func newArticleExtractor(g *Globals) (string, clipper.ArticleExtractor) {
	switch g.Extractor {
	case "trafilatura":
		return "trafilatura", trafilatura.NewArticleExtractor(nil)
	case "readability":
		return "readability", readability.NewArticleExtractor(htmltomarkdown.NewConverter())
	default:
		e := clipexec.NewArticleExtractor(g.Trafilatura)
		e.Runner.Timeout = g.SubprocessTimeout
		return pipeline.StrategySubprocessArticle, e
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "clipper.db"
	}
	return filepath.Join(home, ".clipper", "clipper.db")
}

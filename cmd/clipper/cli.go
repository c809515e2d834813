package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/clipper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Clips     clipper.ClipService
	Extractor clipper.Extractor
	Tokens    clipper.TokenCounter
	Writer    clipper.ClipWriter
}

// Globals are flags shared by every command. Each can be set from the
// environment or a .env file.
type Globals struct {
	DB                string        `name:"db" env:"CLIPPER_DB" help:"SQLite database path (default ~/.clipper/clipper.db)"`
	Fetcher           string        `enum:"http,rod" default:"http" env:"CLIPPER_FETCHER" help:"Page fetcher: http or rod (headless Chrome)"`
	Extractor         string        `enum:"subprocess,trafilatura,readability" default:"subprocess" env:"CLIPPER_EXTRACTOR" help:"Primary article extractor"`
	Trafilatura       string        `default:"trafilatura" env:"CLIPPER_TRAFILATURA" help:"trafilatura binary for the subprocess extractor"`
	YtDlp             string        `name:"yt-dlp" default:"yt-dlp" env:"CLIPPER_YTDLP" help:"yt-dlp binary for video metadata"`
	SocialProxy       string        `default:"twitframe.com" env:"CLIPPER_SOCIAL_PROXY" help:"Host that renders social posts"`
	FetchTimeout      time.Duration `default:"30s" env:"CLIPPER_FETCH_TIMEOUT" help:"Timeout per page fetch"`
	SubprocessTimeout time.Duration `default:"30s" env:"CLIPPER_SUBPROCESS_TIMEOUT" help:"Timeout per subprocess call"`
	LogLevel          string        `enum:"debug,info,warn,error" default:"warn" env:"CLIPPER_LOG_LEVEL" help:"Log level"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Extract ExtractCmd `cmd:"" help:"Extract a URL and print the result"`
	Add     AddCmd     `cmd:"" help:"Extract a URL and save it as a clip"`
	Import  ImportCmd  `cmd:"" help:"Save every URL listed in a file"`
	List    ListCmd    `cmd:"" help:"List saved clips"`
	Show    ShowCmd    `cmd:"" help:"Show a saved clip"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved clip"`
	Export  ExportCmd  `cmd:"" help:"Write clips as markdown files"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL  string `arg:"" help:"URL to extract"`
	Lang string `short:"l" help:"Preferred transcript language"`
	JSON bool   `help:"Print the result as JSON"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL         string `arg:"" help:"URL to save"`
	User        string `short:"u" required:"" env:"CLIPPER_USER" help:"Owner of the clip"`
	Lang        string `short:"l" help:"Preferred transcript language"`
	AllowBare   bool   `help:"Save the bare link when extraction fails"`
	CountTokens bool   `help:"Record the clip's token count"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File        string  `arg:"" help:"File with one URL per line ('-' for stdin)"`
	User        string  `short:"u" required:"" env:"CLIPPER_USER" help:"Owner of the clips"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent extraction limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain (0 disables)"`
	AllowBare   bool    `help:"Save bare links when extraction fails"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	User  string `short:"u" env:"CLIPPER_USER" help:"Only list clips of this user"`
	Kind  string `short:"k" help:"Only list clips of this kind (webpage, video, social)"`
	Query string `short:"q" help:"Only list clips whose title or content contains this text"`
	Limit int    `short:"n" default:"50" help:"Maximum number of clips"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Clip ID"`
	Full bool   `help:"Show full content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Clip ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Output directory"`
	User string `short:"u" env:"CLIPPER_USER" help:"Only export clips of this user"`
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/bloom"
	"github.com/fwojciec/clipper/pipeline"
)

// dedupFalsePositiveRate bounds how often a distinct URL is mistaken for a
// duplicate within one import.
const dedupFalsePositiveRate = 0.0001

// urlColumnWidth is the widest URL printed in import progress.
const urlColumnWidth = 80

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	urls, err := c.readURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: reading %s: %v\n", c.File, err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to import.")
		return nil
	}

	saver := pipeline.NewSaver(deps.Extractor, deps.Clips,
		pipeline.WithBareFallback(c.AllowBare),
		pipeline.WithSaverLogger(deps.Logger),
	)

	opts := []pipeline.ImporterOption{
		pipeline.WithConcurrency(c.Concurrency),
		pipeline.WithDomainLimiter(pipeline.NewDomainLimiter(c.RPS)),
		pipeline.WithURLFilter(bloom.NewFilter(uint(len(urls)), dedupFalsePositiveRate)),
		pipeline.WithExistingCheck(deps.Clips),
		pipeline.WithImporterLogger(deps.Logger),
	}
	importer := pipeline.NewImporter(saver, opts...)

	fmt.Fprintf(deps.Stdout, "Importing %d URLs\n", len(urls))
	summary, err := importer.Import(deps.Ctx, c.User, urls, func(item pipeline.ImportItem) {
		switch item.Status {
		case pipeline.ImportFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", item.URL, clipper.UserMessage(item.Err))
		case pipeline.ImportDuplicate, pipeline.ImportExisting:
			fmt.Fprintf(deps.Stdout, "  skip %s (%s)\n", truncateURL(item.URL, urlColumnWidth), item.Status)
		default:
			fmt.Fprintf(deps.Stdout, "  %s %s\n", item.Status, truncateURL(item.URL, urlColumnWidth))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: import interrupted: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d saved, %d bare, %d skipped, %d failed\n",
		summary.Counts[pipeline.ImportSaved],
		summary.Counts[pipeline.ImportBare],
		summary.Counts[pipeline.ImportDuplicate]+summary.Counts[pipeline.ImportExisting],
		summary.Counts[pipeline.ImportFailed],
	)
	return nil
}

func (c *ImportCmd) readURLs(deps *Dependencies) ([]string, error) {
	var r io.Reader = deps.Stdin
	if r == nil {
		r = os.Stdin
	}
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return pipeline.ParseURLList(r)
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/clipper"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	res, err := deps.Extractor.Extract(deps.Ctx, &clipper.ExtractionRequest{URL: c.URL, Language: c.Lang})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.UserMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(deps.Stdout, clipper.FormatClip(clipper.NewClip("", c.URL, res), true))
	return nil
}

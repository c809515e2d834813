package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/pipeline"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	saver := pipeline.NewSaver(deps.Extractor, deps.Clips, c.saverOptions(deps)...)

	clip, err := saver.Save(deps.Ctx, c.User, &clipper.ExtractionRequest{URL: c.URL, Language: c.Lang})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.UserMessage(err))
		if !c.AllowBare && bareable(err) {
			fmt.Fprintln(deps.Stderr, "Hint: use --allow-bare to save the link anyway")
		}
		return err
	}

	if failed, _ := clip.Metadata["extraction_failed"].(bool); failed {
		fmt.Fprintf(deps.Stdout, "Saved bare link %s (%s)\n", clip.URL, clip.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Saved %s %q (%s)\n", clip.Kind, clip.Title, clip.ID)
	if clip.Tokens > 0 {
		fmt.Fprintf(deps.Stdout, "  %s\n", formatTokens(clip.Tokens))
	}
	return nil
}

func (c *AddCmd) saverOptions(deps *Dependencies) []pipeline.SaverOption {
	opts := []pipeline.SaverOption{
		pipeline.WithBareFallback(c.AllowBare),
		pipeline.WithSaverLogger(deps.Logger),
	}
	if c.CountTokens && deps.Tokens != nil {
		opts = append(opts, pipeline.WithTokenCounter(deps.Tokens))
	}
	return opts
}

func bareable(err error) bool {
	code := clipper.ErrorCode(err)
	return code == clipper.EFETCH || code == clipper.ECONTENT
}

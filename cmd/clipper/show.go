package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	clip, err := deps.Clips.FindClipByID(deps.Ctx, c.ID)
	if err != nil {
		if clipper.ErrorCode(err) == clipper.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'clipper list' to see saved clips.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, clipper.FormatClip(clip, c.Full))
	return nil
}

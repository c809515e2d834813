package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return clipper.Errorf(clipper.EINVALID, "use --force to confirm deletion")
	}

	clip, err := deps.Clips.FindClipByID(deps.Ctx, c.ID)
	if err != nil {
		if clipper.ErrorCode(err) == clipper.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: clip %q not found. Use 'clipper list' to see saved clips.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	if err := deps.Clips.DeleteClip(deps.Ctx, clip.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted clip %q (%s)\n", clip.Title, clip.URL)
	return nil
}

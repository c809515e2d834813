package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := clipper.ClipFilter{Query: c.Query, Limit: c.Limit}
	if c.User != "" {
		filter.UserID = &c.User
	}
	if c.Kind != "" {
		kind := clipper.ContentKind(c.Kind)
		if !kind.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown kind %q (use webpage, video or social)\n", c.Kind)
			return clipper.Errorf(clipper.EINVALID, "unknown kind %q", c.Kind)
		}
		filter.Kind = &kind
	}

	clips, err := deps.Clips.FindClips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
		return err
	}

	if len(clips) == 0 {
		fmt.Fprintln(deps.Stdout, "No clips found. Use 'clipper add' to save one.")
		return nil
	}

	for _, clip := range clips {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s  %s\n",
			clip.ID, clip.Kind, clipper.Truncate(clip.Title, 60), truncateURL(clip.URL, 80))
	}
	return nil
}

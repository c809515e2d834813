package main

import (
	"fmt"

	"github.com/fwojciec/clipper"
)

// exportPageSize is the number of clips loaded per query during export.
const exportPageSize = 100

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := clipper.ClipFilter{Limit: exportPageSize}
	if c.User != "" {
		filter.UserID = &c.User
	}

	written := 0
	for {
		clips, err := deps.Clips.FindClips(deps.Ctx, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", clipper.ErrorMessage(err))
			return err
		}

		for _, clip := range clips {
			if err := deps.Writer.WriteClip(deps.Ctx, clip); err != nil {
				fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", clip.ID, err)
				return err
			}
			written++
		}

		if len(clips) < exportPageSize {
			break
		}
		filter.Offset += len(clips)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d clips to %s\n", written, c.Dir)
	return nil
}

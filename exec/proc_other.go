//go:build !unix

package exec

import "os/exec"

// killGroup leaves the default cancellation, which kills only the direct child.
func killGroup(cmd *exec.Cmd) {}

//go:build !windows

package runner

import "os/exec"

// hideWindow is a no-op: only Windows distinguishes console children.
func hideWindow(cmd *exec.Cmd) {}

//go:build windows

package resolver

import "os/exec"

// killGroup keeps the default kill; WaitDelay bounds any orphaned pipes.
func killGroup(*exec.Cmd) {}

//go:build unix

package qrender

import "syscall"

// detachedProcAttr starts the renderer in its own session so it outlives the
// caller and ignores the caller's terminal signals.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

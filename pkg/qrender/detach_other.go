//go:build !unix && !windows

package qrender

import "syscall"

func detachedProcAttr() *syscall.SysProcAttr {
	return nil
}

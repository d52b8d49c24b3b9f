//go:build !linux

package netio

import "syscall"

// controlFunc is a no-op outside Linux: TCP_NODELAY/SO_RCVTIMEO tuning
// via golang.org/x/sys/unix is Linux-specific.
func controlFunc(_ *dialConfig) func(string, string, syscall.RawConn) error {
	return func(_, _ string, rc syscall.RawConn) error {
		return rc.Control(func(uintptr) {})
	}
}

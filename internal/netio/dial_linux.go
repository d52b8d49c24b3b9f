//go:build linux

package netio

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlFunc builds the net.Dialer.Control callback that applies
// TCP_NODELAY and SO_RCVTIMEO to the raw socket before it connects.
func controlFunc(cfg *dialConfig) func(string, string, syscall.RawConn) error {
	return func(_, _ string, rc syscall.RawConn) error {
		var sockErr error

		err := rc.Control(func(fd uintptr) {
			if cfg.noDelay {
				sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
				if sockErr != nil {
					return
				}
			}

			if cfg.rcvTimeout > 0 {
				tv := unix.NsecToTimeval(cfg.rcvTimeout.Nanoseconds())
				sockErr = unix.SetsockoptTimeval(int(fd), unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
			}
		})
		if err != nil {
			return err
		}

		return sockErr
	}
}

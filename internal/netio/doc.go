// Package netio opens and tunes the TCP socket a session is built on.
//
// It knows nothing about the Minecraft wire protocol; it exists purely
// so internal/session's constructors take a plain net.Conn without every
// caller having to hand-roll socket tuning (Nagle disabling, an
// SO_RCVTIMEO socket option) themselves.
package netio

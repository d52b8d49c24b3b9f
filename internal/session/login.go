package session

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"time"

	"github.com/dantte-lp/choadra/internal/choadraerr"
	"github.com/dantte-lp/choadra/internal/mojang"
	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/transport"
)

// sharedSecretSize is the length in bytes of the AES-128 shared secret
// the client generates for an online-mode login.
const sharedSecretSize = 16

// LoginObserver receives the wall-clock duration of a login handshake
// once it reaches a terminal reply (LoginSuccess or Disconnect). A nil
// LoginObserver (the default) disables this telemetry.
type LoginObserver interface {
	ObserveLoginDuration(d time.Duration)
}

// LoginSession is a connection that has requested the Login phase. It
// sends LoginStart and then drives the encryption/compression/success
// exchange via Login.
type LoginSession struct {
	conn     *transport.Conn
	observer LoginObserver
}

// Close closes the underlying connection.
func (l *LoginSession) Close() error {
	return l.conn.Close()
}

// Login writes LoginStart{username} and then processes server replies
// until LoginSuccess (returning the Play phase handle), Disconnect
// (returning its reason as a ServerError), or a protocol violation.
// creds may be nil for an offline-mode server that never sends
// EncryptionRequest; joinSession is only invoked if the server does.
func (l *LoginSession) Login(ctx context.Context, username string, creds *Credentials, joinSession JoinSessionFunc) (*PlaySession, error) {
	start := time.Now()

	if err := sendPacket(l.conn, packet.LoginStart{Username: username}); err != nil {
		return nil, err
	}

	encryptionSeen := false

	for {
		reply, err := receivePacket(l.conn, packet.PhaseLogin, packet.Clientbound)
		if err != nil {
			return nil, err
		}

		switch p := reply.(type) {
		case *packet.EncryptionRequest:
			if encryptionSeen {
				return nil, choadraerr.NewServer("login: second EncryptionRequest after encryption already engaged")
			}

			encryptionSeen = true

			if err := l.handleEncryptionRequest(ctx, p, creds, joinSession); err != nil {
				return nil, err
			}

		case *packet.SetCompression:
			l.conn.SetCompressionThreshold(p.Threshold)

		case *packet.LoginSuccess:
			if p.Username != username {
				return nil, choadraerr.NewServer("login: server-returned username does not match client-supplied username")
			}

			l.observeDuration(start)

			return &PlaySession{conn: l.conn, uuid: p.UUID, username: p.Username}, nil

		case *packet.Disconnect:
			l.observeDuration(start)

			return nil, choadraerr.NewServer("login: disconnected: " + p.Reason)

		default:
			return nil, unexpectedPacket("login", reply)
		}
	}
}

// handleEncryptionRequest implements the five numbered steps of the
// login encryption handshake: generate a shared secret, compute and
// join the server-id hash, RSA-encrypt the secret and verify token
// under the server's public key, send EncryptionResponse, and engage
// the cipher on both halves of the connection.
func (l *LoginSession) handleEncryptionRequest(ctx context.Context, req *packet.EncryptionRequest, creds *Credentials, joinSession JoinSessionFunc) error {
	secret := make([]byte, sharedSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return choadraerr.NewIo("generate shared secret", err)
	}

	hash := mojang.ServerIDHash(req.ServerID, secret, req.PublicKey)

	if creds == nil {
		return choadraerr.NewInvalidState("login: server requires encryption but no credentials were supplied")
	}

	if joinSession == nil {
		return choadraerr.NewInvalidState("login: server requires encryption but no join_session collaborator was supplied")
	}

	if err := joinSession(ctx, creds.AccessToken, creds.SelectedProfileID, hash); err != nil {
		return choadraerr.NewHttp("join_session", err)
	}

	pub, err := x509.ParsePKIXPublicKey(req.PublicKey)
	if err != nil {
		return choadraerr.NewRsa("parse server public key", err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return choadraerr.NewRsa("parse server public key", errors.New("public key is not RSA"))
	}

	encryptedSecret, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, secret)
	if err != nil {
		return choadraerr.NewRsa("encrypt shared secret", err)
	}

	encryptedVerifyToken, err := rsa.EncryptPKCS1v15(rand.Reader, rsaPub, req.VerifyToken)
	if err != nil {
		return choadraerr.NewRsa("encrypt verify token", err)
	}

	resp := packet.EncryptionResponse{SharedSecret: encryptedSecret, VerifyToken: encryptedVerifyToken}
	if err := sendPacket(l.conn, resp); err != nil {
		return err
	}

	return l.conn.EngageEncryption(secret)
}

// observeDuration reports the elapsed time since start, if an observer
// is wired.
func (l *LoginSession) observeDuration(start time.Time) {
	if l.observer == nil {
		return
	}

	l.observer.ObserveLoginDuration(time.Since(start))
}

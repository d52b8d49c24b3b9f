package commands

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dantte-lp/choadra/internal/metrics"
	"github.com/dantte-lp/choadra/internal/mojang"
	"github.com/dantte-lp/choadra/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and drop into an interactive play-phase shell",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			reg := prometheus.NewRegistry()
			collector := metrics.NewCollector(reg)

			hs, host, port, err := handshake(ctx, collector)
			if err != nil {
				return err
			}
			defer hs.Close()

			loginSession, err := hs.RequestLogin(host, port)
			if err != nil {
				return fmt.Errorf("request login: %w", err)
			}
			defer loginSession.Close()

			creds, joinSession := loginCollaborators()

			play, err := loginSession.Login(ctx, cfg.Auth.Username, creds, joinSession)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			fmt.Printf("logged in as %s (%s)\n", play.Username(), play.UUID())

			return runShell(ctx, play, reg, collector)
		},
	}

	return cmd
}

// loginCollaborators builds the Credentials/JoinSessionFunc pair Login
// needs, or (nil, nil) for an offline-mode server that never sends
// EncryptionRequest.
func loginCollaborators() (*session.Credentials, session.JoinSessionFunc) {
	if !cfg.Auth.Online {
		return nil, nil
	}

	creds := &session.Credentials{
		AccessToken:       cfg.Auth.AccessToken,
		SelectedProfileID: cfg.Auth.SelectedProfileID,
	}

	client := mojang.NewClient(nil)

	return creds, client.JoinSession
}

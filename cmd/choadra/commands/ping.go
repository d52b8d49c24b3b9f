package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Measure round-trip latency to the server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			hs, host, port, err := handshake(context.Background(), nil)
			if err != nil {
				return err
			}
			defer hs.Close()

			statusSession, err := hs.RequestStatus(host, port)
			if err != nil {
				return fmt.Errorf("request status: %w", err)
			}
			defer statusSession.Close()

			elapsed, err := statusSession.Ping()
			if err != nil {
				return fmt.Errorf("ping: %w", err)
			}

			fmt.Printf("pong in %s\n", elapsed)

			return nil
		},
	}
}

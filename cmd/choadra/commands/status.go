package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Query the server's status document (MOTD, player count, version)",
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

			status, err := statusSession.Status()
			if err != nil {
				return fmt.Errorf("get status: %w", err)
			}

			out, err := formatStatus(status, outputFormat)
			if err != nil {
				return fmt.Errorf("format status: %w", err)
			}

			fmt.Print(out)

			return nil
		},
	}
}

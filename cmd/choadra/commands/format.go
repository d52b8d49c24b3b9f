package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dantte-lp/choadra/internal/packet"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// errUnsupportedFormat is returned when the requested output format is not supported.
var errUnsupportedFormat = errors.New("unsupported output format")

// formatStatus renders a server status document in the requested format.
func formatStatus(status packet.StatusResponse, format string) (string, error) {
	switch format {
	case formatJSON:
		return formatStatusJSON(status)
	case formatTable:
		return formatStatusTable(status), nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
}

func formatStatusTable(s packet.StatusResponse) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Version:\t%s (protocol %d)\n", s.Version.Name, s.Version.Protocol)
	fmt.Fprintf(w, "Players:\t%d/%d\n", s.Players.Online, s.Players.Max)
	fmt.Fprintf(w, "MOTD:\t%s\n", s.Description.Text)

	for _, p := range s.Players.Sample {
		fmt.Fprintf(w, "  Player:\t%s (%s)\n", p.Name, p.ID)
	}

	w.Flush()

	return buf.String()
}

func formatStatusJSON(s packet.StatusResponse) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal status to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

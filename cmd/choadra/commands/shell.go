package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/choadra/internal/metrics"
	"github.com/dantte-lp/choadra/internal/packet"
	"github.com/dantte-lp/choadra/internal/protocol"
	"github.com/dantte-lp/choadra/internal/session"
)

// errDigArgs is returned when "dig" is not given exactly three
// integer coordinates.
var errDigArgs = errors.New("usage: dig <x> <y> <z>")

// shellCommands lists the available commands for the interactive shell help output.
var shellCommands = []struct {
	name string
	desc string
}{
	{"chat <message>", "Send a chat message"},
	{"dig <x> <y> <z>", "Start and finish digging the block at the given position"},
	{"status", "Show the player uuid and username for this session"},
	{"help", "Show this help message"},
	{"exit / quit", "Leave the interactive shell and close the connection"},
}

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Log in and start an interactive play-phase shell with a background metrics listener",
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
}

// runShell drives the interactive REPL and the background Play
// read-loop and metrics listener under one errgroup, so a failure in
// either tears down the whole shell. reg and collector are created by
// the caller before the dial/login sequence, so frame and
// login-duration telemetry from that sequence lands on the same
// registry the metrics listener below exposes.
func runShell(ctx context.Context, play *session.PlaySession, reg *prometheus.Registry, collector *metrics.Collector) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: newMetricsMux(cfg.Metrics.Path, reg),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("metrics listener: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		return srv.Close()
	})

	g.Go(func() error {
		defer cancel()

		return playReadLoop(ctx, play, collector)
	})

	g.Go(func() error {
		defer cancel()

		return runREPL(play)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}

	return nil
}

// newMetricsMux serves the Prometheus handler at path.
func newMetricsMux(path string, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

// playReadLoop drains inbound Play packets in the background: it
// answers KeepAlive, prints chat, and returns when the server
// disconnects.
func playReadLoop(ctx context.Context, play *session.PlaySession, collector *metrics.Collector) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		pkt, err := play.ReadPlayPacket()
		if err != nil {
			return fmt.Errorf("play read loop: %w", err)
		}

		collector.IncPacketsDispatched("play", "inbound", pkt.PacketID())

		switch p := pkt.(type) {
		case *packet.ClientboundKeepAlive:
			if err := play.SendPlayPacket(packet.KeepAlive{ID: p.ID}); err != nil {
				return fmt.Errorf("keep alive: %w", err)
			}
		case *packet.ClientboundChatMessage:
			fmt.Printf("\n<chat> %s\nchoadra> ", p.JSONData)
		case *packet.PlayDisconnect:
			fmt.Printf("\nserver closed the connection: %s\n", p.Reason)

			return nil
		}
	}
}

// runREPL reads shell commands from stdin and dispatches them against
// the live play session. These commands act on a stateful connection
// rather than a stateless RPC client, so they are handled locally
// instead of round-tripping through rootCmd.Execute().
func runREPL(play *session.PlaySession) error {
	printShellBanner()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("choadra> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "exit" || line == "quit":
			return nil
		case line == "help" || line == "?":
			printShellHelp()
		case line == "status":
			fmt.Printf("%s (%s)\n", play.Username(), play.UUID())
		case strings.HasPrefix(line, "chat "):
			if err := play.SendPlayPacket(packet.ChatMessage{Message: strings.TrimPrefix(line, "chat ")}); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
		case strings.HasPrefix(line, "dig "):
			if err := handleDig(play, strings.TrimPrefix(line, "dig ")); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
		case line != "":
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", line)
		}

		fmt.Print("choadra> ")
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	return nil
}

func handleDig(play *session.PlaySession, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return errDigArgs
	}

	coords := make([]int32, 3)

	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %q", errDigArgs, f)
		}

		coords[i] = int32(v)
	}

	pos, err := protocol.NewPosition(coords[0], coords[1], coords[2])
	if err != nil {
		return err
	}

	if err := play.SendPlayPacket(packet.PlayerDigging{Status: packet.DiggingStarted, Location: pos}); err != nil {
		return err
	}

	return play.SendPlayPacket(packet.PlayerDigging{Status: packet.DiggingFinished, Location: pos})
}

// printShellBanner prints a welcome message when the shell starts.
func printShellBanner() {
	fmt.Println("choadra interactive shell. Type 'help' for available commands, 'exit' to quit.")
	fmt.Println()
}

// printShellHelp prints a formatted list of available shell commands.
func printShellHelp() {
	fmt.Println("Available commands:")
	fmt.Println()

	for _, cmd := range shellCommands {
		fmt.Printf("  %-20s %s\n", cmd.name, cmd.desc)
	}

	fmt.Println()
}

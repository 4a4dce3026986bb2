package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/expertsoft/softchat/internal/client"
	"github.com/expertsoft/softchat/internal/config"
	"github.com/expertsoft/softchat/internal/logging"
	"github.com/expertsoft/softchat/internal/tui"
	"github.com/expertsoft/softchat/internal/widget"
)

type options struct {
	endpoint     string
	singleFlight bool
	logFile      string
	logLevel     string
	timeout      time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "softchat",
		Short: "Chat with the Expert Soft assistant from the terminal",
		Long: `softchat opens the chat widget in the terminal and sends every message
to a running softchat backend. Type "exit" or "quit" to leave.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	_ = godotenv.Load()
	defaultEndpoint := client.DefaultEndpoint
	if cfg, err := config.Load(); err == nil && cfg.Client.Endpoint != "" {
		defaultEndpoint = cfg.Client.Endpoint
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", defaultEndpoint, "chat endpoint URL")
	flags.BoolVar(&opts.singleFlight, "single-flight", false, "ignore new messages while a reply is pending")
	flags.StringVar(&opts.logFile, "log-file", defaultLogFile(), "path of the log file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout per message, 0 waits for the server")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	logger, closer, err := logging.SetupFile(opts.logLevel, opts.logFile)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer closer.Close()

	httpClient := &http.Client{Timeout: opts.timeout}
	replier := client.New(opts.endpoint, client.WithHTTPClient(httpClient))
	logger.Info().Str("endpoint", replier.Endpoint()).Bool("single_flight", opts.singleFlight).Msg("starting terminal chat")

	widgetOpts := []widget.Option{widget.WithLogger(logger)}
	if opts.singleFlight {
		widgetOpts = append(widgetOpts, widget.WithSingleFlight())
	}

	err = tui.Run(ctx, replier, "Expert Soft Assistant", widgetOpts...)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "run terminal chat")
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "softchat", "chat.log")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("softchat failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

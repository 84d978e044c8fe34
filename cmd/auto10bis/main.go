package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/orshemtov/auto10bis/internal/app"
	"github.com/orshemtov/auto10bis/internal/browser"
	"github.com/orshemtov/auto10bis/internal/config"
	"github.com/orshemtov/auto10bis/internal/otp"
	"github.com/orshemtov/auto10bis/pkg/tenbis"
)

var (
	flagEnvFile  string
	flagDryRun   bool
	flagHeadless bool
	flagDebug    bool
)

func main() {
	root := &cobra.Command{
		Use:           "auto10bis",
		Short:         "Automated recurring voucher purchase for 10bis",
		Long:          "auto10bis logs into 10bis, reads the spending-budget report, and purchases a voucher when the remaining monthly and daily balances cover its price.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVar(&flagEnvFile, "env-file", "", "path to an env file (defaults to ./.env when present)")
	root.Flags().BoolVar(&flagDryRun, "dry-run", false, "add the item to the cart but stop before checkout")
	root.Flags().BoolVar(&flagHeadless, "headless", true, "run the browser without a visible window")
	root.Flags().BoolVar(&flagDebug, "debug", false, "log at debug level")

	if err := root.Execute(); err != nil {
		logger := newLogger(flagDebug)
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(flagEnvFile)
	if err != nil {
		return err
	}

	// Flags override env when set explicitly.
	if cmd.Flags().Changed("dry-run") {
		settings.DryRun = flagDryRun
	}
	if cmd.Flags().Changed("headless") {
		settings.Headless = flagHeadless
	}
	if cmd.Flags().Changed("debug") {
		settings.Debug = flagDebug
	}

	logger := newLogger(settings.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if session, err := tenbis.LoadSession(settings.SessionFile()); err == nil {
		logger.Debug("Found session metadata",
			"email", session.Email,
			"authenticated_at", session.AuthenticatedAt)
	}

	b, err := browser.Open(&browser.Options{
		UserDataDir: settings.UserDataDir,
		Headless:    settings.Headless,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("Browser shutdown incomplete", "error", err)
		}
	}()

	var codeSource otp.Provider = otp.NewPrompt(nil, nil)
	if settings.OTPInboxURL != "" {
		codeSource = otp.NewInbox(settings.OTPInboxURL)
		logger.Debug("Using inbox one-time-code source", "url", settings.OTPInboxURL)
	}

	client, err := tenbis.NewClient(&tenbis.ClientOptions{
		Page:           b.Page(),
		Logger:         logger,
		OTP:            codeSource,
		ScreenshotsDir: settings.ScreenshotsDir,
		OrdersDir:      settings.OrdersDir,
		SessionFile:    settings.SessionFile(),
		SentryDSN:      settings.SentryDSN,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	if err := app.New(settings, client, b.Page(), logger).Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Interrupted, shutting down")
			return nil
		}
		return err
	}

	return nil
}

// newLogger builds the stderr console logger: millisecond timestamps,
// INFO threshold unless debug is enabled.
func newLogger(debug bool) *zerologLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05.000",
	}

	log := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &zerologLogger{log: log}
}

// zerologLogger adapts zerolog to the client's Logger interface.
type zerologLogger struct {
	log zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *zerologLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

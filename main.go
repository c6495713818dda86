package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// these variables are populated by Goreleaser when releasing
	version = "unknown"
	commit  = "-dirty-"
	date    = time.Now().Format("2006-01-02")

	appName     = "steve-reporting"
	appLongName = "Reporting on EV charging transactions and their meter values"

	// envPrefix is the global prefix to use for the keys in environment variables
	envPrefix = "STEVE"
)

func main() {
	ctx, stop, app := newApp()
	defer stop()
	err := app.RunContext(ctx, os.Args)
	// If required flags aren't set, it will return with error before we could set up logging
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() (context.Context, context.CancelFunc, *cli.App) {
	app := &cli.App{
		Name:    appName,
		Usage:   appLongName,
		Version: fmt.Sprintf("%s, revision=%s, date=%s", version, commit, date),

		EnableBashCompletion: true,

		Before: setupLogging,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "log-level", Aliases: []string{"v"}, EnvVars: envVars("LOG_LEVEL"),
				Usage: "number of the log level verbosity", Value: 0},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newTransactionsCommand(),
			newExportCommand(),
			newActiveCommand(),
			newDetailsCommand(),
		},
	}
	parentCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return parentCtx, stop, app
}

func setupLogging(c *cli.Context) error {
	logger, err := newZapLogger(appName, c.Int("log-level"))
	if err != nil {
		return err
	}
	c.Context = logr.NewContext(c.Context, zapr.NewLogger(logger))
	return nil
}

func newZapLogger(name string, verbosityLevel int) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Zap's levels get more verbose as the number gets smaller,
	// while logr's level increases with greater numbers.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(verbosityLevel * -1))
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return z.Named(name), nil
}

func envVars(suffixes ...string) []string {
	v := make([]string, len(suffixes))
	for i := range suffixes {
		v[i] = envPrefix + "_" + suffixes[i]
	}
	return v
}

// AppLogger retrieves the application-wide logger instance from the context.
func AppLogger(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// LogMetadata prints various metadata to the root logger.
func LogMetadata(c *cli.Context) error {
	log := AppLogger(c.Context)
	log.WithValues(
		"version", version,
		"date", date,
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
		"go_version", runtime.Version(),
	).Info("Starting up " + appName)
	return nil
}

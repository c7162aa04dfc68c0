package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	quotecli "github.com/odyssey-erp/odyssey-quotes/cmd/quotecalc/cli"
	"github.com/odyssey-erp/odyssey-quotes/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Default().Error("quotecalc", slog.Any("error", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "quotecalc",
		Usage: "quotation and invoice financial calculator",
		Commands: []*cli.Command{
			serveCommand(),
			computeCommand(),
			aggregateCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "env-file", Usage: "dotenv files loaded before the environment is read", Value: cli.NewStringSlice(".env")},
		},
		Action: func(c *cli.Context) error {
			return serve(c.Context, c.StringSlice("env-file"))
		},
	}
}

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:      "compute",
		Usage:     "compute financial figures for engine input files",
		ArgsUsage: "FILE... (- for stdin)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a summary"},
			&cli.StringFlag{Name: "currency", Value: "THB", EnvVars: []string{"CURRENCY_CODE"}},
			&cli.StringFlag{Name: "locale", Value: "th", EnvVars: []string{"CURRENCY_LOCALE"}},
			&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "files decoded in parallel"},
		},
		Action: func(c *cli.Context) error {
			code := quotecli.ComputeCommand(c.Context, quotecli.ComputeOptions{
				Files:       c.Args().Slice(),
				JSONOutput:  c.Bool("json"),
				Currency:    c.String("currency"),
				Locale:      c.String("locale"),
				Concurrency: c.Int("concurrency"),
			})
			return exitCode(code)
		},
	}
}

func aggregateCommand() *cli.Command {
	return &cli.Command{
		Name:      "aggregate",
		Usage:     "fold source document rows into line items",
		ArgsUsage: "[FILE]",
		Action: func(c *cli.Context) error {
			return exitCode(quotecli.AggregateCommand(quotecli.AggregateOptions{File: c.Args().First()}))
		},
	}
}

func exitCode(code int) error {
	if code == 0 {
		return nil
	}
	return cli.Exit("", code)
}

func serve(ctx context.Context, envFiles []string) error {
	if err := app.LoadDotEnv(envFiles...); err != nil {
		return err
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)

	if cfg.TestMode {
		logger.Info("test mode detected, skipping runtime startup")
		return nil
	}

	handler, err := app.NewHandler(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return err
	}
	logger.Info("http server stopped")
	return nil
}

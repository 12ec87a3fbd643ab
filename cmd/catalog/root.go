package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/themilho/product-catalog/internal/catalogapi"
	"github.com/themilho/product-catalog/internal/config"
	"github.com/themilho/product-catalog/internal/notify"
	"github.com/themilho/product-catalog/internal/tui"
	"github.com/themilho/product-catalog/pkg/httpclient"
	"github.com/themilho/product-catalog/pkg/logger"
	"github.com/themilho/product-catalog/pkg/tracing"
)

const appName = "catalog"

// app carries what the subcommands share. It is filled by the root
// PersistentPreRunE and released by PersistentPostRunE.
type app struct {
	apiURL   string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
	doer   httpclient.Doer

	closers []func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Browse and manage the product catalog",
		Long: `catalog talks to the catalog REST API.

Run without arguments to open the interactive browser. The subcommands
expose the same operations for scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "catalog API base URL (overrides CATALOG_API_URL)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newFavoriteCmd(a),
		newCategoriesCmd(),
		newStatusCmd(a),
		newStubServerCmd(a),
	)
	return root
}

// setup loads the configuration and picks the log destination: a file for
// the interactive browser, stdout for the server, stderr for everything else.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	switch {
	case !cmd.HasParent():
		log, closer, err := logger.NewFile(appName, cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return err
		}
		a.logger = log
		a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	case cmd.Name() == "stub-server":
		a.logger = logger.New(appName, cfg.LogLevel)
	default:
		a.logger = logger.NewWithWriter(appName, cfg.LogLevel, cmd.ErrOrStderr())
	}
	return nil
}

// close runs the registered closers in reverse order.
func (a *app) close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// client builds the catalog API client: retrying HTTP client, optional
// circuit breaker, client spans.
func (a *app) client(ctx context.Context) (*catalogapi.Client, error) {
	tracingCfg := a.cfg.Tracing
	tracingCfg.ServiceName = appName
	shutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = a.cfg.HTTPTimeout
	httpCfg.MaxRetries = a.cfg.HTTPMaxRetries

	var doer httpclient.Doer = httpclient.New(httpCfg)
	if a.cfg.BreakerEnabled {
		cbCfg := httpclient.DefaultCircuitBreakerConfig(catalogapi.ServiceName)
		cbCfg.MaxRequests = a.cfg.CBMaxRequests
		cbCfg.Interval = a.cfg.CBInterval
		cbCfg.Timeout = a.cfg.CBTimeout
		cbCfg.FailureRatio = a.cfg.CBFailureRatio
		cbCfg.MinRequests = a.cfg.CBMinRequests
		doer = httpclient.NewCircuitBreakerClient(doer, cbCfg, a.logger)
	}

	a.doer = doer

	a.logger.Debug("catalog API client ready",
		slog.String("base_url", a.cfg.APIURL),
		slog.Bool("breaker", a.cfg.BreakerEnabled),
		slog.Int("max_retries", a.cfg.HTTPMaxRetries),
	)
	return catalogapi.New(doer, a.cfg.APIURL, a.logger), nil
}

func (a *app) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	api, err := a.client(ctx)
	if err != nil {
		return err
	}

	bus := notify.New(a.cfg.NotifyDuration, a.logger)
	defer bus.Close()

	a.logger.Info("starting interactive browser", slog.String("api_url", api.BaseURL()))

	p := tea.NewProgram(tui.New(ctx, api, bus, a.logger), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

// out is where command results go.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

package stubapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/themilho/product-catalog/internal/config"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/pkg/health"
	"github.com/themilho/product-catalog/pkg/tracing"
)

// App wires together the store and the HTTP server of the stub catalog API.
type App struct {
	cfg            config.StubConfig
	logger         *slog.Logger
	store          *Store
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates the stub server. Products come from cfg.Stub.SeedFile when
// set and from DefaultSeed otherwise.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracingCfg := cfg.Tracing
	tracingCfg.ServiceName = ServiceName
	tracerShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	seed := DefaultSeed()
	if cfg.Stub.SeedFile != "" {
		seed, err = LoadSeed(cfg.Stub.SeedFile)
		if err != nil {
			return nil, err
		}
	}
	store := NewStore(seed)
	logger.Info("catalog store seeded",
		slog.Int("products", store.Len()),
		slog.String("seed_file", cfg.Stub.SeedFile),
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("store", func(ctx context.Context) error {
		return ctx.Err()
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Stub.HTTPPort),
		Handler:           NewRouter(store, healthHandler, logger),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg.Stub,
		logger:         logger,
		store:          store,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Store returns the backing store.
func (a *App) Store() *Store {
	return a.store
}

// Run listens on the configured port and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.httpServer.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server", slog.String("addr", ln.Addr().String()))
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutdown signal received")
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown drains in-flight requests, then flushes pending spans.
func (a *App) Shutdown() error {
	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("stub server stopped")
	return errors.Join(errs...)
}

// DefaultSeed is the catalog served when no seed file is configured.
func DefaultSeed() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Anel de Prata", Description: domain.StringPtr("Anel em prata 925"), Price: 189.9, Category: "Jóias", Favorite: true},
		{ID: 2, Name: "Bolsa de Couro", Description: domain.StringPtr("Bolsa transversal marrom"), Price: 249, Category: "Acessórios"},
		{ID: 3, Name: "Fone Bluetooth", Price: 129.5, Category: "Eletrônicos"},
		{ID: 4, Name: "O Senhor dos Anéis", Description: domain.StringPtr("Edição de colecionador"), Price: 99.9, Category: "Livros", Favorite: true},
		{ID: 5, Name: "Vaso de Cerâmica", Price: 45, Category: "Casa & Jardim", ImageURL: domain.StringPtr("https://example.com/vaso.jpg")},
	}
}

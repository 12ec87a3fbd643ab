package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/themilho/product-catalog/internal/domain"
)

// LoadErrorMessage is the notification shown when the list cannot be fetched.
const LoadErrorMessage = "Error loading products"

// ErrStaleLoad is returned by a load whose result was discarded because a
// newer load was requested meanwhile.
var ErrStaleLoad = errors.New("load superseded by a newer request")

// Lister fetches the product list.
type Lister interface {
	List(ctx context.Context, favoritesOnly bool) ([]domain.Product, error)
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// View binds a State to a Lister. It is safe for concurrent use: every
// transition runs under one lock, and starting a load cancels the previous
// in-flight one.
type View struct {
	api    Lister
	notify Notifier
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewView returns a View in the initial state. Nothing is fetched until Load,
// Refresh or a filter transition runs.
func NewView(api Lister, notify Notifier, logger *slog.Logger) *View {
	s, _ := NewState()
	return &View{api: api, notify: notify, logger: logger, state: s}
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Load fetches the list and, on success, replaces the collection. On failure
// the previous collection stays, the error is logged and an error
// notification is sent.
func (v *View) Load(ctx context.Context, favoritesOnly bool) error {
	v.mu.Lock()
	var cmd *LoadCommand
	v.state, cmd = v.state.BeginLoad(favoritesOnly)
	v.mu.Unlock()
	return v.Execute(ctx, cmd)
}

// Refresh reloads with the current favorites-only flag.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	var cmd *LoadCommand
	v.state, cmd = v.state.Refresh()
	v.mu.Unlock()
	return v.Execute(ctx, cmd)
}

// SetSearchText updates the search text.
func (v *View) SetSearchText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithSearchText(text)
}

// SetCategory updates the selected category.
func (v *View) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithCategory(category)
}

// SetViewMode updates the presentation mode.
func (v *View) SetViewMode(mode domain.ViewMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithViewMode(mode)
}

// SetFavoritesOnly updates the favorites-only flag and reloads when it changed.
func (v *View) SetFavoritesOnly(ctx context.Context, on bool) error {
	v.mu.Lock()
	var cmd *LoadCommand
	v.state, cmd = v.state.WithFavoritesOnly(on)
	v.mu.Unlock()
	return v.Execute(ctx, cmd)
}

// ResetFilters clears all filters, reloading if favorites-only was set.
func (v *View) ResetFilters(ctx context.Context) error {
	v.mu.Lock()
	var cmd *LoadCommand
	v.state, cmd = v.state.ResetFilters()
	v.mu.Unlock()
	return v.Execute(ctx, cmd)
}

// Execute runs cmd. A nil cmd is a no-op. The previous in-flight load, if
// any, is cancelled first. A cmd that is already superseded returns
// ErrStaleLoad without calling the API and leaves the newer load running.
func (v *View) Execute(ctx context.Context, cmd *LoadCommand) error {
	if cmd == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.mu.Lock()
	if cmd.Generation != v.state.Generation() {
		v.mu.Unlock()
		v.logger.DebugContext(ctx, "skipping superseded load", slog.Uint64("generation", cmd.Generation))
		return ErrStaleLoad
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.cancel = cancel
	v.mu.Unlock()

	products, err := v.api.List(ctx, cmd.FavoritesOnly)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		var applied bool
		v.state, applied = v.state.ApplyLoadError(cmd.Generation, err)
		if !applied {
			return ErrStaleLoad
		}
		v.logger.ErrorContext(ctx, "load products failed",
			slog.Uint64("generation", cmd.Generation),
			slog.Bool("favorites_only", cmd.FavoritesOnly),
			slog.String("error", err.Error()),
		)
		v.notify.Error(ctx, LoadErrorMessage)
		return err
	}

	var applied bool
	v.state, applied = v.state.ApplyLoad(cmd.Generation, products)
	if !applied {
		v.logger.DebugContext(ctx, "discarding stale product list", slog.Uint64("generation", cmd.Generation))
		return ErrStaleLoad
	}
	v.logger.DebugContext(ctx, "products loaded",
		slog.Uint64("generation", cmd.Generation),
		slog.Int("count", len(products)),
	)
	return nil
}

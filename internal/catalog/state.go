package catalog

import (
	"fmt"

	"github.com/themilho/product-catalog/internal/domain"
)

// LoadCommand asks the caller to fetch the product list. Generation
// identifies the request; only the result of the latest generation may be
// applied to the state.
type LoadCommand struct {
	Generation    uint64
	FavoritesOnly bool
}

// State is the listing state. Transitions return a new State and, when a
// fetch is required, a non-nil *LoadCommand that the caller must execute.
// The product slice is only ever replaced, never modified in place.
type State struct {
	products   []domain.Product
	filters    Filters
	generation uint64
	loading    bool
	loaded     bool
	loadErr    error
}

// NewState returns the initial state together with the load that populates it.
func NewState() (State, *LoadCommand) {
	return State{filters: DefaultFilters()}.BeginLoad(false)
}

// Products returns the last fetched collection.
func (s State) Products() []domain.Product { return s.products }

// Filters returns the current filter state.
func (s State) Filters() Filters { return s.filters }

// Generation returns the generation of the most recent load request.
func (s State) Generation() uint64 { return s.generation }

// Loading reports whether the latest load is still outstanding.
func (s State) Loading() bool { return s.loading }

// Loaded reports whether at least one load has succeeded.
func (s State) Loaded() bool { return s.loaded }

// LoadErr returns the error of the latest load, if it failed.
func (s State) LoadErr() error { return s.loadErr }

// Visible returns the derived view.
func (s State) Visible() []domain.Product { return Derive(s.products, s.filters) }

// Categories returns the category choices for the current collection.
func (s State) Categories() []string { return Categories(s.products) }

// Empty classifies the derived view.
func (s State) Empty() EmptyState { return ClassifyEmpty(s.Visible(), s.filters) }

// Summary is the header line, e.g. "1 item encontrados" or "3 itens encontrados".
func (s State) Summary() string { return Summary(len(s.Visible())) }

// Summary formats a visible-count header.
func Summary(n int) string {
	noun := "itens"
	if n == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s encontrados", n, noun)
}

// BeginLoad starts a new load generation.
func (s State) BeginLoad(favoritesOnly bool) (State, *LoadCommand) {
	s.generation++
	s.loading = true
	return s, &LoadCommand{Generation: s.generation, FavoritesOnly: favoritesOnly}
}

// Refresh reloads with the current favorites-only flag. It is the callback
// item intents invoke after a successful mutation.
func (s State) Refresh() (State, *LoadCommand) {
	return s.BeginLoad(s.filters.FavoritesOnly)
}

// WithSearchText sets the free-text search.
func (s State) WithSearchText(text string) State {
	s.filters.SearchText = text
	return s
}

// WithCategory selects a category; "" selects AllCategories.
func (s State) WithCategory(category string) State {
	if category == "" {
		category = AllCategories
	}
	s.filters.Category = category
	return s
}

// WithViewMode switches between grid and list. It never triggers a load.
func (s State) WithViewMode(mode domain.ViewMode) State {
	s.filters.ViewMode = mode
	return s
}

// WithFavoritesOnly sets the favorites-only flag. A change emits a load; a
// no-op returns a nil command.
func (s State) WithFavoritesOnly(on bool) (State, *LoadCommand) {
	if s.filters.FavoritesOnly == on {
		return s, nil
	}
	s.filters.FavoritesOnly = on
	return s.BeginLoad(on)
}

// ResetFilters clears search, category and favorites-only in one step. The
// view mode is kept. A load is emitted only if favorites-only was set.
func (s State) ResetFilters() (State, *LoadCommand) {
	s.filters.SearchText = ""
	s.filters.Category = AllCategories
	return s.WithFavoritesOnly(false)
}

// ApplyLoad replaces the collection with products if gen is the latest
// generation. It reports whether the result was applied.
func (s State) ApplyLoad(gen uint64, products []domain.Product) (State, bool) {
	if gen != s.generation {
		return s, false
	}
	s.products = products
	s.loading = false
	s.loaded = true
	s.loadErr = nil
	return s, true
}

// ApplyLoadError records a failed load of generation gen. The collection is
// left untouched. It reports whether gen was the latest generation.
func (s State) ApplyLoadError(gen uint64, err error) (State, bool) {
	if gen != s.generation {
		return s, false
	}
	s.loading = false
	s.loadErr = err
	return s, true
}

// Package catalog implements the product listing: filter state, the derived
// visible subset, explicit load transitions and the per-item intents.
package catalog

import (
	"strings"

	"github.com/themilho/product-catalog/internal/domain"
)

// AllCategories is the synthetic category that disables category filtering.
const AllCategories = "all"

// Filters is the user-controlled filter state of the listing. It is never
// persisted.
type Filters struct {
	SearchText    string
	Category      string
	FavoritesOnly bool
	ViewMode      domain.ViewMode
}

// DefaultFilters returns the initial filter state: no search, all
// categories, every product, grid view.
func DefaultFilters() Filters {
	return Filters{Category: AllCategories, ViewMode: domain.ViewGrid}
}

// Active reports whether any of the three filters restricts the result.
// The view mode is cosmetic and never counts.
func (f Filters) Active() bool {
	return f.SearchText != "" || !isAll(f.Category) || f.FavoritesOnly
}

// Derive returns the products that satisfy every filter, in source order.
// Search is a case-insensitive substring match against name, description and
// category; a missing description simply does not match.
func Derive(products []domain.Product, f Filters) []domain.Product {
	needle := strings.ToLower(f.SearchText)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		if !isAll(f.Category) && p.Category != f.Category {
			continue
		}
		if f.FavoritesOnly && !p.Favorite {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Category), needle)
}

func isAll(category string) bool {
	return category == "" || category == AllCategories
}

// Categories returns AllCategories followed by the distinct categories of
// products in order of first occurrence.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// EmptyState classifies an empty visible list.
type EmptyState int

const (
	// NotEmpty means at least one product is visible.
	NotEmpty EmptyState = iota
	// EmptyNoProducts means there is nothing to show and no filter is active.
	EmptyNoProducts
	// EmptyFilteredOut means the active filters exclude every product.
	EmptyFilteredOut
)

// ClassifyEmpty reports which empty state, if any, applies to visible.
func ClassifyEmpty(visible []domain.Product, f Filters) EmptyState {
	switch {
	case len(visible) > 0:
		return NotEmpty
	case f.Active():
		return EmptyFilteredOut
	default:
		return EmptyNoProducts
	}
}

// Title is the heading shown for the empty state.
func (e EmptyState) Title() string {
	switch e {
	case EmptyNoProducts:
		return "Nenhum item ainda"
	case EmptyFilteredOut:
		return "Nenhum item encontrado"
	default:
		return ""
	}
}

// Hint is the explanatory line shown under the title.
func (e EmptyState) Hint() string {
	switch e {
	case EmptyNoProducts:
		return "Comece adicionando seu primeiro item para se organizar."
	case EmptyFilteredOut:
		return "Tente ajustar sua busca ou filtros para encontrar o que você está procurando."
	default:
		return ""
	}
}

// CanReset reports whether the one-action filter reset is offered.
func (e EmptyState) CanReset() bool {
	return e == EmptyFilteredOut
}

// ResetLabel is the label of the reset action.
const ResetLabel = "Limpar todos os filtros"

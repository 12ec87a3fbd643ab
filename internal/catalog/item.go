package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/themilho/product-catalog/internal/domain"
)

// Messages shown by the item intents.
const (
	MsgFavoriteAdded   = "Added to favorites"
	MsgFavoriteRemoved = "Removed from favorites"
	MsgFavoriteFailed  = "Error updating favorite"
	MsgDeleted         = "Item deleted successfully"
	MsgDeleteFailed    = "Error deleting item"
	DeletePrompt       = "Are you sure you want to delete this item?"
)

// ItemAPI is the subset of the catalog API the item intents call.
type ItemAPI interface {
	SetFavorite(ctx context.Context, id int, favorite bool) (domain.Product, error)
	Delete(ctx context.Context, id int) error
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(route string) { f(route) }

// EditRoute is the route of the edit screen for id.
func EditRoute(id int) string { return fmt.Sprintf("/products/edit/%d", id) }

// DetailRoute is the route of the detail screen for id.
func DetailRoute(id int) string { return fmt.Sprintf("/products/%d", id) }

// Actions carries out the intents of a single displayed item. After a
// successful mutation it calls Refresh exactly once; on failure it sends an
// error notification and leaves everything else as it was.
type Actions struct {
	API       ItemAPI
	Notifier  Notifier
	Confirmer Confirmer
	Navigator Navigator
	Refresh   func(ctx context.Context) error
	Logger    *slog.Logger
}

// ToggleFavorite flips the favorite flag of p.
func (a *Actions) ToggleFavorite(ctx context.Context, p domain.Product) error {
	if _, err := a.API.SetFavorite(ctx, p.ID, !p.Favorite); err != nil {
		a.Logger.ErrorContext(ctx, "toggle favorite failed",
			slog.Int("product_id", p.ID),
			slog.String("error", err.Error()),
		)
		a.Notifier.Error(ctx, MsgFavoriteFailed)
		return err
	}

	a.refresh(ctx)
	if p.Favorite {
		a.Notifier.Success(ctx, MsgFavoriteRemoved)
	} else {
		a.Notifier.Success(ctx, MsgFavoriteAdded)
	}
	return nil
}

// Delete removes p after confirmation. It reports whether the product was
// deleted; a declined confirmation returns false and a nil error.
func (a *Actions) Delete(ctx context.Context, p domain.Product) (bool, error) {
	if a.Confirmer != nil && !a.Confirmer.Confirm(ctx, DeletePrompt) {
		return false, nil
	}

	if err := a.API.Delete(ctx, p.ID); err != nil {
		a.Logger.ErrorContext(ctx, "delete product failed",
			slog.Int("product_id", p.ID),
			slog.String("error", err.Error()),
		)
		a.Notifier.Error(ctx, MsgDeleteFailed)
		return false, err
	}

	a.refresh(ctx)
	a.Notifier.Success(ctx, MsgDeleted)
	return true, nil
}

// Edit navigates to the edit screen of p.
func (a *Actions) Edit(p domain.Product) {
	a.Navigator.Navigate(EditRoute(p.ID))
}

// Details navigates to the detail screen of p.
func (a *Actions) Details(p domain.Product) {
	a.Navigator.Navigate(DetailRoute(p.ID))
}

// refresh failures are reported by the loader itself.
func (a *Actions) refresh(ctx context.Context) {
	if a.Refresh == nil {
		return
	}
	if err := a.Refresh(ctx); err != nil {
		a.Logger.DebugContext(ctx, "refresh after mutation did not apply", slog.String("error", err.Error()))
	}
}

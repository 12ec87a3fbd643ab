package catalog

import (
	"fmt"
	"strings"

	"github.com/themilho/product-catalog/internal/domain"
)

// NoDescription stands in for a missing description in list rows.
const NoDescription = "Sem descrição"

// FormatPrice renders a price as "R$ 12.50".
func FormatPrice(price float64) string {
	return fmt.Sprintf("R$ %.2f", price)
}

// FavoriteMark is the heart shown next to a product name.
func FavoriteMark(favorite bool) string {
	if favorite {
		return "♥"
	}
	return "♡"
}

// RenderItem renders one product as a grid tile (several lines) or a list
// row (one line). It has no side effects.
func RenderItem(p domain.Product, mode domain.ViewMode) string {
	if mode == domain.ViewList {
		desc := p.DescriptionOrEmpty()
		if desc == "" {
			desc = NoDescription
		}
		return fmt.Sprintf("%s %s | %s | %s | %s",
			FavoriteMark(p.Favorite), p.Name, desc, FormatPrice(p.Price), p.Category)
	}

	lines := []string{
		fmt.Sprintf("%s %s", FavoriteMark(p.Favorite), p.Name),
		fmt.Sprintf("[%s]", p.Category),
	}
	if desc := p.DescriptionOrEmpty(); desc != "" {
		lines = append(lines, desc)
	}
	lines = append(lines, FormatPrice(p.Price))
	return strings.Join(lines, "\n")
}

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/themilho/product-catalog/internal/catalog"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
)

// printNotifier shows notifications as lines on w.
type printNotifier struct{ w io.Writer }

func (n printNotifier) Success(_ context.Context, message string) {
	fmt.Fprintln(n.w, "✓", message)
}

func (n printNotifier) Error(_ context.Context, message string) {
	fmt.Fprintln(n.w, "✗", message)
}

func printProducts(w io.Writer, s catalog.State) {
	fmt.Fprintln(w, s.Summary())

	if empty := s.Empty(); empty != catalog.NotEmpty {
		fmt.Fprintln(w, empty.Title())
		fmt.Fprintln(w, empty.Hint())
		return
	}

	mode := s.Filters().ViewMode
	for _, p := range s.Visible() {
		item := catalog.RenderItem(p, mode)
		if mode == domain.ViewGrid {
			fmt.Fprintf(w, "#%d\n%s\n\n", p.ID, item)
			continue
		}
		fmt.Fprintf(w, "#%-4d %s\n", p.ID, item)
	}
}

func printProduct(w io.Writer, p domain.Product) {
	desc := p.DescriptionOrEmpty()
	if desc == "" {
		desc = catalog.NoDescription
	}
	fmt.Fprintf(w, "#%d %s %s\n", p.ID, catalog.FavoriteMark(p.Favorite), p.Name)
	fmt.Fprintf(w, "Categoria: %s\n", p.Category)
	fmt.Fprintf(w, "Preço:     %s\n", catalog.FormatPrice(p.Price))
	fmt.Fprintf(w, "Descrição: %s\n", desc)
	if img := p.ImageURLOrEmpty(); img != "" {
		fmt.Fprintf(w, "Imagem:    %s\n", img)
	}
}

// printFieldErrors lists the form errors in field order.
func printFieldErrors(w io.Writer, f *form.Form) {
	errs := f.Errors()
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fieldOrder(fields[i]) < fieldOrder(fields[j]) })
	for _, field := range fields {
		fmt.Fprintf(w, "%s: %s\n", field, errs[field])
	}
}

func fieldOrder(field string) int {
	for i, f := range form.Fields {
		if f == field {
			return i
		}
	}
	return len(form.Fields)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}

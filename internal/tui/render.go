package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/themilho/product-catalog/internal/catalog"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
)

const heading = "Catálogo de Produtos"

var fieldLabels = map[string]string{
	form.FieldName:        "Nome",
	form.FieldDescription: "Descrição",
	form.FieldPrice:       "Preço",
	form.FieldCategory:    "Categoria",
	form.FieldImageURL:    "Imagem",
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenDetail:
		body = m.renderDetail()
	case screenForm:
		body = m.renderForm()
	default:
		body = m.renderList()
	}

	parts := []string{body}
	if m.confirming {
		parts = append(parts, confirmStyle.Render(catalog.DeletePrompt+" (y/n)"))
	}
	parts = append(parts, m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderList() string {
	filters := m.state.Filters()

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	summary := m.state.Summary()
	if m.state.Loading() && !m.state.Loaded() {
		summary = "Carregando..."
	}
	b.WriteString(mutedStyle.Render(summary))
	b.WriteString("\n\n")

	if m.searching || filters.SearchText != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(filterStyle.Render(fmt.Sprintf("Categoria: %s · Favoritos: %s · Modo: %s",
		categoryLabel(filters.Category), onOff(filters.FavoritesOnly), filters.ViewMode)))
	b.WriteString("\n\n")

	visible := m.state.Visible()
	if empty := m.state.Empty(); empty != catalog.NotEmpty {
		if !m.state.Loaded() {
			return b.String()
		}
		b.WriteString(activeStyle.Render(empty.Title()))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(empty.Hint()))
		if empty.CanReset() {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("x: " + catalog.ResetLabel))
		}
		return b.String()
	}

	if filters.ViewMode == domain.ViewList {
		b.WriteString(m.renderRows(visible))
	} else {
		b.WriteString(m.renderGrid(visible))
	}
	return b.String()
}

func (m Model) renderRows(products []domain.Product) string {
	lines := make([]string, 0, len(products))
	for i, p := range products {
		row := catalog.RenderItem(p, domain.ViewList)
		if i == m.selected {
			lines = append(lines, selectedRowStyle.Render("> "+row))
		} else {
			lines = append(lines, rowStyle.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderGrid(products []domain.Product) string {
	cols := m.columns()
	var rows []string
	for start := 0; start < len(products); start += cols {
		end := min(start+cols, len(products))
		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := tileStyle
			if i == m.selected {
				style = selectedTileStyle
			}
			tiles = append(tiles, style.Render(catalog.RenderItem(products[i], domain.ViewGrid)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDetail() string {
	p := m.detail

	desc := p.DescriptionOrEmpty()
	if desc == "" {
		desc = catalog.NoDescription
	}

	lines := []string{
		titleStyle.Render(p.Name) + " " + favStyle.Render(catalog.FavoriteMark(p.Favorite)),
		mutedStyle.Render(p.Category),
		"",
		catalog.FormatPrice(p.Price),
		desc,
	}
	if img := p.ImageURLOrEmpty(); img != "" {
		lines = append(lines, mutedStyle.Render(img))
	}
	lines = append(lines, "", mutedStyle.Render("esc: voltar · e: editar · space: favorito · d: excluir"))
	return strings.Join(lines, "\n")
}

func (m Model) renderForm() string {
	f := m.form

	lines := []string{titleStyle.Render(f.Title()), ""}
	for i, field := range form.Fields {
		label := labelStyle.Render(fieldLabels[field])
		if i == m.focus {
			label = focusedLabelStyle.Render(fieldLabels[field])
		}

		var value string
		switch {
		case field == form.FieldCategory:
			value = f.Value(field)
			if value == "" {
				value = "Selecione uma categoria"
			}
			if i == m.focus {
				value = "‹ " + value + " ›"
			}
		case i == m.focus:
			value = m.input.View()
		default:
			value = f.Value(field)
		}

		line := label + value
		if msg := f.Error(field); msg != "" {
			line += "  " + errorStyle.Render(msg)
		}
		lines = append(lines, line)
	}
	lines = append(lines, labelStyle.Render("Favorito")+checkbox(f.Favorite()))

	if m.saving {
		lines = append(lines, "", mutedStyle.Render("Salvando..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.notice == nil {
		return ""
	}
	style, ok := noticeStyles[string(m.notice.Kind)]
	if !ok {
		style = mutedStyle
	}
	return style.Render(m.notice.Message)
}

func (m Model) renderHelp() string {
	if m.screen == screenForm {
		return m.help.View(formKeys)
	}
	return m.help.View(keys)
}

func categoryLabel(c string) string {
	if c == "" || c == catalog.AllCategories {
		return "Todas as Categorias"
	}
	return c
}

func onOff(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func checkbox(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
)

func (m Model) openForm(f *form.Form) (Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	m.saving = false
	return m.focusField(0)
}

// focusField moves the cursor to field i, wrapping. The category field is
// chosen from the fixed list and has no text input.
func (m Model) focusField(i int) (Model, tea.Cmd) {
	n := len(form.Fields)
	m.focus = (i%n + n) % n

	field := form.Fields[m.focus]
	if field == form.FieldCategory {
		m.input.Blur()
		return m, nil
	}

	value := m.form.Value(field)
	if field == form.FieldPrice && m.form.Price() == 0 {
		value = ""
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, formKeys.Cancel):
		m.form = nil
		m.input.Blur()
		m.screen = screenList
		return m, nil

	case key.Matches(msg, formKeys.Save):
		if !m.form.Validate() {
			return m, nil
		}
		m.saving = true
		snapshot := *m.form
		return m, m.saveCmd(&snapshot)

	case key.Matches(msg, formKeys.Next):
		return m.focusField(m.focus + 1)

	case key.Matches(msg, formKeys.Prev):
		return m.focusField(m.focus - 1)

	case key.Matches(msg, formKeys.Favorite):
		m.form.SetFavorite(!m.form.Favorite())
		return m, nil

	case key.Matches(msg, formKeys.ClearImg):
		m.form.ClearImage()
		if form.Fields[m.focus] == form.FieldImageURL {
			m.input.SetValue("")
		}
		return m, nil
	}

	field := form.Fields[m.focus]
	if field == form.FieldCategory {
		switch {
		case key.Matches(msg, formKeys.Cycle):
			_ = m.form.Set(form.FieldCategory, cycleCategory(m.form.Value(form.FieldCategory), 1))
		case key.Matches(msg, formKeys.CycleBack):
			_ = m.form.Set(form.FieldCategory, cycleCategory(m.form.Value(form.FieldCategory), -1))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_ = m.form.Set(field, m.input.Value())
	return m, cmd
}

func (m Model) saveCmd(f *form.Form) tea.Cmd {
	return func() tea.Msg {
		p, route, err := f.Save(m.ctx, m.api, m.bus, m.logger)
		return savedMsg{product: p, route: route, err: err}
	}
}

// cycleCategory steps through domain.Categories from current. An unknown or
// empty current starts at the first (dir > 0) or last category.
func cycleCategory(current string, dir int) string {
	n := len(domain.Categories)
	for i, c := range domain.Categories {
		if c == current {
			return domain.Categories[((i+dir)%n+n)%n]
		}
	}
	if dir < 0 {
		return domain.Categories[n-1]
	}
	return domain.Categories[0]
}

// Package tui is the interactive terminal front end of the catalog.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/themilho/product-catalog/internal/catalog"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
	"github.com/themilho/product-catalog/internal/notify"
)

// API is everything the terminal UI calls on the catalog service.
type API interface {
	catalog.Lister
	catalog.ItemAPI
	form.API
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
)

const (
	detailRouteFormat = "/products/%d"
	editRouteFormat   = "/products/edit/%d"
)

// Model is the bubbletea model of the catalog browser. All state changes
// happen in Update; requests run as commands and come back as messages.
type Model struct {
	ctx    context.Context
	api    API
	bus    *notify.Bus
	logger *slog.Logger

	state      catalog.State
	initial    tea.Cmd
	cancelLoad context.CancelFunc

	screen   screen
	selected int

	search    textinput.Model
	searching bool

	confirming bool
	target     domain.Product

	detail domain.Product

	form   *form.Form
	focus  int
	input  textinput.Model
	saving bool

	notice      *notify.Notification
	events      <-chan notify.Event
	unsubscribe func()

	width int
	help  help.Model
}

// New returns a model whose Init issues the first list load. ctx bounds every
// request the model makes.
func New(ctx context.Context, api API, bus *notify.Bus, logger *slog.Logger) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Buscar itens..."
	search.Cursor.SetMode(cursor.CursorStatic)

	input := textinput.New()
	input.Prompt = ""
	input.Cursor.SetMode(cursor.CursorStatic)

	events, unsubscribe := bus.Subscribe(8)

	m := Model{
		ctx:         ctx,
		api:         api,
		bus:         bus,
		logger:      logger,
		search:      search,
		input:       input,
		events:      events,
		unsubscribe: unsubscribe,
		help:        help.New(),
	}

	state, cmd := catalog.NewState()
	m.state = state
	m, load := m.startLoad(cmd)
	m.initial = load
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initial, waitForNotice(m.events))
}

// Close cancels the in-flight load and detaches from the notification bus.
func (m Model) Close() {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	m.unsubscribe()
}

// State returns the listing state.
func (m Model) State() catalog.State { return m.state }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		return m.applyLoad(msg), nil

	case noticeMsg:
		// The subscription may drop events; the bus holds what is showing.
		m.notice = nil
		if n, ok := m.bus.Current(); ok {
			m.notice = &n
		}
		return m, waitForNotice(m.events)

	case actionDoneMsg:
		return m.actionDone(msg)

	case detailMsg:
		if msg.err != nil {
			m.logger.ErrorContext(m.ctx, "load product detail failed", slog.String("error", msg.err.Error()))
			m.bus.Error(m.ctx, form.LoadErrorMessage)
			return m, nil
		}
		m.detail = msg.product
		m.screen = screenDetail
		return m, nil

	case formLoadedMsg:
		if msg.err != nil {
			m.logger.ErrorContext(m.ctx, "load product for edit failed",
				slog.Int("product_id", msg.id),
				slog.String("error", msg.err.Error()),
			)
			m.bus.Error(m.ctx, form.LoadErrorMessage)
			return m, nil
		}
		return m.openForm(msg.form)

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			return m, nil
		}
		m.form = nil
		m.input.Blur()
		m.detail = msg.product
		m.screen = screenDetail
		var load *catalog.LoadCommand
		var loadCmd, navCmd tea.Cmd
		m.state, load = m.state.Refresh()
		m, loadCmd = m.startLoad(load)
		m, navCmd = m.navigate(msg.route)
		return m, tea.Batch(loadCmd, navCmd)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func waitForNotice(events <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return noticeMsg(ev)
	}
}

// startLoad turns a load command into a tea.Cmd, cancelling the previous
// in-flight load. A nil command yields a nil tea.Cmd.
func (m Model) startLoad(cmd *catalog.LoadCommand) (Model, tea.Cmd) {
	if cmd == nil {
		return m, nil
	}
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelLoad = cancel

	api := m.api
	gen, favoritesOnly := cmd.Generation, cmd.FavoritesOnly
	return m, func() tea.Msg {
		products, err := api.List(ctx, favoritesOnly)
		return loadedMsg{gen: gen, products: products, err: err}
	}
}

func (m Model) applyLoad(msg loadedMsg) Model {
	var applied bool
	if msg.err != nil {
		m.state, applied = m.state.ApplyLoadError(msg.gen, msg.err)
		if applied {
			m.logger.ErrorContext(m.ctx, "load products failed",
				slog.Uint64("generation", msg.gen),
				slog.String("error", msg.err.Error()),
			)
			m.bus.Error(m.ctx, catalog.LoadErrorMessage)
		}
		return m
	}

	m.state, applied = m.state.ApplyLoad(msg.gen, msg.products)
	if !applied {
		m.logger.DebugContext(m.ctx, "discarding stale product list", slog.Uint64("generation", msg.gen))
		return m
	}
	m.selected = clampSelection(m.selected, len(m.state.Visible()))
	return m
}

func clampSelection(i, n int) int {
	switch {
	case n == 0 || i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}

// current returns the selected visible product.
func (m Model) current() (domain.Product, bool) {
	visible := m.state.Visible()
	if m.selected < 0 || m.selected >= len(visible) {
		return domain.Product{}, false
	}
	return visible[m.selected], true
}

// itemActions builds the per-item intents. refresh and route record what the
// intents asked for so Update can act on it.
func (m Model) itemActions(refresh *bool, route *string) *catalog.Actions {
	return &catalog.Actions{
		API:      m.api,
		Notifier: m.bus,
		Logger:   m.logger,
		Navigator: catalog.NavigatorFunc(func(r string) {
			if route != nil {
				*route = r
			}
		}),
		Refresh: func(context.Context) error {
			if refresh != nil {
				*refresh = true
			}
			return nil
		},
	}
}

func (m Model) favoriteCmd(p domain.Product) tea.Cmd {
	return func() tea.Msg {
		var refresh bool
		err := m.itemActions(&refresh, nil).ToggleFavorite(m.ctx, p)
		return actionDoneMsg{product: p, refresh: refresh, err: err}
	}
}

// deleteCmd runs after the in-app confirmation, so the intent gets no
// Confirmer of its own.
func (m Model) deleteCmd(p domain.Product) tea.Cmd {
	return func() tea.Msg {
		var refresh bool
		deleted, err := m.itemActions(&refresh, nil).Delete(m.ctx, p)
		return actionDoneMsg{product: p, deleted: deleted, refresh: refresh, err: err}
	}
}

func (m Model) actionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	onDetail := m.screen == screenDetail && m.detail.ID == msg.product.ID
	if msg.deleted && onDetail {
		m.screen = screenList
	}
	if !msg.refresh {
		return m, nil
	}

	state, load := m.state.Refresh()
	m.state = state
	m, cmd := m.startLoad(load)
	if onDetail && !msg.deleted {
		return m, tea.Batch(cmd, m.detailCmd(msg.product.ID))
	}
	return m, cmd
}

func (m Model) detailCmd(id int) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		p, err := api.Get(ctx, id)
		return detailMsg{product: p, err: err}
	}
}

func (m Model) formLoadCmd(id int) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		f, err := form.Load(ctx, api, id)
		return formLoadedMsg{id: id, form: f, err: err}
	}
}

// navigate resolves a route produced by the item intents or the form.
func (m Model) navigate(route string) (Model, tea.Cmd) {
	var id int
	if _, err := fmt.Sscanf(route, editRouteFormat, &id); err == nil {
		return m, m.formLoadCmd(id)
	}
	if _, err := fmt.Sscanf(route, detailRouteFormat, &id); err == nil {
		return m, m.detailCmd(id)
	}
	m.logger.WarnContext(m.ctx, "unknown route", slog.String("route", route))
	m.screen = screenList
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch {
	case m.confirming:
		return m.handleConfirmKey(msg)
	case m.screen == screenForm:
		return m.handleFormKey(msg)
	case m.screen == screenDetail:
		return m.handleDetailKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "s", "S":
		m.confirming = false
		return m, m.deleteCmd(m.target)
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state = m.state.WithSearchText(m.search.Value())
	m.selected = 0
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filters := m.state.Filters()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, keys.Category):
		m.state = m.state.WithCategory(nextCategory(m.state.Categories(), filters.Category))
		m.selected = 0

	case key.Matches(msg, keys.Favorites):
		state, load := m.state.WithFavoritesOnly(!filters.FavoritesOnly)
		m.state = state
		m.selected = 0
		return m.startLoad(load)

	case key.Matches(msg, keys.ViewMode):
		m.state = m.state.WithViewMode(filters.ViewMode.Toggle())

	case key.Matches(msg, keys.Reload):
		state, load := m.state.Refresh()
		m.state = state
		return m.startLoad(load)

	case key.Matches(msg, keys.Reset):
		state, load := m.state.ResetFilters()
		m.state = state
		m.search.SetValue("")
		m.selected = 0
		return m.startLoad(load)

	case key.Matches(msg, keys.Up):
		m.selected = clampSelection(m.selected-m.step(), len(m.state.Visible()))
	case key.Matches(msg, keys.Down):
		m.selected = clampSelection(m.selected+m.step(), len(m.state.Visible()))
	case key.Matches(msg, keys.Left):
		m.selected = clampSelection(m.selected-1, len(m.state.Visible()))
	case key.Matches(msg, keys.Right):
		m.selected = clampSelection(m.selected+1, len(m.state.Visible()))

	case key.Matches(msg, keys.Favorite):
		if p, ok := m.current(); ok {
			return m, m.favoriteCmd(p)
		}

	case key.Matches(msg, keys.Delete):
		if p, ok := m.current(); ok {
			m.confirming = true
			m.target = p
		}

	case key.Matches(msg, keys.Open):
		if p, ok := m.current(); ok {
			var route string
			m.itemActions(nil, &route).Details(p)
			return m.navigate(route)
		}

	case key.Matches(msg, keys.Edit):
		if p, ok := m.current(); ok {
			var route string
			m.itemActions(nil, &route).Edit(p)
			return m.navigate(route)
		}

	case key.Matches(msg, keys.New):
		return m.openForm(form.NewCreate())

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.screen = screenList
	case key.Matches(msg, keys.Favorite):
		return m, m.favoriteCmd(m.detail)
	case key.Matches(msg, keys.Delete):
		m.confirming = true
		m.target = m.detail
	case key.Matches(msg, keys.Edit):
		var route string
		m.itemActions(nil, &route).Edit(m.detail)
		return m.navigate(route)
	}
	return m, nil
}

// step is how far up and down move the selection: one row of tiles in grid
// mode, one line in list mode.
func (m Model) step() int {
	if m.state.Filters().ViewMode == domain.ViewList {
		return 1
	}
	return m.columns()
}

func (m Model) columns() int {
	if m.width <= 0 {
		return 3
	}
	// Border and padding add four cells to each tile.
	n := m.width / (tileWidth + 4)
	if n < 1 {
		return 1
	}
	return n
}

// nextCategory returns the category after current in choices, wrapping.
func nextCategory(choices []string, current string) string {
	if len(choices) == 0 {
		return catalog.AllCategories
	}
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

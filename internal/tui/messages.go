package tui

import (
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/internal/form"
	"github.com/themilho/product-catalog/internal/notify"
)

// loadedMsg carries the result of one list fetch, tagged with its generation.
type loadedMsg struct {
	gen      uint64
	products []domain.Product
	err      error
}

// noticeMsg relays a notification bus event.
type noticeMsg notify.Event

// actionDoneMsg reports a finished item intent. refresh is set when the
// intent asked for the list to be reloaded.
type actionDoneMsg struct {
	product domain.Product
	deleted bool
	refresh bool
	err     error
}

type detailMsg struct {
	product domain.Product
	err     error
}

type formLoadedMsg struct {
	id   int
	form *form.Form
	err  error
}

type savedMsg struct {
	product domain.Product
	route   string
	err     error
}

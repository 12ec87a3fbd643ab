// Package pagination implements the _page/_limit query convention: the page
// is returned as a bare array and the unpaged size in X-Total-Count.
package pagination

import (
	"net/http"
	"strconv"
)

// TotalCountHeader carries the size of the unpaged collection.
const TotalCountHeader = "X-Total-Count"

// MaxLimit caps the page size.
const MaxLimit = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// DefaultParams returns the first page of DefaultLimit items.
func DefaultParams() Params {
	return Params{Page: 1, Limit: DefaultLimit}
}

// DefaultLimit is used when _page is given without _limit.
const DefaultLimit = 10

// FromRequest extracts _page and _limit from r. ok is false when neither is
// present, in which case the caller should return the whole collection.
// Invalid values fall back to the defaults.
func FromRequest(r *http.Request) (p Params, ok bool) {
	p = DefaultParams()
	q := r.URL.Query()

	if !q.Has("_page") && !q.Has("_limit") {
		return p, false
	}

	if v, err := strconv.Atoi(q.Get("_page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("_limit")); err == nil && v > 0 && v <= MaxLimit {
		p.Limit = v
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p, true
}

// Page returns the slice of items p selects. A page past the end is empty,
// never nil.
func Page[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}

// SetTotal writes the unpaged collection size.
func SetTotal(w http.ResponseWriter, total int) {
	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
}

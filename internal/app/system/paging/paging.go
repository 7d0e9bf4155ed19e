// Package paging provides page/perPage pagination for the analytics reads.
//
// The analytics rankings are positional projections recomputed on every
// read, so there is no stable cursor key to page over; plain offset
// pagination with clamped bounds is the honest fit.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

const (
	// DefaultPerPage is the page size used when the caller does not ask
	// for one.
	DefaultPerPage = 50
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Page is a sanitized pagination request: Page is 1-based, PerPage is
// within [1, MaxPerPage].
type Page struct {
	Page    int
	PerPage int
}

// Clamp normalizes raw page/perPage values into valid bounds.
func Clamp(page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

// FromRequest extracts "page" and "per_page" query parameters, applying
// defaults and bounds. Missing or malformed values fall back to page 1 and
// DefaultPerPage.
func FromRequest(r *http.Request) Page {
	page, _ := strconv.Atoi(query.Get(r, "page"))
	perPage, _ := strconv.Atoi(query.Get(r, "per_page"))
	return Clamp(page, perPage)
}

// Skip returns the number of rows to skip for this page.
func (p Page) Skip() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the row limit for this page as int64 for Mongo options.
func (p Page) Limit() int64 {
	return int64(p.PerPage)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"encoding/json"

	"devdirectory/internal/models"
)

// PageSizes is the set of page sizes a listing view may use.
var PageSizes = []int{60, 80, 100}

// DefaultPageSize is used when no size (or an unlisted one) is requested.
const DefaultPageSize = 60

// maxFullStrip is the largest page count shown without ellipsis collapsing.
const maxFullStrip = 7

// PageState describes where a listing view sits within its result set.
type PageState struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// TotalPages computes ceil(totalItems/pageSize) with a floor of 1, so an
// empty result set still has one (empty) page.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ClampPageSize returns size if it is one of the allowed PageSizes,
// otherwise DefaultPageSize.
func ClampPageSize(size int) int {
	for _, s := range PageSizes {
		if size == s {
			return size
		}
	}
	return DefaultPageSize
}

// Paginate slices one page out of an ordered result set. The requested
// page is clamped into range, never rejected, so this is a total function:
// page 0 yields page 1, page 10000 yields the last page.
func Paginate(items []models.Tool, pageSize, requestedPage int) ([]models.Tool, PageState) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	state := PageState{
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: TotalPages(len(items), pageSize),
	}
	state.CurrentPage = ClampPage(requestedPage, state.TotalPages)

	start := (state.CurrentPage - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], state
}

// Pager holds pagination state over a fixed result set and implements the
// navigation operations of the listing views. A new Pager starts on page 1.
type Pager struct {
	items    []models.Tool
	pageSize int
	current  int
}

// NewPager creates a pager over items with the given page size (clamped
// to the allowed set), positioned on page 1.
func NewPager(items []models.Tool, pageSize int) *Pager {
	return &Pager{
		items:    items,
		pageSize: ClampPageSize(pageSize),
		current:  1,
	}
}

// GoToPage moves to page n, clamped into [1, totalPages].
func (p *Pager) GoToPage(n int) {
	p.current = ClampPage(n, TotalPages(len(p.items), p.pageSize))
}

// Next advances one page; a no-op on the last page.
func (p *Pager) Next() {
	p.GoToPage(p.current + 1)
}

// Prev moves back one page; a no-op on page 1.
func (p *Pager) Prev() {
	p.GoToPage(p.current - 1)
}

// SetPageSize changes the page size and unconditionally resets to page 1,
// even when the current first item would still be visible at the new size.
// Nearest-equivalent-position preservation is deliberately not attempted.
func (p *Pager) SetPageSize(size int) {
	p.pageSize = ClampPageSize(size)
	p.current = 1
}

// Items returns the slice for the current page.
func (p *Pager) Items() []models.Tool {
	items, _ := Paginate(p.items, p.pageSize, p.current)
	return items
}

// State returns the current pagination state.
func (p *Pager) State() PageState {
	_, state := Paginate(p.items, p.pageSize, p.current)
	return state
}

// PageRef is one entry of the compact page-number strip: either a page
// number or a non-interactive ellipsis. It marshals to the bare number or
// the string "..." so the strip round-trips the way the front-end draws it.
type PageRef struct {
	Number   int
	Ellipsis bool
}

// MarshalJSON renders a page number as a JSON number and an ellipsis as "...".
func (p PageRef) MarshalJSON() ([]byte, error) {
	if p.Ellipsis {
		return json.Marshal("...")
	}
	return json.Marshal(p.Number)
}

// PageNumbers produces the compact page strip for the pagination control.
//
// Up to seven pages the full sequence is shown. Beyond that, page 1 and
// the last page are always present around a five-wide window centred on
// the current page. Near either edge the window is extended instead of
// shifted, so the strip keeps a constant width, and ellipses appear only
// where pages were actually skipped.
func PageNumbers(current, total int) []PageRef {
	if total <= maxFullStrip {
		strip := make([]PageRef, 0, total)
		for i := 1; i <= total; i++ {
			strip = append(strip, PageRef{Number: i})
		}
		return strip
	}

	start := max(2, current-2)
	end := min(total-1, current+2)

	if current <= 3 {
		end = min(total-1, 5)
	}
	if current >= total-2 {
		start = max(2, total-4)
	}

	strip := []PageRef{{Number: 1}}
	if start > 2 {
		strip = append(strip, PageRef{Ellipsis: true})
	}
	for i := start; i <= end; i++ {
		strip = append(strip, PageRef{Number: i})
	}
	if end < total-1 {
		strip = append(strip, PageRef{Ellipsis: true})
	}
	strip = append(strip, PageRef{Number: total})
	return strip
}

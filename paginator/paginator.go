// Package paginator slices ordered listings into fixed-size pages keyed by a
// page number taken from the request.
package paginator

import (
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// Number of posts shown on one page of any listing.
	PostsPerPage = 10

	// Query parameter carrying the requested page number.
	PageQueryParam = "page"
)

type Paginator struct {
	count   int64
	perPage int
}

type Page struct {
	Number   int
	NumPages int
	Count    int64
	perPage  int
}

func New(count int64, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{count: count, perPage: perPage}
}

// NumPages is never less than 1, an empty listing still renders a first page.
func (p *Paginator) NumPages() int {
	pages := int((p.count + int64(p.perPage) - 1) / int64(p.perPage))
	if pages < 1 {
		return 1
	}
	return pages
}

// GetPage resolves a raw page number. Empty, non-numeric and below-range
// values resolve to the first page, above-range values to the last page.
func (p *Paginator) GetPage(raw string) Page {
	numPages := p.NumPages()
	number, err := strconv.Atoi(raw)
	switch {
	case err != nil, number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}
	return Page{Number: number, NumPages: numPages, Count: p.count, perPage: p.perPage}
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

// PreviousPageNumber returns 0 when there is no previous page.
func (p Page) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return 0
	}
	return p.Number - 1
}

// NextPageNumber returns 0 when there is no next page.
func (p Page) NextPageNumber() int {
	if !p.HasNext() {
		return 0
	}
	return p.Number + 1
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.perPage
}

func (p Page) Limit() int {
	return p.perPage
}

// Fetch counts the rows matched by query, resolves the requested page and
// loads that page into dest. query must already carry its model and ordering.
// loadScopes (preloads and the like) only apply to the page load, never to
// the count.
func Fetch(query *gorm.DB, raw string, perPage int, dest interface{}, loadScopes ...func(*gorm.DB) *gorm.DB) (Page, error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Page{}, errors.Wrap(err, "fail to count page items")
	}
	page := New(count, perPage).GetPage(raw)
	if err := query.Session(&gorm.Session{}).Scopes(loadScopes...).Offset(page.Offset()).Limit(page.Limit()).Find(dest).Error; err != nil {
		return Page{}, errors.Wrap(err, "fail to load page items")
	}
	return page, nil
}

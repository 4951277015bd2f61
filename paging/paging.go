// Package paging carries the page/per_page query contract of the list endpoints.
package paging

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params selects one page of a list endpoint.
type Params struct {
	Page    int
	PerPage int
}

// Normalize fills in defaults and clamps PerPage.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Query renders p as page/per_page query parameters.
func (p Params) Query() map[string]string {
	p = p.Normalize()
	return map[string]string{
		"page":     strconv.Itoa(p.Page),
		"per_page": strconv.Itoa(p.PerPage),
	}
}

// FromQuery reads page and per_page from q, falling back to perPage when absent.
func FromQuery(q url.Values, perPage int) Params {
	p := Params{PerPage: perPage}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil {
		p.PerPage = v
	}
	return p.Normalize()
}

// Meta is the pagination block returned alongside every list.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

func (m Meta) HasNext() bool {
	return m.Page*m.PerPage < m.Total
}

func (m Meta) HasPrev() bool {
	return m.Page > 1
}

func (m Meta) NextPage() int {
	return m.Page + 1
}

func (m Meta) PrevPage() int {
	if m.Page <= 1 {
		return 1
	}
	return m.Page - 1
}

// Package query implements the tool listing engine: filtering, sorting,
// pagination, and the curated featured/trending/just-released views.
//
// Everything here is a pure function over a tool slice. The engine never
// mutates tool state, and output order is fully determined by the input
// set and the Spec, so repeated calls paginate identically.
package query

import (
	"strconv"

	"github.com/nabdhapp/nabdh-server/internal/domain"
	domainerrors "github.com/nabdhapp/nabdh-server/internal/errors"
)

// Sort selects the ordering applied after filtering.
type Sort string

// Sort modes.
const (
	SortNew      Sort = "new"       // Release date, newest first.
	SortPopular  Sort = "popular"   // Votes, highest first.
	SortTrending Sort = "trending"  // Trending flag first, then votes.
	SortTopRated Sort = "top-rated" // Rating, ties broken by votes.
)

// Valid reports whether s is a known sort mode.
func (s Sort) Valid() bool {
	switch s {
	case SortNew, SortPopular, SortTrending, SortTopRated:
		return true
	}
	return false
}

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 24
	MaxLimit     = 100
)

// Spec is the validated, typed representation of a listing request.
// The zero value is not valid; build one with ParseSpec or set defaults
// explicitly and call Validate.
type Spec struct {
	Query    string          // Free-text filter; empty matches everything.
	Category domain.Category // Exact category filter; empty matches everything.
	Pricing  domain.Pricing  // Exact pricing filter; empty matches everything.
	Sort     Sort
	Page     int
	Limit    int
}

// ParseSpec builds a Spec from raw transport-layer parameters, applying
// defaults for absent values and rejecting invalid enums and pagination
// early with a validation error.
func ParseSpec(query, category, pricing, sort, page, limit string) (Spec, error) {
	spec := Spec{
		Query: query,
		Sort:  SortNew,
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if category != "" {
		c := domain.Category(category)
		if !c.Valid() {
			return Spec{}, domainerrors.Validationf("unknown category: %s", category)
		}
		spec.Category = c
	}

	if pricing != "" {
		p := domain.Pricing(pricing)
		if !p.Valid() {
			return Spec{}, domainerrors.Validationf("unknown pricing type: %s", pricing)
		}
		spec.Pricing = p
	}

	if sort != "" {
		s := Sort(sort)
		if !s.Valid() {
			return Spec{}, domainerrors.Validationf("unknown sort mode: %s", sort)
		}
		spec.Sort = s
	}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return Spec{}, domainerrors.Validationf("invalid page: %s", page)
		}
		spec.Page = n
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return Spec{}, domainerrors.Validationf("invalid limit: %s", limit)
		}
		spec.Limit = n
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate checks pagination bounds and enum membership.
func (s Spec) Validate() error {
	if s.Page < 1 {
		return domainerrors.Validationf("page must be >= 1, got %d", s.Page)
	}
	if s.Limit < 1 {
		return domainerrors.Validationf("limit must be > 0, got %d", s.Limit)
	}
	if s.Limit > MaxLimit {
		return domainerrors.Validationf("limit must be <= %d, got %d", MaxLimit, s.Limit)
	}
	if s.Category != "" && !s.Category.Valid() {
		return domainerrors.Validationf("unknown category: %s", s.Category)
	}
	if s.Pricing != "" && !s.Pricing.Valid() {
		return domainerrors.Validationf("unknown pricing type: %s", s.Pricing)
	}
	if !s.Sort.Valid() {
		return domainerrors.Validationf("unknown sort mode: %s", s.Sort)
	}
	return nil
}

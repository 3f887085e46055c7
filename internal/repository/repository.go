// Package repository declares the persistence contracts for KYC applications
// and knowledge entries. The postgres subpackage implements them.
package repository

import "errors"

var ErrNotFound = errors.New("record not found")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery is an offset window over a list ordered newest first.
type PageQuery struct {
	Limit  int
	Offset int
}

// NewPageQuery clamps limit into [1, MaxPageSize], using DefaultPageSize
// for non-positive values, and floors offset at zero.
func NewPageQuery(limit, offset int) PageQuery {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return PageQuery{Limit: limit, Offset: max(offset, 0)}
}

// PageResult carries one page and the row count across all pages.
type PageResult[T any] struct {
	Items []T
	Total int
}

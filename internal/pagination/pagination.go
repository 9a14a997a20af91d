package pagination

import (
	"math"

	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	PageNumber int `form:"pageNumber"`
	PageSize   int `form:"pageSize"`
}

// Normalize clamps pagination parameters into their valid ranges:
// pageNumber <= 0 falls back to 1, pageSize <= 0 falls back to 20,
// and pageSize is capped at 100.
func (p *PageRequest) Normalize() {
	if p.PageNumber <= 0 {
		p.PageNumber = defaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	} else if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResponse creates a PageResponse from the given items and total count.
func NewPageResponse[T any](items []T, pageNumber, pageSize int, totalCount int64) PageResponse[T] {
	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

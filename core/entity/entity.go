package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the columns shared by every table
type BaseEntity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination is the generic paginated result envelope
type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// TotalPages derives the page count from the totals
func (p *Pagination[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := p.TotalItems / p.PageSize
	if p.TotalItems%p.PageSize != 0 {
		pages++
	}
	return pages
}

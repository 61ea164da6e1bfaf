package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

type Perspective struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Author     string    `json:"author" db:"author"`
	Text       string    `json:"text" db:"text"`
	ResponseMD string    `json:"response_md" db:"response_md"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PerspectivePage страница перспектив автора, новые первыми
type PerspectivePage struct {
	Items   []*Perspective
	Total   int
	Page    int
	PerPage int
}

func (p PerspectivePage) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p PerspectivePage) HasNext() bool {
	return p.Page < p.Pages()
}

func (p PerspectivePage) HasPrev() bool {
	return p.Page > 1
}

// NormalizePaging приводит номер страницы и размер к допустимым значениям
func NormalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

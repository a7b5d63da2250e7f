package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ClampPage keeps page in [1, math.MaxInt32/size] so the offset cannot overflow.
func ClampPage(page, size int) int {
	if page < 1 {
		return 1
	}
	if size > 0 && page > math.MaxInt32/size {
		return math.MaxInt32 / size
	}
	return page
}

// Calculate clamps page and size and returns the row offset and limit.
func Calculate(page, size int) (from, limit int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	page = ClampPage(page, size)
	from = (page - 1) * size
	return from, size
}

type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewMeta(page, offset, limit int, total int64) Meta {
	page = ClampPage(page, limit)
	return Meta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}

type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

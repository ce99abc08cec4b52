// Package pagination implements the item/page convention shared by every
// list endpoint: item is the page size, page is 1-based.
package pagination

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

var ErrInvalidPageSize = errors.New("item must be a positive integer")

type Params struct {
	Page int
	Size int
}

// Parse reads item and page from a query string. A missing item falls back to
// DefaultSize and a non-numeric or non-positive one is rejected; page falls
// back to 1 whenever it is missing or unusable.
func Parse(q url.Values) (Params, error) {
	p := Params{Page: 1, Size: DefaultSize}

	if raw := strings.TrimSpace(q.Get("item")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Params{}, ErrInvalidPageSize
		}
		p.Size = min(size, MaxSize)
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}

	return p, nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

func (p Params) Limit() int {
	return p.Size
}

// TotalPages returns ceil(total/size).
func (p Params) TotalPages(total int64) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

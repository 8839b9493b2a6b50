package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Query is the offset pagination and sorting input shared by every list
// endpoint. Page numbers are 1-based; Sort uses a leading '-' for
// descending order.
type Query struct {
	Page int
	Size int
	Sort string
}

// Parse reads page/size/sort from the request query string.
func Parse(values url.Values) (Query, error) {
	q := Query{Page: 1, Size: DefaultSize, Sort: strings.TrimSpace(values.Get("sort"))}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Query{}, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		q.Page = page
	}

	if raw := strings.TrimSpace(values.Get("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return Query{}, fmt.Errorf("size must be a positive integer, got %q", raw)
		}
		if size > MaxSize {
			return Query{}, fmt.Errorf("size must not exceed %d, got %d", MaxSize, size)
		}
		q.Size = size
	}

	return q, nil
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Size
}

// Order is a validated sort key ready for the persistence layer.
type Order struct {
	Field      string
	Descending bool
}

// Order resolves the sort expression against the allowed column names.
// An empty sort falls back to fallback ascending.
func (q Query) Order(fallback string, allowed ...string) (Order, error) {
	sort := q.Sort
	if sort == "" {
		sort = fallback
	}

	order := Order{Field: sort}
	if strings.HasPrefix(sort, "-") {
		order = Order{Field: sort[1:], Descending: true}
	}

	for _, name := range allowed {
		if order.Field == name {
			return order, nil
		}
	}
	return Order{}, fmt.Errorf("unsupported sort field %q", order.Field)
}

// Clause renders the order as a SQL ORDER BY expression. Field is safe to
// interpolate because Order only exists for validated column names.
func (o Order) Clause() string {
	if o.Descending {
		return o.Field + " DESC"
	}
	return o.Field + " ASC"
}

// Page is the page block carried by every list response.
type Page struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPage(q Query, total int64) Page {
	return Page{
		Number:        q.Page,
		Size:          q.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, q.Size),
	}
}

// Links carries absolute navigation URLs; prev/next are omitted at the
// boundaries.
type Links struct {
	First string `json:"first"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last"`
}

func NewLinks(base, path string, q Query, total int64) Links {
	pages := totalPages(total, q.Size)
	if pages < 1 {
		pages = 1
	}

	link := func(page int) string {
		v := url.Values{}
		v.Set("page", strconv.Itoa(page))
		v.Set("size", strconv.Itoa(q.Size))
		if q.Sort != "" {
			v.Set("sort", q.Sort)
		}
		return strings.TrimSuffix(base, "/") + path + "?" + v.Encode()
	}

	links := Links{First: link(1), Last: link(pages)}
	if q.Page > 1 {
		links.Prev = link(q.Page - 1)
	}
	if q.Page < pages {
		links.Next = link(q.Page + 1)
	}
	return links
}

func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

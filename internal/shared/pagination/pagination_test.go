package pagination

import (
	"net/url"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	q, err := Parse(url.Values{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if q.Page != 1 || q.Size != DefaultSize || q.Sort != "" {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.Offset() != 0 {
		t.Fatalf("unexpected offset %d", q.Offset())
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []url.Values{
		{"page": []string{"0"}},
		{"page": []string{"abc"}},
		{"size": []string{"-5"}},
		{"size": []string{"101"}},
	}
	for _, values := range cases {
		if _, err := Parse(values); err == nil {
			t.Fatalf("expected error for %v", values)
		}
	}
}

func TestOrderValidation(t *testing.T) {
	q := Query{Page: 1, Size: 20, Sort: "-created_at"}
	order, err := q.Order("created_at", "created_at", "name")
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}
	if !order.Descending || order.Field != "created_at" {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Clause() != "created_at DESC" {
		t.Fatalf("unexpected clause %s", order.Clause())
	}

	if _, err := (Query{Sort: "password"}).Order("created_at", "created_at"); err == nil {
		t.Fatal("expected unsupported sort field error")
	}
}

func TestPageAndLinks(t *testing.T) {
	q := Query{Page: 2, Size: 10, Sort: "-created_at"}
	page := NewPage(q, 35)
	if page.TotalPages != 4 || page.TotalElements != 35 {
		t.Fatalf("unexpected page %+v", page)
	}

	links := NewLinks("http://localhost:8000", "/api/v1/users", q, 35)
	if links.Prev == "" || links.Next == "" {
		t.Fatalf("expected prev and next on middle page: %+v", links)
	}
	wantFirst := "http://localhost:8000/api/v1/users?page=1&size=10&sort=-created_at"
	if links.First != wantFirst {
		t.Fatalf("unexpected first link %s", links.First)
	}
	wantLast := "http://localhost:8000/api/v1/users?page=4&size=10&sort=-created_at"
	if links.Last != wantLast {
		t.Fatalf("unexpected last link %s", links.Last)
	}
}

func TestLinksBoundaries(t *testing.T) {
	links := NewLinks("http://localhost:8000", "/api/v1/users", Query{Page: 1, Size: 20}, 5)
	if links.Prev != "" || links.Next != "" {
		t.Fatalf("expected no prev/next on single page: %+v", links)
	}
	if links.First != links.Last {
		t.Fatalf("first and last should match on single page")
	}

	empty := NewLinks("http://localhost:8000", "/api/v1/users", Query{Page: 1, Size: 20}, 0)
	if empty.First == "" || empty.Last == "" {
		t.Fatalf("empty result still links to page 1: %+v", empty)
	}
}

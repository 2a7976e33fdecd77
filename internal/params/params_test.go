package params

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"limit capped", "limit=500", 1, 100, 0},
		{"limit floor", "limit=-5", 1, 20, 0},
		{"bad page ignored", "page=zero&limit=10", 1, 10, 0},
		{"zero page ignored", "page=0", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			p := ParsePagination(q)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("ParsePagination(%q) = page %d limit %d offset %d, want %d/%d/%d",
					tt.query, p.Page, p.Limit, p.Offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestComputeMeta(t *testing.T) {
	q, _ := url.ParseQuery("page=2&limit=20")
	p := ParsePagination(q)
	p.ComputeMeta(45)

	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want both true", p.HasNext, p.HasPrev)
	}

	p.Page = 3
	p.Offset = 40
	p.ComputeMeta(45)
	if p.HasNext {
		t.Error("last page should not have next")
	}
}

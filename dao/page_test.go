package dao

import "testing"

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{1, 8, 0},
		{2, 8, 8},
		{3, 3, 6},
		{0, 8, 0},  // below range clamps to the first page
		{-5, 3, 0}, // negative input never produces a negative offset
	}
	for _, tc := range cases {
		if got := pageOffset(tc.page, tc.size); got != tc.want {
			t.Errorf("pageOffset(%d, %d) = %d, want %d", tc.page, tc.size, got, tc.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{7, 3, 3},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestNewPageBeyondLastPage(t *testing.T) {
	// requesting a page past the end yields an empty page, never an error
	// and never a wrap back to page 1
	p := newPage[int](nil, 9, 3, 7)
	if len(p.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(p.Items))
	}
	if p.Items == nil {
		t.Fatal("items should be an empty slice, not nil")
	}
	if p.Number != 9 || p.TotalPages != 3 {
		t.Fatalf("page numbering wrong: %+v", p)
	}
	if p.HasNext() {
		t.Fatal("page past the end must not report a next page")
	}
	if !p.HasPrev() {
		t.Fatal("page past the end still has earlier pages")
	}
}

func TestNewPageNavigation(t *testing.T) {
	p := newPage([]int{1, 2, 3}, 2, 3, 7)
	if !p.HasPrev() || !p.HasNext() {
		t.Fatalf("middle page should link both ways: %+v", p)
	}
	if p.Prev() != 1 || p.Next() != 3 {
		t.Fatalf("unexpected prev/next: %d/%d", p.Prev(), p.Next())
	}

	first := newPage([]int{1}, 0, 3, 1)
	if first.Number != 1 {
		t.Fatalf("page 0 should clamp to 1, got %d", first.Number)
	}
	if first.HasPrev() || first.HasNext() {
		t.Fatalf("single page should not link anywhere: %+v", first)
	}
}

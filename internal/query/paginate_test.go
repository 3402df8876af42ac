package query

import "testing"

func TestNewPageMetadata(t *testing.T) {
	tests := []struct {
		name            string
		totalCount      int
		pageNumber      int
		pageSize        int
		wantTotalPages  int
		wantHasPrevious bool
		wantHasNext     bool
	}{
		{"middle page of 25 by 10", 25, 2, 10, 3, true, true},
		{"first page", 25, 1, 10, 3, false, true},
		{"last page", 25, 3, 10, 3, true, false},
		{"exact multiple", 20, 2, 10, 2, true, false},
		{"beyond the last page", 25, 9, 10, 3, true, false},
		{"empty collection", 0, 1, 10, 0, false, false},
		{"single record", 1, 1, 20, 1, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := NewPage([]string{}, tc.totalCount, tc.pageNumber, tc.pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.TotalPages != tc.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tc.wantTotalPages)
			}
			if page.TotalCount != tc.totalCount {
				t.Errorf("TotalCount = %d, want %d", page.TotalCount, tc.totalCount)
			}
			if page.HasPrevious() != tc.wantHasPrevious {
				t.Errorf("HasPrevious() = %v, want %v", page.HasPrevious(), tc.wantHasPrevious)
			}
			if page.HasNext() != tc.wantHasNext {
				t.Errorf("HasNext() = %v, want %v", page.HasNext(), tc.wantHasNext)
			}
		})
	}
}

func TestNewPageRejectsSubOnePageSize(t *testing.T) {
	if _, err := NewPage([]int{}, 10, 1, 0); err == nil {
		t.Fatal("expected an error for page size 0")
	}
	if _, err := NewPage([]int{}, 10, 1, -3); err == nil {
		t.Fatal("expected an error for a negative page size")
	}
}

func TestPlanWindow(t *testing.T) {
	plan := Plan{PageNumber: 3, PageSize: 10}

	if plan.Limit() != 10 {
		t.Errorf("Limit() = %d, want 10", plan.Limit())
	}
	if plan.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", plan.Offset())
	}
}

func TestPageMetadataSummary(t *testing.T) {
	page, err := NewPage([]string{"a", "b"}, 25, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := page.Metadata()
	if meta.TotalCount != 25 || meta.PageSize != 10 || meta.CurrentPage != 2 || meta.TotalPages != 3 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

package pagination

import "testing"

func TestGetMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first page", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last page", 3, 10, 25, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty", 1, 10, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := GetMeta(&Params{Page: tt.page, Limit: tt.limit}, tt.total)

			if meta.TotalPages != tt.totalPages {
				t.Errorf("expected %d pages, got %d", tt.totalPages, meta.TotalPages)
			}
			if meta.HasNext != tt.hasNext {
				t.Errorf("expected HasNext=%v, got %v", tt.hasNext, meta.HasNext)
			}
			if meta.HasPrev != tt.hasPrev {
				t.Errorf("expected HasPrev=%v, got %v", tt.hasPrev, meta.HasPrev)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, &Params{Page: 1, Limit: 2}, 5)

	if resp.Meta.Total != 5 {
		t.Errorf("expected total 5, got %d", resp.Meta.Total)
	}
	if resp.Meta.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.Meta.TotalPages)
	}
}

package controllers

import "testing"

func TestResolvePage(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		total        int64
		size         int
		wantPage     int
		wantNumPages int
	}{
		{"missing parameter", "", 4, 2, 1, 2},
		{"valid page", "2", 4, 2, 2, 2},
		{"non-integer", "two", 4, 2, 1, 2},
		{"beyond last clamps to last", "5", 4, 2, 2, 2},
		{"below first clamps to last", "0", 4, 2, 2, 2},
		{"negative clamps to last", "-3", 4, 2, 2, 2},
		{"empty result set still has one page", "1", 0, 2, 1, 1},
		{"partial last page counts", "3", 5, 2, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, numPages := resolvePage(tt.raw, tt.total, tt.size)
			if page != tt.wantPage || numPages != tt.wantNumPages {
				t.Errorf("resolvePage(%q, %d, %d) = (%d, %d), want (%d, %d)",
					tt.raw, tt.total, tt.size, page, numPages, tt.wantPage, tt.wantNumPages)
			}
		})
	}
}

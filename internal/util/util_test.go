package util

import "testing"

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, size string
		wantOffset int
		wantLimit  int
	}{
		{"", "", 0, 20},
		{"1", "10", 0, 10},
		{"3", "10", 20, 10},
		{"0", "0", 0, 20},
		{"-2", "abc", 0, 20},
		{"2", "500", 100, 100},
	}
	for _, tc := range cases {
		offset, limit := ParsePagination(tc.page, tc.size)
		if offset != tc.wantOffset || limit != tc.wantLimit {
			t.Fatalf("ParsePagination(%q, %q) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, offset, limit, tc.wantOffset, tc.wantLimit)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	if got := MaskEmail("budi@example.com"); got != "b***@example.com" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := MaskEmail("a@b.com"); got != "a@b.com" {
		t.Fatalf("short local part should pass through, got %q", got)
	}
	if got := MaskEmail("not-an-email"); got != "not-an-email" {
		t.Fatalf("non-email should pass through, got %q", got)
	}
}

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		want        Page
	}{
		{
			name: "first of three pages",
			page: 1, limit: 10, total: 25,
			want: Page{CurrentPage: 1, TotalPages: 3, Total: 25, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 10, total: 25,
			want: Page{CurrentPage: 2, TotalPages: 3, Total: 25, HasNext: true, HasPrev: true},
		},
		{
			name: "last partial page",
			page: 3, limit: 10, total: 25,
			want: Page{CurrentPage: 3, TotalPages: 3, Total: 25, HasNext: false, HasPrev: true},
		},
		{
			name: "exact fit has no next",
			page: 2, limit: 10, total: 20,
			want: Page{CurrentPage: 2, TotalPages: 2, Total: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result",
			page: 1, limit: 10, total: 0,
			want: Page{CurrentPage: 1, TotalPages: 0, Total: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "page below one normalised",
			page: 0, limit: 10, total: 5,
			want: Page{CurrentPage: 1, TotalPages: 1, Total: 5, HasNext: false, HasPrev: false},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, New(tc.page, tc.limit, tc.total))
		})
	}
}

func TestHasNextMatchesPageTimesLimit(t *testing.T) {
	// hasNext 当且仅当 page*limit < total
	for page := 1; page <= 5; page++ {
		for _, total := range []int64{0, 9, 10, 11, 39, 40, 41} {
			p := New(page, 10, total)
			assert.Equal(t, int64(page*10) < total, p.HasNext, "page=%d total=%d", page, total)
		}
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, ClampLimit(0, 10, 50))
	assert.Equal(t, 10, ClampLimit(-3, 10, 50))
	assert.Equal(t, 1, ClampLimit(1, 10, 50))
	assert.Equal(t, 50, ClampLimit(51, 10, 50))
	assert.Equal(t, 37, ClampLimit(37, 10, 50))
}

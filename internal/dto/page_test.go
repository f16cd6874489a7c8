package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		page, size string
		want       Page
		offset     int
	}{
		{"", "", Page{Page: 1, Size: 20}, 0},
		{"3", "10", Page{Page: 3, Size: 10}, 20},
		{"-1", "500", Page{Page: 1, Size: 20}, 0},
		{"abc", "100", Page{Page: 1, Size: 100}, 0},
	}
	for _, tc := range cases {
		got := ParsePage(tc.page, tc.size)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.offset, got.Offset())
	}
}

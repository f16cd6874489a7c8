package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(base, base.Add(time.Minute)))
	assert.True(t, httperr.IsBusiness(ValidateRange(base, base), httperr.CodeInvalidTimeRange))
	assert.True(t, httperr.IsBusiness(ValidateRange(base, base.Add(-time.Hour)), httperr.CodeInvalidTimeRange))
}

func TestOverlaps(t *testing.T) {
	h := time.Hour
	cases := []struct {
		name         string
		aStart, aEnd time.Duration
		bStart, bEnd time.Duration
		want         bool
	}{
		{"identical", 0, 8 * h, 0, 8 * h, true},
		{"inside", 0, 8 * h, 2 * h, 3 * h, true},
		{"partial", 0, 8 * h, 7 * h, 9 * h, true},
		{"back to back", 0, 8 * h, 8 * h, 16 * h, false},
		{"disjoint", 0, 2 * h, 5 * h, 6 * h, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(base.Add(tc.aStart), base.Add(tc.aEnd), base.Add(tc.bStart), base.Add(tc.bEnd))
			assert.Equal(t, tc.want, got)
			// symmetric
			assert.Equal(t, tc.want, Overlaps(base.Add(tc.bStart), base.Add(tc.bEnd), base.Add(tc.aStart), base.Add(tc.aEnd)))
		})
	}
}

func TestApprove(t *testing.T) {
	s := &models.Shift{}
	now := base.Add(time.Hour)

	require.NoError(t, Approve(s, now))
	assert.True(t, s.IsApproved)
	assert.Equal(t, now, s.UpdatedAt)

	err := Approve(s, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeShiftApproved))
	assert.True(t, httperr.IsBusiness(CanUpdate(s), httperr.CodeShiftApproved))
}

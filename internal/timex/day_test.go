package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 1, 10, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same day earlier hour", time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC), 0},
		{"same day later hour", time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC), 0},
		{"tomorrow early", time.Date(2025, 1, 11, 0, 1, 0, 0, time.UTC), 1},
		{"yesterday late", time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC), -1},
		{"across month", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 22},
		{"across year", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(base, tt.to))
		})
	}
}

func TestDaysBetween_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	from := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(from, to))
}

func TestStartOfDayAndAtTimeOfDay(t *testing.T) {
	ts := time.Date(2025, 1, 10, 18, 30, 15, 99, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), AtTimeOfDay(ts, 9, 0, nil))
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"45s"`), &d))
	assert.Equal(t, 45*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &d), ErrInvalidDuration)
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	var c Clock = FixedClock{T: ts}
	assert.Equal(t, ts, c.Now())
}

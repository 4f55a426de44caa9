package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		want    string
		wantErr bool
	}{
		{name: "empty is UTC", tz: "", want: "UTC"},
		{name: "UTC", tz: "UTC", want: "UTC"},
		{name: "local", tz: "Local", want: "Local"},
		{name: "iana", tz: "America/Sao_Paulo", want: "America/Sao_Paulo"},
		{name: "invalid", tz: "Mars/Olympus", want: "UTC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := Parse(tt.tz)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, loc)
			assert.Equal(t, tt.want, loc.String())
		})
	}
}

func TestStartOfDay(t *testing.T) {
	minus3 := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 16th is still the 15th at UTC-3.
	ts := time.Date(2024, 1, 16, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), StartOfDay(ts, nil))
	got := StartOfDay(ts, minus3)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, minus3), got)
	assert.Equal(t, minus3, got.Location())
}

func TestDayRange(t *testing.T) {
	minus3 := time.FixedZone("BRT", -3*60*60)
	start, end := DayRange(time.Date(2024, 1, 16, 1, 30, 0, 0, time.UTC), minus3)

	assert.Equal(t, time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC).Unix(), start)
	assert.Equal(t, int64(24*60*60), end-start)
}

func TestClock(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }
	tokyo := time.FixedZone("JST", 9*60*60)

	got := Clock(now, tokyo)()
	assert.True(t, got.Equal(fixed))
	assert.Equal(t, tokyo, got.Location())
	assert.Equal(t, 21, got.Hour())

	assert.Equal(t, time.UTC, Clock(now, nil)().Location())
}

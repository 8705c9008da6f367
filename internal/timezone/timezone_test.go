package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.False(t, IsValid("Mars/Olympus"))
}

func TestParseDateAndStartOfDay(t *testing.T) {
	d, err := ParseDate("2026-10-19", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	ts := time.Date(2026, 10, 19, 15, 42, 0, 0, time.UTC)
	assert.Equal(t, d, StartOfDay(ts))
	assert.Equal(t, "2026-10-19", FormatDate(ts))

	_, err = ParseDate("19/10/2026", time.UTC)
	assert.Error(t, err)
}

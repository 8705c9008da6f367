package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDatesHonoursDay(t *testing.T) {
	raw := []byte(`{"day":"2026-10-16","dates":["2026-10-19","2026-10-26"]}`)

	dates, ok := decodeDates(raw, "2026-10-16")
	assert.True(t, ok)
	assert.Equal(t, []string{"2026-10-19", "2026-10-26"}, dates)

	_, ok = decodeDates(raw, "2026-10-17")
	assert.False(t, ok)

	_, ok = decodeDates([]byte("not json"), "2026-10-16")
	assert.False(t, ok)

	dates, ok = decodeDates([]byte(`{"day":"2026-10-16","dates":null}`), "2026-10-16")
	assert.True(t, ok)
	assert.NotNil(t, dates)
	assert.Empty(t, dates)
}

func TestDatesKey(t *testing.T) {
	assert.Equal(t, "avail:dates:tutor-1", datesKey("tutor-1"))
}

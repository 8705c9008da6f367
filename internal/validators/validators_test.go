package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPhoneValid(t *testing.T) {
	for _, ok := range []string{"+1 (555) 123-4567", "0712345678", "020.7946.0958"} {
		assert.True(t, IsPhoneValid(ok), ok)
	}
	for _, bad := range []string{"", "12345", "+1 555 CALL NOW", "1+5551234567", "1234567890123456",
		"1 . 2 . 3 . 4 . 5 . 6 . 7 . 8 . 9 . 0"} {
		assert.False(t, IsPhoneValid(bad), bad)
	}
}

func TestIsHHMM(t *testing.T) {
	assert.True(t, IsHHMM("09:00"))
	assert.True(t, IsHHMM("23:59"))
	assert.False(t, IsHHMM("24:00"))
	assert.False(t, IsHHMM("9:00"))
	assert.False(t, IsHHMM("09:60"))
	assert.False(t, IsHHMM("ab:cd"))
}

func TestNewRegistersCustomTags(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required,phone"`
		Date  string `json:"date" validate:"required,isodate"`
		Start string `json:"slot_start" validate:"required,hhmm"`
	}

	v := New()
	require.NoError(t, v.Struct(form{Email: "a@b.co", Phone: "+44 20 7946 0958", Date: "2026-10-19", Start: "09:00"}))

	err := v.Struct(form{Email: "a@b.co", Phone: "nope", Date: "2026-10-19", Start: "09:00"})
	field, tag, ok := FirstFailure(err)
	require.True(t, ok)
	assert.Equal(t, "phone", field)
	assert.Equal(t, "phone", tag)

	err = v.Struct(form{Email: "a@b.co", Phone: "+44 20 7946 0958", Date: "19/10/2026", Start: "09:00"})
	field, tag, _ = FirstFailure(err)
	assert.Equal(t, "date", field)
	assert.Equal(t, "isodate", tag)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

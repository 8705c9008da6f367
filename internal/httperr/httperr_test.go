package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, zap.NewNop(), err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   Kind
	}{
		{ErrValidation("email_invalid", "Invalid email format"), http.StatusBadRequest, KindValidation},
		{ErrSlotUnavailable("slot_taken"), http.StatusConflict, KindSlotUnavailable},
		{ErrInvalidTransition("invalid_state"), http.StatusConflict, KindInvalidTransition},
		{ErrUnauthorized("not_a_party"), http.StatusForbidden, KindUnauthorized},
		{ErrNotFound("booking_not_found", "Booking not found."), http.StatusNotFound, KindNotFound},
	}

	for _, tc := range cases {
		w, body := respond(t, fmt.Errorf("wrapped: %w", tc.err))
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.kind, body.Kind)
		assert.NotEmpty(t, body.Message)
	}
}

func TestRespondHidesInternalDetail(t *testing.T) {
	w, body := respond(t, errors.New("pq: relation \"bookings\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "bookings")
}

func TestIsKindAndIsBusiness(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrSlotUnavailable("slot_taken"))

	assert.True(t, IsKind(err, KindSlotUnavailable))
	assert.True(t, IsBusiness(err, "slot_taken"))
	assert.False(t, IsKind(errors.New("boom"), KindSlotUnavailable))
}

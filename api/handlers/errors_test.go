package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cityfix/cityfix-api/models"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", models.ErrValidation), http.StatusBadRequest},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("x: %w", models.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("x: %w", models.ErrNotFound), http.StatusNotFound},
		{models.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{models.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{fmt.Errorf("x: %w", models.ErrStorageFailure), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

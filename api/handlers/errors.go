package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cityfix/cityfix-api/api"
	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/models"
)

// statusFor maps the service error taxonomy to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, models.ErrStorageFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(message string, w http.ResponseWriter, err error) {
	config.ErrorStatus(message, statusFor(err), w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// actor returns the authenticated caller or writes a 401
func actor(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, models.ErrUnauthorized)
	}
	return id, ok
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityfix/cityfix-api/models"
)

const testSecret = "s3cr3t"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func claimsFor(sub string, role models.Role) Claims {
	return Claims{
		Email: sub + "@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func serveAuthenticated(a *Authenticator, next http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(rr, req)
	return rr
}

func TestAuthenticator_ValidToken(t *testing.T) {
	a := NewAuthenticator(testSecret)
	var got models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := serveAuthenticated(a, next, signToken(t, testSecret, claimsFor("user-1", models.RoleCitizen)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.Identity{ID: "user-1", Email: "user-1@example.com", Role: models.RoleCitizen}, got)
}

func TestAuthenticator_Rejects(t *testing.T) {
	a := NewAuthenticator(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	expired := claimsFor("user-1", models.RoleCitizen)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noSubject := claimsFor("", models.RoleAdmin)
	badRole := claimsFor("user-1", models.Role("superuser"))

	tokens := map[string]string{
		"missing":      "",
		"garbage":      "not-a-jwt",
		"wrong secret": signToken(t, "other", claimsFor("user-1", models.RoleAdmin)),
		"expired":      signToken(t, testSecret, expired),
		"no subject":   signToken(t, testSecret, noSubject),
		"unknown role": signToken(t, testSecret, badRole),
	}
	for name, token := range tokens {
		rr := serveAuthenticated(a, next, token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, name)

		var body models.ErrorMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), name)
		assert.Equal(t, "unauthorized", body.Response.Message, name)
	}
}

func TestAuthenticator_NoSecretRejectsEverything(t *testing.T) {
	a := NewAuthenticator("")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := serveAuthenticated(a, next, signToken(t, "", claimsFor("user-1", models.RoleAdmin)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	cases := []struct {
		name string
		ctx  func(r *http.Request) *http.Request
		want int
	}{
		{"admin", func(r *http.Request) *http.Request {
			return r.WithContext(WithIdentity(r.Context(), models.Identity{ID: "a", Role: models.RoleAdmin}))
		}, http.StatusNoContent},
		{"citizen", func(r *http.Request) *http.Request {
			return r.WithContext(WithIdentity(r.Context(), models.Identity{ID: "c", Role: models.RoleCitizen}))
		}, http.StatusForbidden},
		{"anonymous", func(r *http.Request) *http.Request { return r }, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := tc.ctx(httptest.NewRequest(http.MethodGet, "/api/v1/stats/summary", nil))
		rr := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rr, req)
		assert.Equal(t, tc.want, rr.Code, tc.name)
	}
}

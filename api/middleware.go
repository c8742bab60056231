package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/models"
)

// tokenCacheTTL bounds how long a verified token is trusted without
// re-checking its signature and expiry
const tokenCacheTTL = 5 * time.Minute

// Claims is the identity payload of tokens issued by the auth service
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and exposes the caller as a
// models.Identity on the request context
type Authenticator struct {
	guardian auth.Authenticator
	secret   []byte
}

// NewAuthenticator sets up go-guardian with a cached bearer strategy
func NewAuthenticator(secret string) *Authenticator {
	a := &Authenticator{secret: []byte(secret)}
	cache := store.NewFIFO(context.Background(), tokenCacheTTL)

	a.guardian = auth.New()
	a.guardian.EnableStrategy(bearer.CachedStrategyKey, bearer.New(a.verifyToken, cache))
	return a
}

// Middleware rejects requests without a valid token
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		info, err := a.guardian.Authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized", "url", r.URL.Path, "error", err)
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, models.ErrUnauthorized)
			return
		}

		id := models.Identity{ID: info.ID(), Email: info.UserName()}
		if groups := info.Groups(); len(groups) > 0 {
			id.Role = models.Role(groups[0])
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin lets only admins through. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, models.ErrUnauthorized)
			return
		}
		if !id.IsAdmin() {
			config.ErrorStatus("admin role required", http.StatusForbidden, w, models.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) verifyToken(ctx context.Context, r *http.Request, tokenString string) (auth.Info, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("token verification is not configured")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if claims.Role != models.RoleCitizen && claims.Role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}

	return auth.NewDefaultUser(claims.Email, claims.Subject, []string{string(claims.Role)}, nil), nil
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/utils"
)

const AccessTokenCookie = "accessToken"

// Authenticator resolves a raw bearer token to the user it was issued for
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (domain.User, error)
}

// Key to store the authenticated user in the request context
type key int

const userKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	authenticator Authenticator
	secureCookies bool
}

func NewAuth(authenticator Authenticator, secureCookies bool) *Auth {
	return &Auth{
		authenticator: authenticator,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(RequireAuthenticated)
}

// AdminOnly returns middleware that requires an authenticated administrator
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(RequireAdmin)
}

// OptionalAuth populates the user if the token is valid, but doesn't require auth
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := a.authenticator.Authenticate(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

func (a *Auth) auth(gate func(ctx context.Context) (*domain.User, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromCookie := extractToken(r)

			user, err := a.authenticator.Authenticate(r.Context(), token)
			if err != nil {
				var authErr *internal_errors.AuthError
				if errors.As(err, &authErr) && fromCookie && authErr.Kind != internal_errors.MissingToken {
					// stale cookie, force re-login
					a.clearCookie(w)
				}
				if !errors.As(err, &authErr) {
					logger.Log.Error("authentication failed", "error", err)
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := WithUser(r.Context(), &user)
			if _, err := gate(ctx); err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// extractToken reads "Authorization: Bearer <token>" and falls back to the
// access token cookie set at login. Reports whether the cookie was used.
func extractToken(r *http.Request) (string, bool) {
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token), false
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

// WithUser attaches an authenticated user to the context
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns nil when no user was authenticated upstream
func UserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(r *http.Request) *domain.User {
	return UserFromContext(r.Context())
}

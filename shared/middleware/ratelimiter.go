package middleware

import (
	"errors"
	"fmt"
	"net/http"

	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/padel-tracker/padel/shared/middleware/ratelimiter"
	"github.com/padel-tracker/padel/shared/utils"
)

var ErrRateLimited = &internal_errors.ErrorWithStatusCode{
	Message:    "Rate limit exceeded, try again later",
	StatusCode: http.StatusTooManyRequests,
	Code:       "RATE_LIMITED",
}

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil && user.Admin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				w.Header().Set("Retry-After", "1")
				utils.WriteErrorAndStatusCode(w, ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// Possible if user was authorized with previous middleware
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("can't get user id")
	}
	return fmt.Sprintf("user_%s", user.Id), nil
}

// GetIP is the identity function for anonymous endpoints such as login.
func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}

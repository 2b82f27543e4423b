package middleware

import (
	"context"

	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
)

// RequireAuthenticated fails with Unauthorized when no user is attached to ctx.
func RequireAuthenticated(ctx context.Context) (*domain.User, error) {
	user := UserFromContext(ctx)
	if user == nil {
		return nil, internal_errors.ErrUnauthorized
	}
	return user, nil
}

// RequireAdmin must run after authentication; presence is checked again anyway.
func RequireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !user.Admin {
		return nil, internal_errors.ErrForbidden
	}
	return user, nil
}

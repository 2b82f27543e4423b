package service

import (
	"context"
	"fmt"

	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/errors"
	"github.com/padel-tracker/padel/shared/logger"
)

const MinSeedPasswordLength = 6

type AdminStorage interface {
	User(ctx context.Context, email domain.Email) (domain.User, error)
	SetAdmin(ctx context.Context, id domain.UserId, admin bool) error
}

// Admin grants the admin flag out of band. No HTTP route reaches it.
type Admin struct {
	storage AdminStorage
	auth    AuthService
}

func NewAdmin(storage AdminStorage, auth AuthService) *Admin {
	return &Admin{storage: storage, auth: auth}
}

// Seed makes data.Email an admin, registering the account first when the
// email is unknown. The password is only used for a new account. promoted is
// false when the user already was an admin.
func (a *Admin) Seed(ctx context.Context, data domain.RegistrationData) (user domain.User, promoted bool, err error) {
	user, err = a.storage.User(ctx, normalizeEmail(data.Email))
	switch {
	case err == nil:
	case errors.IsNotFound(err):
		if len(data.Password) < MinSeedPasswordLength {
			return domain.User{}, false, fmt.Errorf("password of at least %d characters is required for a new user", MinSeedPasswordLength)
		}
		user, _, err = a.auth.Register(ctx, data)
		if err != nil {
			return domain.User{}, false, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return domain.User{}, false, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Admin {
		return user, false, nil
	}
	if err := a.storage.SetAdmin(ctx, user.Id, true); err != nil {
		return domain.User{}, false, fmt.Errorf("failed to grant admin: %w", err)
	}
	user.Admin = true
	logger.Log.Info("admin granted", "user_id", user.Id)
	return user, true, nil
}

package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/padel-tracker/padel/backend/internal/utils"
	"github.com/padel-tracker/padel/shared/domain"
	"github.com/padel-tracker/padel/shared/errors"
	"github.com/padel-tracker/padel/shared/jwt"
	"github.com/padel-tracker/padel/shared/logger"
	"github.com/padel-tracker/padel/shared/middleware/metrics"
)

type AuthService interface {
	Register(ctx context.Context, data domain.RegistrationData) (domain.User, string, error)
	Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
	Authenticate(ctx context.Context, rawToken string) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     jwt.JwtService
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	User(ctx context.Context, email domain.Email) (domain.User, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
}

var errInvalidCredentials = &errors.ErrorWithStatusCode{
	Message:    "Invalid credentials",
	StatusCode: http.StatusUnauthorized,
	Code:       "INVALID_CREDENTIALS",
}

func NewAuth(storage AuthStorage, jwt jwt.JwtService) *Auth {
	return &Auth{
		storage: storage,
		jwt:     jwt,
	}
}

func normalizeEmail(email domain.Email) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular (non-admin) user and returns it with a fresh token.
func (a *Auth) Register(ctx context.Context, data domain.RegistrationData) (domain.User, string, error) {
	email := normalizeEmail(data.Email)

	if len(data.Password) > utils.MaxPasswordBytes {
		return domain.User{}, "", errors.NewValidationError(errors.InvalidField, "Password is too long")
	}

	_, err := a.storage.User(ctx, email)
	if err == nil {
		metrics.AuthAttempts.WithLabelValues("register", "conflict").Inc()
		return domain.User{}, "", errors.Conflict("User with this email already exists")
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, "", err
	}

	passHash, err := utils.HashPassword(data.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	// storage maps a concurrent duplicate insert to Conflict as well
	user, err := a.storage.SaveUser(ctx, domain.User{Email: email, PassHash: string(passHash), Name: name})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to issue token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	user.PassHash = ""
	return user, token, nil
}

// Login returns the user and a token. Unknown email and wrong password
// produce the same error so existing accounts are not leaked.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error) {
	email := normalizeEmail(creds.Email)

	user, err := a.storage.User(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
			return domain.User{}, "", errInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if !utils.VerifyPassword(creds.Password, []byte(user.PassHash)) {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return domain.User{}, "", errInvalidCredentials
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to issue token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	user.PassHash = ""
	return user, token, nil
}

// Authenticate verifies rawToken and resolves its subject. The returned user
// never carries the password hash.
func (a *Auth) Authenticate(ctx context.Context, rawToken string) (domain.User, error) {
	if rawToken == "" {
		return domain.User{}, errors.ErrMissingToken
	}

	claims, err := a.jwt.DecodeToken(rawToken)
	if err != nil {
		return domain.User{}, errors.ErrInvalidToken
	}
	id, err := claims.SubjectId()
	if err != nil {
		return domain.User{}, errors.ErrInvalidToken
	}

	user, err := a.storage.UserById(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, errors.ErrUnknownSubject
		}
		return domain.User{}, err
	}

	user.PassHash = ""
	return user, nil
}

package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/padel-tracker/padel/shared/logger"
)

// Claims carries the subject id; everything else about the user is looked up per request
type Claims struct {
	UserId string `json:"uid"`
	jwt.RegisteredClaims
}

// SubjectId returns the user id the token was issued for
func (c *Claims) SubjectId() (domain.UserId, error) {
	return uuid.Parse(c.UserId)
}

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return NewWithClock(secretKey, ttl, time.Now)
}

// NewWithClock is New with an injectable clock for issuing and verifying
func NewWithClock(secretKey string, ttl time.Duration, now func() time.Time) *Jwt {
	return &Jwt{secretKey: secretKey, ttl: ttl, now: now}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	issuedAt := j.now()
	claims := &Claims{
		UserId: user.Id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies signature, algorithm and expiry. Every failure is InvalidToken.
func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(jwtStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, internal_errors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, internal_errors.ErrInvalidToken
	}
	if _, err := claims.SubjectId(); err != nil {
		return nil, internal_errors.ErrInvalidToken
	}

	return claims, nil
}

package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secretKey = "testJwtKey"
var user = domain.User{Id: uuid.MustParse("6f1c2a3e-8a4b-4c55-9a0e-2b7d3f9c1e11"), Email: "test@mail.ru"}

const week = 7 * 24 * time.Hour

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDecodeTokenCorrect(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := NewWithClock(secretKey, week, fixedClock(issued)).NewToken(user)
	require.NoError(t, err)

	// six days later the token still resolves to the same subject
	claims, err := NewWithClock(secretKey, week, fixedClock(issued.Add(6*24*time.Hour))).DecodeToken(token)
	require.NoError(t, err)

	subject, err := claims.SubjectId()
	require.NoError(t, err)
	assert.Equal(t, user.Id, subject)
	assert.Equal(t, issued.Add(week).Unix(), claims.ExpiresAt.Unix())
}

func TestDecodeTokenExpired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := NewWithClock(secretKey, week, fixedClock(issued)).NewToken(user)
	require.NoError(t, err)

	_, err = NewWithClock(secretKey, week, fixedClock(issued.Add(week+time.Second))).DecodeToken(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, time.Hour).NewToken(user)
	require.NoError(t, err)

	_, err = New("invalidSecret", time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenTampered(t *testing.T) {
	j := New(secretKey, time.Hour)
	token, err := j.NewToken(user)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = j.DecodeToken(tampered)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenMalformed(t *testing.T) {
	_, err := New(secretKey, time.Hour).DecodeToken("not.a.jwt")
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenWrongAlgorithm(t *testing.T) {
	claims := &Claims{
		UserId: user.Id.String(),
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secretKey))
	require.NoError(t, err)

	_, err = New(secretKey, time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenBadSubject(t *testing.T) {
	claims := &Claims{
		UserId: "42",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	require.NoError(t, err)

	_, err = New(secretKey, time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

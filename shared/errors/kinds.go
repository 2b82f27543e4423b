package errors

import "net/http"

type AuthErrorKind int

const (
	MissingToken AuthErrorKind = iota + 1
	InvalidToken
	UnknownSubject
	Unauthorized
	Forbidden
)

var authErrorCodes = map[AuthErrorKind]string{
	MissingToken:   "MISSING_TOKEN",
	InvalidToken:   "INVALID_TOKEN",
	UnknownSubject: "UNKNOWN_SUBJECT",
	Unauthorized:   "UNAUTHORIZED",
	Forbidden:      "FORBIDDEN",
}

func (k AuthErrorKind) String() string {
	if code, ok := authErrorCodes[k]; ok {
		return code
	}
	return "AUTH_ERROR"
}

// AuthError is an authentication (401) or authorization (403) failure.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Is matches any AuthError of the same kind, so sentinels can be used with errors.Is.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

func (e *AuthError) StatusCode() int {
	if e.Kind == Forbidden {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

var (
	ErrMissingToken   = &AuthError{Kind: MissingToken, Message: "Please sign-in"}
	ErrInvalidToken   = &AuthError{Kind: InvalidToken, Message: "Invalid token"}
	ErrUnknownSubject = &AuthError{Kind: UnknownSubject, Message: "User not found"}
	ErrUnauthorized   = &AuthError{Kind: Unauthorized, Message: "Not authorized"}
	ErrForbidden      = &AuthError{Kind: Forbidden, Message: "Access denied. Only for admin"}
)

type ValidationErrorKind int

const (
	InvalidTeamSize ValidationErrorKind = iota + 1
	DuplicatePlayer
	InvalidSetCount
	InvalidScore
	UnknownPlayer
	InvalidField
)

var validationErrorCodes = map[ValidationErrorKind]string{
	InvalidTeamSize: "INVALID_TEAM_SIZE",
	DuplicatePlayer: "DUPLICATE_PLAYER",
	InvalidSetCount: "INVALID_SET_COUNT",
	InvalidScore:    "INVALID_SCORE",
	UnknownPlayer:   "UNKNOWN_PLAYER",
	InvalidField:    "INVALID_FIELD",
}

func (k ValidationErrorKind) String() string {
	if code, ok := validationErrorCodes[k]; ok {
		return code
	}
	return "VALIDATION_ERROR"
}

// ValidationError rejects malformed input (400).
type ValidationError struct {
	Kind    ValidationErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

var (
	ErrInvalidTeamSize = &ValidationError{Kind: InvalidTeamSize, Message: "Each team must have exactly 2 players"}
	ErrDuplicatePlayer = &ValidationError{Kind: DuplicatePlayer, Message: "A player cannot appear twice in a match"}
	ErrInvalidSetCount = &ValidationError{Kind: InvalidSetCount, Message: "A match must have between 1 and 5 sets"}
	ErrInvalidScore    = &ValidationError{Kind: InvalidScore, Message: "Set scores cannot be negative"}
	ErrUnknownPlayer   = &ValidationError{Kind: UnknownPlayer, Message: "One or more players do not exist"}
)

func NewValidationError(kind ValidationErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

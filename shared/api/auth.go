package api

import "github.com/padel-tracker/padel/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	Id    domain.UserId `json:"id"`
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Admin bool          `json:"is_admin"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	UserResponse
	AccessToken string `json:"access_token"` // Token for non-cookie clients (mobile, API clients)
}

type LogoutResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{Id: user.Id, Email: user.Email, Name: user.Name, Admin: user.Admin}
}

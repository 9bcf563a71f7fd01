package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,otp"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=100"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// AuthResponse carries the session token plus the signed-in user.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Avatar      string          `json:"avatar,omitempty"`
	Role        models.UserRole `json:"role"`
	IsVerified  bool            `json:"is_verified"`
	CoinBalance int64           `json:"coin_balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Avatar:      user.Avatar,
		Role:        user.Role,
		IsVerified:  user.IsVerified,
		CoinBalance: user.CoinBalance,
		CreatedAt:   user.CreatedAt,
	}
}

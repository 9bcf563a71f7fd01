package dto

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
)

// AdminUserDTO is the admin/owner view of a user, including moderation
// fields hidden from the public profile.
type AdminUserDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	IsVerified  bool            `json:"is_verified"`
	IsActive    bool            `json:"is_active"`
	CoinBalance int64           `json:"coin_balance"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AdminUserListResponse struct {
	Users      []AdminUserDTO `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type UserFilterRequest struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type SetUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

func ToAdminUserDTO(user *models.User) AdminUserDTO {
	return AdminUserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		IsVerified:  user.IsVerified,
		IsActive:    user.IsActive,
		CoinBalance: user.CoinBalance,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

package services

import (
	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/auth"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"
)

// UserService is the admin/owner view over accounts.
type UserService interface {
	List(req *dto.UserFilterRequest) (*dto.AdminUserListResponse, error)
	Get(userID string) (*dto.AdminUserDTO, error)
	SetActive(adminID, userID string, active bool) error
	SetRole(callerRole models.UserRole, userID, role string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) List(req *dto.UserFilterRequest) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRole(req.Role),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	out := make([]dto.AdminUserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.ToAdminUserDTO(&users[i]))
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return &dto.AdminUserListResponse{
		Users:      out,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *UserServiceImpl) Get(userID string) (*dto.AdminUserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	out := dto.ToAdminUserDTO(user)
	return &out, nil
}

// SetActive disables or re-enables an account. Admins cannot touch
// other admins or the owner.
func (s *UserServiceImpl) SetActive(adminID, userID string, active bool) error {
	if adminID == userID {
		return appErrors.ErrForbidden
	}
	target, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}
	if target.Role != models.UserRoleUser {
		return appErrors.ErrForbidden
	}

	if err := s.userRepo.SetActive(userID, active); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// SetRole promotes or demotes an account. Only the owner may grant
// the admin role, and the owner role is never assignable.
func (s *UserServiceImpl) SetRole(callerRole models.UserRole, userID, role string) error {
	if err := auth.ValidateRole(role); err != nil {
		return appErrors.ValidationError(map[string]string{"role": "unknown role"})
	}
	if models.UserRole(role) == models.UserRoleOwner {
		return appErrors.ErrForbidden
	}
	if callerRole != models.UserRoleOwner {
		return appErrors.ErrForbidden
	}

	target, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}
	if target.Role == models.UserRoleOwner {
		return appErrors.ErrForbidden
	}

	if err := s.userRepo.SetRole(userID, models.UserRole(role)); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

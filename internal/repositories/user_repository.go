package repositories

import (
	"errors"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	// User operations
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByGoogleID(googleID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	Delete(userID string) error

	// Verification workflow
	SetOTP(userID, code string, expiresAt, sentAt time.Time) error
	IncrementOTPAttempts(userID string) error
	MarkVerified(userID string) error

	// Credentials
	SetPassword(userID, passwordHash string) error
	UpdateLastLogin(userID string) error

	// Admin operations
	SetActive(userID string, active bool) error
	SetRole(userID string, role models.UserRole) error
	FindWithFilter(criteria UserFilter) ([]models.User, int64, error)
	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

type UserFilter struct {
	Role       models.UserRole
	IsVerified *bool
	IsActive   *bool
	Search     string
	Page       int
	PageSize   int
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "google_id = ?", googleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	result := r.db.Delete(&models.User{}, "id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetOTP(userID, code string, expiresAt, sentAt time.Time) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"otp_code":         code,
		"otp_expires_at":   expiresAt,
		"otp_attempts":     0,
		"otp_last_sent_at": sentAt,
	})
}

func (r *UserRepositoryImpl) IncrementOTPAttempts(userID string) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"otp_attempts": gorm.Expr("otp_attempts + 1"),
	})
}

func (r *UserRepositoryImpl) MarkVerified(userID string) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"is_verified":    true,
		"otp_code":       "",
		"otp_expires_at": nil,
		"otp_attempts":   0,
	})
}

func (r *UserRepositoryImpl) SetPassword(userID, passwordHash string) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (r *UserRepositoryImpl) UpdateLastLogin(userID string) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"last_login_at": time.Now(),
	})
}

func (r *UserRepositoryImpl) SetActive(userID string, active bool) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"is_active": active,
	})
}

func (r *UserRepositoryImpl) SetRole(userID string, role models.UserRole) error {
	return r.UpdateFields(userID, map[string]interface{}{
		"role": role,
	})
}

func (r *UserRepositoryImpl) FindWithFilter(criteria UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.IsVerified != nil {
		query = query.Where("is_verified = ?", *criteria.IsVerified)
	}
	if criteria.IsActive != nil {
		query = query.Where("is_active = ?", *criteria.IsActive)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

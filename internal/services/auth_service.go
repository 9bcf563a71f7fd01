package services

import (
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/auth"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/email"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"gorm.io/gorm"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) error
	VerifyOTP(req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	ResendOTP(email string) error
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleLogin(idToken string) (*dto.AuthResponse, error)
	ForgotPassword(email string) error
	ResetPassword(req *dto.ResetPasswordRequest) error
	ChangePassword(userID, currentPassword, newPassword string) error
	GetProfile(userID string) (*dto.UserDTO, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	DeleteAccount(userID, password string) error
}

type AuthServiceImpl struct {
	db            *gorm.DB
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	verifier      auth.TokenVerifier
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	verifier auth.TokenVerifier,
) AuthService {
	return &AuthServiceImpl{
		db:            db,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		verifier:      verifier,
	}
}

// Signup creates an unverified account and emails a one-time code.
// Signing up again with an unverified email refreshes the code instead
// of failing.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return appErrors.ErrWeakPassword
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !appErrors.Is(err, repositories.ErrUserNotFound) {
		return appErrors.InternalError(err)
	}
	if existing != nil {
		if existing.IsVerified {
			return appErrors.ErrEmailAlreadyExists
		}
		return s.issueOTP(existing, false)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
			return appErrors.ErrEmailAlreadyExists
		}
		return appErrors.InternalError(err)
	}

	if err := s.issueOTP(user, false); err != nil {
		// Undeliverable accounts are not kept around: the next signup
		// attempt starts clean.
		if delErr := s.userRepo.Delete(user.ID); delErr != nil {
			logger.WithError(delErr).Error("failed to roll back unverifiable signup", "user_id", user.ID)
		}
		return err
	}
	return nil
}

// issueOTP stores a fresh code on the account and emails it. For the
// reset flow the password-reset template is used instead.
func (s *AuthServiceImpl) issueOTP(user *models.User, forReset bool) error {
	code, err := auth.GenerateOTP()
	if err != nil {
		return appErrors.InternalError(err)
	}

	now := time.Now()
	if err := s.userRepo.SetOTP(user.ID, code, now.Add(auth.OTPLifetime), now); err != nil {
		return appErrors.InternalError(err)
	}

	if forReset {
		err = s.emailProvider.SendPasswordResetOTP(user.Email, user.Name, code)
	} else {
		err = s.emailProvider.SendOTP(user.Email, user.Name, code)
	}
	if err != nil {
		logger.WithError(err).Error("failed to deliver verification code", "email", user.Email)
		return appErrors.ErrEmailDeliveryFailed
	}
	return nil
}

func (s *AuthServiceImpl) VerifyOTP(req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.IsVerified {
		return nil, appErrors.ErrAlreadyVerified
	}

	// The attempt cap is checked before the code: a correct code on the
	// sixth try is still rejected.
	if user.OTPAttempts >= auth.OTPMaxAttempts {
		return nil, appErrors.ErrTooManyAttempts
	}

	if !s.otpMatches(user, req.Code) {
		if err := s.userRepo.IncrementOTPAttempts(user.ID); err != nil {
			return nil, appErrors.InternalError(err)
		}
		attemptsLeft := auth.OTPMaxAttempts - user.OTPAttempts - 1
		if attemptsLeft < 0 {
			attemptsLeft = 0
		}
		return nil, appErrors.ErrInvalidOrExpiredOTP.WithDetails(map[string]interface{}{
			"attempts_left": attemptsLeft,
		})
	}

	if err := s.userRepo.MarkVerified(user.ID); err != nil {
		return nil, appErrors.InternalError(err)
	}
	user.IsVerified = true

	if err := s.emailProvider.SendWelcome(user.Email, user.Name); err != nil {
		logger.WithError(err).Warn("failed to send welcome email", "email", user.Email)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) otpMatches(user *models.User, code string) bool {
	if user.OTPCode == "" || user.OTPCode != code {
		return false
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return false
	}
	return true
}

func (s *AuthServiceImpl) ResendOTP(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.IsVerified {
		return appErrors.ErrAlreadyVerified
	}
	if !s.resendAllowed(user) {
		return appErrors.ErrOTPRateLimited
	}

	return s.issueOTP(user, false)
}

func (s *AuthServiceImpl) resendAllowed(user *models.User) bool {
	return user.OTPLastSentAt == nil ||
		time.Since(*user.OTPLastSentAt) >= auth.OTPResendInterval
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if user.IsGoogleAccount() {
		return nil, appErrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, appErrors.ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, appErrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.WithError(err).Warn("failed to record last login", "user_id", user.ID)
	}

	return s.buildAuthResponse(user)
}

// GoogleLogin signs in through a verified Google ID token, linking to
// an existing account by email or creating a new verified one.
func (s *AuthServiceImpl) GoogleLogin(idToken string) (*dto.AuthResponse, error) {
	profile, err := s.verifier.Verify(idToken)
	if err != nil {
		return nil, appErrors.ErrInvalidExternalToken
	}

	user, err := s.userRepo.FindByGoogleID(profile.Sub)
	if err != nil && !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.InternalError(err)
	}

	if user == nil {
		user, err = s.userRepo.FindByEmail(profile.Email)
		if err != nil && !appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.InternalError(err)
		}
		if user != nil {
			// Link the external identity to the existing account.
			if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
				"google_id":   profile.Sub,
				"is_verified": true,
			}); err != nil {
				return nil, appErrors.InternalError(err)
			}
			user.GoogleID = profile.Sub
			user.IsVerified = true
		}
	}

	if user == nil {
		user = &models.User{
			Name:       profile.Name,
			Email:      profile.Email,
			GoogleID:   profile.Sub,
			Avatar:     profile.Picture,
			IsVerified: true,
			Role:       models.UserRoleUser,
			IsActive:   true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	if !user.IsActive {
		return nil, appErrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.WithError(err).Warn("failed to record last login", "user_id", user.ID)
	}

	return s.buildAuthResponse(user)
}

// ForgotPassword always reports success so callers cannot probe which
// emails are registered.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return appErrors.InternalError(err)
	}
	if user.IsGoogleAccount() {
		return nil
	}
	if !s.resendAllowed(user) {
		return appErrors.ErrOTPRateLimited
	}

	if err := s.issueOTP(user, true); err != nil {
		// Still no existence leak: log and swallow delivery problems.
		logger.WithError(err).Error("failed to send reset code", "email", emailAddr)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.IsGoogleAccount() {
		return appErrors.ErrExternalAuthAccount
	}
	if user.OTPAttempts >= auth.OTPMaxAttempts {
		return appErrors.ErrTooManyAttempts
	}
	if !s.otpMatches(user, req.Code) {
		if err := s.userRepo.IncrementOTPAttempts(user.ID); err != nil {
			return appErrors.InternalError(err)
		}
		return appErrors.ErrInvalidOrExpiredOTP
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"password_hash":  hash,
		"otp_code":       "",
		"otp_expires_at": nil,
		"otp_attempts":   0,
	}); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.IsGoogleAccount() {
		return appErrors.ErrExternalAuthAccount
	}
	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return appErrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return appErrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if err := s.userRepo.SetPassword(userID, hash); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) GetProfile(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	out := dto.ToUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			if appErrors.Is(err, repositories.ErrUserNotFound) {
				return nil, appErrors.ErrUserNotFound
			}
			return nil, appErrors.InternalError(err)
		}
	}
	return s.GetProfile(userID)
}

// DeleteAccount removes the user and their mailbox in one database
// transaction. Password-gated; external-auth accounts must use their
// provider and are rejected here.
func (s *AuthServiceImpl) DeleteAccount(userID, password string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.IsGoogleAccount() {
		return appErrors.ErrExternalAuthAccount
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return appErrors.ErrInvalidCredentials
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewNotificationRepository(tx).DeleteUserNotifications(userID); err != nil {
			return err
		}
		return repositories.NewUserRepository(tx).Delete(userID)
	})
	if err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserDTO(user),
	}, nil
}

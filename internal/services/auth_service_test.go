package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/auth"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeUserRepo is an in-memory UserRepository for exercising the auth
// workflows without a database.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByGoogleID(googleID string) (*models.User, error) {
	for _, u := range r.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "avatar":
			u.Avatar = v.(string)
		case "google_id":
			u.GoogleID = v.(string)
		case "is_verified":
			u.IsVerified = v.(bool)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "otp_code":
			u.OTPCode = v.(string)
		case "otp_expires_at":
			u.OTPExpiresAt = nil
		case "otp_attempts":
			u.OTPAttempts = 0
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) SetOTP(userID, code string, expiresAt, sentAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.OTPCode = code
	u.OTPExpiresAt = &expiresAt
	u.OTPLastSentAt = &sentAt
	u.OTPAttempts = 0
	return nil
}

func (r *fakeUserRepo) IncrementOTPAttempts(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.OTPAttempts++
	return nil
}

func (r *fakeUserRepo) MarkVerified(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	u.OTPCode = ""
	u.OTPAttempts = 0
	return nil
}

func (r *fakeUserRepo) SetPassword(userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) SetActive(userID string, active bool) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) SetRole(userID string, role models.UserRole) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) FindWithFilter(criteria repositories.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountAll() (int64, error) {
	return int64(len(r.users)), nil
}

// capturingEmail records sent codes instead of delivering anything.
type capturingEmail struct {
	otpCodes   []string
	resetCodes []string
	welcomes   int
}

func (e *capturingEmail) SendOTP(to, name, code string) error {
	e.otpCodes = append(e.otpCodes, code)
	return nil
}

func (e *capturingEmail) SendPasswordResetOTP(to, name, code string) error {
	e.resetCodes = append(e.resetCodes, code)
	return nil
}

func (e *capturingEmail) SendWelcome(to, name string) error {
	e.welcomes++
	return nil
}

func (e *capturingEmail) SendSaleCompleted(to, name, itemTitle string, coins int64) error {
	return nil
}

// brokenEmail fails every send, like an unreachable SMTP relay.
type brokenEmail struct {
	capturingEmail
}

func (e *brokenEmail) SendOTP(to, name, code string) error {
	return errors.New("smtp: connection refused")
}

type staticVerifier struct {
	profile *auth.GoogleProfile
	err     error
}

func (v *staticVerifier) Verify(idToken string) (*auth.GoogleProfile, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.profile, nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *capturingEmail) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/thryfto_test?sslmode=disable")
	t.Setenv("JWT_SECRET", "jwt_secret_for_tests_12345")
	config.LoadConfig()

	repo := newFakeUserRepo()
	mail := &capturingEmail{}
	svc := NewAuthService(nil, repo, mail, &staticVerifier{profile: &auth.GoogleProfile{
		Sub:   "google-sub-1",
		Email: "google@example.com",
		Name:  "Google User",
	}})
	return svc, repo, mail
}

func signupVerified(t *testing.T, svc AuthService, repo *fakeUserRepo, mail *capturingEmail, email string) *models.User {
	err := svc.Signup(&dto.SignupRequest{Name: "Asel", Email: email, Password: "secret123"})
	assert.NoError(t, err)

	_, err = svc.VerifyOTP(&dto.VerifyOTPRequest{Email: email, Code: mail.otpCodes[len(mail.otpCodes)-1]})
	assert.NoError(t, err)

	user, err := repo.FindByEmail(email)
	assert.NoError(t, err)
	return user
}

func TestSignupAndVerify_HappyPath(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	err := svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"})
	assert.NoError(t, err)
	assert.Len(t, mail.otpCodes, 1)

	user, err := repo.FindByEmail("asel@example.com")
	assert.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, models.UserRoleUser, user.Role)

	resp, err := svc.VerifyOTP(&dto.VerifyOTPRequest{Email: "asel@example.com", Code: mail.otpCodes[0]})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsVerified)
	assert.Equal(t, 1, mail.welcomes)
}

func TestSignup_WeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "12345"})
	assert.True(t, appErrors.Is(err, appErrors.ErrWeakPassword))
}

func TestSignup_UnverifiedDuplicateReissuesCode(t *testing.T) {
	svc, _, mail := newAuthFixture(t)

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))
	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))
	assert.Len(t, mail.otpCodes, 2)
}

func TestSignup_UndeliverableAccountIsRolledBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/thryfto_test?sslmode=disable")
	t.Setenv("JWT_SECRET", "jwt_secret_for_tests_12345")
	config.LoadConfig()

	repo := newFakeUserRepo()
	svc := NewAuthService(nil, repo, &brokenEmail{}, &staticVerifier{})

	err := svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrEmailDeliveryFailed))

	// The half-created account must not block a later attempt.
	_, err = repo.FindByEmail("asel@example.com")
	assert.True(t, appErrors.Is(err, repositories.ErrUserNotFound))
}

func TestSignup_VerifiedDuplicateRejected(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	signupVerified(t, svc, repo, mail, "asel@example.com")

	err := svc.Signup(&dto.SignupRequest{Name: "Imposter", Email: "asel@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrEmailAlreadyExists))
}

func TestVerifyOTP_SixthCorrectAttemptStillFails(t *testing.T) {
	svc, _, mail := newAuthFixture(t)

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))
	code := mail.otpCodes[0]

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	for i := 0; i < auth.OTPMaxAttempts; i++ {
		_, err := svc.VerifyOTP(&dto.VerifyOTPRequest{Email: "asel@example.com", Code: wrong})
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidOrExpiredOTP), "attempt %d", i+1)
	}

	// The correct code no longer helps once the cap is hit.
	_, err := svc.VerifyOTP(&dto.VerifyOTPRequest{Email: "asel@example.com", Code: code})
	assert.True(t, appErrors.Is(err, appErrors.ErrTooManyAttempts))
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))
	user, _ := repo.FindByEmail("asel@example.com")

	past := time.Now().Add(-time.Minute)
	repo.users[user.ID].OTPExpiresAt = &past

	_, err := svc.VerifyOTP(&dto.VerifyOTPRequest{Email: "asel@example.com", Code: mail.otpCodes[0]})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidOrExpiredOTP))
}

func TestResendOTP_RateLimited(t *testing.T) {
	svc, _, mail := newAuthFixture(t)

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))

	err := svc.ResendOTP("asel@example.com")
	assert.True(t, appErrors.Is(err, appErrors.ErrOTPRateLimited))
	assert.Len(t, mail.otpCodes, 1)
}

func TestResendOTP_AllowedAfterInterval(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))
	user, _ := repo.FindByEmail("asel@example.com")

	earlier := time.Now().Add(-auth.OTPResendInterval - time.Second)
	repo.users[user.ID].OTPLastSentAt = &earlier

	assert.NoError(t, svc.ResendOTP("asel@example.com"))
	assert.Len(t, mail.otpCodes, 2)
}

func TestLogin_Gates(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	// Unknown email and bad password look identical to the caller.
	_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	assert.NoError(t, svc.Signup(&dto.SignupRequest{Name: "Asel", Email: "asel@example.com", Password: "secret123"}))

	// Unverified accounts cannot log in even with the right password.
	_, err = svc.Login(&dto.LoginRequest{Email: "asel@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrEmailNotVerified))

	user := signupVerified(t, svc, repo, mail, "dana@example.com")

	_, err = svc.Login(&dto.LoginRequest{Email: "dana@example.com", Password: "wrong_password"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	resp, err := svc.Login(&dto.LoginRequest{Email: "dana@example.com", Password: "secret123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// Deactivated accounts are locked out.
	repo.users[user.ID].IsActive = false
	_, err = svc.Login(&dto.LoginRequest{Email: "dana@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrAccountDisabled))
}

func TestGoogleLogin_CreatesVerifiedAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	resp, err := svc.GoogleLogin("some-id-token")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	user, err := repo.FindByGoogleID("google-sub-1")
	assert.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Equal(t, "google@example.com", user.Email)
}

func TestGoogleLogin_LinksExistingEmailAccount(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	existing := signupVerified(t, svc, repo, mail, "google@example.com")

	resp, err := svc.GoogleLogin("some-id-token")
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, resp.User.ID)

	linked, err := repo.FindByID(existing.ID)
	assert.NoError(t, err)
	assert.Equal(t, "google-sub-1", linked.GoogleID)
}

func TestForgotPassword_NeverLeaksExistence(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)

	// Unknown email: silent success, nothing sent.
	assert.NoError(t, svc.ForgotPassword("nobody@example.com"))
	assert.Empty(t, mail.resetCodes)

	user := signupVerified(t, svc, repo, mail, "asel@example.com")
	repo.users[user.ID].OTPLastSentAt = nil

	assert.NoError(t, svc.ForgotPassword("asel@example.com"))
	assert.Len(t, mail.resetCodes, 1)
}

func TestResetPassword_FullFlow(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	user := signupVerified(t, svc, repo, mail, "asel@example.com")
	repo.users[user.ID].OTPLastSentAt = nil

	assert.NoError(t, svc.ForgotPassword("asel@example.com"))
	code := mail.resetCodes[0]

	err := svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:       "asel@example.com",
		Code:        "999999",
		NewPassword: "brand_new_password",
	})
	if code == "999999" {
		t.Skip("generated code collided with the intentionally wrong one")
	}
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidOrExpiredOTP))

	assert.NoError(t, svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:       "asel@example.com",
		Code:        code,
		NewPassword: "brand_new_password",
	}))

	_, err = svc.Login(&dto.LoginRequest{Email: "asel@example.com", Password: "secret123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	resp, err := svc.Login(&dto.LoginRequest{Email: "asel@example.com", Password: "brand_new_password"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestChangePassword(t *testing.T) {
	svc, repo, mail := newAuthFixture(t)
	user := signupVerified(t, svc, repo, mail, "asel@example.com")

	err := svc.ChangePassword(user.ID, "wrong_password", "new_password_1")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	err = svc.ChangePassword(user.ID, "secret123", "short")
	assert.True(t, appErrors.Is(err, appErrors.ErrWeakPassword))

	assert.NoError(t, svc.ChangePassword(user.ID, "secret123", "new_password_1"))

	resp, err := svc.Login(&dto.LoginRequest{Email: "asel@example.com", Password: "new_password_1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

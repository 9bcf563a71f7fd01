package services

import (
	"testing"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/appErrors"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func seedUser(repo *fakeUserRepo, id string, role models.UserRole) *models.User {
	u := &models.User{
		BaseModel:  models.BaseModel{ID: id},
		Name:       id,
		Email:      id + "@example.com",
		Role:       role,
		IsActive:   true,
		IsVerified: true,
	}
	repo.users[id] = u
	return u
}

func TestSetActive_Rules(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	seedUser(repo, "admin-1", models.UserRoleAdmin)
	seedUser(repo, "admin-2", models.UserRoleAdmin)
	seedUser(repo, "owner-1", models.UserRoleOwner)
	seedUser(repo, "user-1", models.UserRoleUser)

	// Admins cannot deactivate themselves.
	err := svc.SetActive("admin-1", "admin-1", false)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// Nor other admins or the owner.
	err = svc.SetActive("admin-1", "admin-2", false)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
	err = svc.SetActive("admin-1", "owner-1", false)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	err = svc.SetActive("admin-1", "ghost", false)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))

	// Regular users can be disabled and re-enabled.
	assert.NoError(t, svc.SetActive("admin-1", "user-1", false))
	assert.False(t, repo.users["user-1"].IsActive)
	assert.NoError(t, svc.SetActive("admin-1", "user-1", true))
	assert.True(t, repo.users["user-1"].IsActive)
}

func TestSetRole_Rules(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	seedUser(repo, "owner-1", models.UserRoleOwner)
	seedUser(repo, "user-1", models.UserRoleUser)
	seedUser(repo, "admin-1", models.UserRoleAdmin)

	// Only the owner grants roles.
	err := svc.SetRole(models.UserRoleAdmin, "user-1", "admin")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// The owner role itself is never assignable.
	err = svc.SetRole(models.UserRoleOwner, "user-1", "owner")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	// And the owner account is untouchable.
	err = svc.SetRole(models.UserRoleOwner, "owner-1", "user")
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	err = svc.SetRole(models.UserRoleOwner, "user-1", "janitor")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidationFailed))

	assert.NoError(t, svc.SetRole(models.UserRoleOwner, "user-1", "admin"))
	assert.Equal(t, models.UserRoleAdmin, repo.users["user-1"].Role)

	assert.NoError(t, svc.SetRole(models.UserRoleOwner, "admin-1", "user"))
	assert.Equal(t, models.UserRoleUser, repo.users["admin-1"].Role)
}

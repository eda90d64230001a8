package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

func TestUserChangeRole(t *testing.T) {
	api := &fakeAPI{}
	svc := NewUserService(api, logging.Discard())

	res, err := svc.ChangeRole(context.Background(), testToken, testUserID, models.RoleBanned)
	require.NoError(t, err)
	assert.Equal(t, "User Edited!", res.Notice.Message)
	assert.Equal(t, models.RoleBanned, res.User.Role)
}

func TestUserChangeRoleRejectsUnassignable(t *testing.T) {
	api := &fakeAPI{}
	svc := NewUserService(api, logging.Discard())

	for _, role := range []models.Role{"", models.RoleDentist, "root"} {
		_, err := svc.ChangeRole(context.Background(), testToken, testUserID, role)
		_, msg := flowKind(err)
		assert.Equal(t, "Please select a role.", msg)
	}
	assert.Equal(t, 0, api.count("UpdateUser"))
}

func TestUserChangeRoleFailure(t *testing.T) {
	api := &fakeAPI{updateUser: func(string, backend.UserUpdate) (*models.User, error) {
		return nil, &backend.Error{Code: backend.CodeForbidden, Status: 403}
	}}
	svc := NewUserService(api, logging.Discard())

	_, err := svc.ChangeRole(context.Background(), testToken, testUserID, models.RoleAdmin)
	kind, msg := flowKind(err)
	assert.Equal(t, KindForbidden, kind)
	assert.Equal(t, "Failed to edit user.", msg)
}

func TestUserListAndGet(t *testing.T) {
	svc := NewUserService(&fakeAPI{}, logging.Discard())

	users, err := svc.List(context.Background(), testToken)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.Get(context.Background(), "", testUserID)
	kind, _ := flowKind(err)
	assert.Equal(t, KindUnauthenticated, kind)
}

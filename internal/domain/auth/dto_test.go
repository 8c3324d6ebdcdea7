package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeoff-portal/internal/domain/user"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr map[string]string
	}{
		{
			name: "valid",
			req:  RegisterRequest{DisplayName: "Ana", Email: "ana@example.com", Password: "password123", ConfirmPassword: "password123"},
		},
		{
			name:    "mismatched confirmation",
			req:     RegisterRequest{Email: "ana@example.com", Password: "password123", ConfirmPassword: "password124"},
			wantErr: map[string]string{"confirm_password": "password and confirm_password do not match"},
		},
		{
			name: "missing fields",
			req:  RegisterRequest{},
			wantErr: map[string]string{
				"email":            "email is required",
				"password":         "password is required",
				"confirm_password": "confirm_password is required",
			},
		},
		{
			name:    "short password",
			req:     RegisterRequest{Email: "ana@example.com", Password: "short", ConfirmPassword: "short"},
			wantErr: map[string]string{"password": "password must be at least 8 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.wantErr, errs.ToMap())
		})
	}
}

func TestLoginRequest_InvalidEmail(t *testing.T) {
	req := LoginRequest{Email: "not-an-email", Password: "password123"}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "email")
}

func TestRefreshTokenRequest_Required(t *testing.T) {
	req := RefreshTokenRequest{RefreshToken: " "}
	assert.Error(t, req.Validate())

	req.RefreshToken = "token"
	assert.NoError(t, req.Validate())
}

func TestSessionFromContext(t *testing.T) {
	_, err := SessionFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	ctx := WithSession(context.Background(), Session{UserID: "u1", Email: "a@b.co", Role: user.RoleManager})
	s, err := SessionFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.True(t, s.Can(user.PermissionTimeOffApprove))
	assert.False(t, s.Can(user.PermissionUserManage))
}

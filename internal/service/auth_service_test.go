package service

import (
	"context"
	"testing"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo repository.UserRepository) AuthService {
	return NewAuthService(userRepo, utils.NewJWTUtil("test-secret", 1))
}

func validSignup() model.SignupRequest {
	return model.SignupRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
		Phone:    "0123456789",
	}
}

func TestSignup_Validation(t *testing.T) {
	svc := newAuthService(&fakeUserRepo{})

	tests := []struct {
		name    string
		mutate  func(*model.SignupRequest)
		wantMsg string
	}{
		{"short password", func(r *model.SignupRequest) { r.Password = "12345" }, "Password must be at least 6 characters"},
		{"bad email", func(r *model.SignupRequest) { r.Email = "not-an-email" }, "Valid email is required"},
		{"short phone", func(r *model.SignupRequest) { r.Phone = "123" }, "Valid phone number is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)
			_, err := svc.Signup(context.Background(), req)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.MessageOf(err))
		})
	}
}

func TestSignup_LowercasesEmailAndDefaultsRole(t *testing.T) {
	var created *model.User
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*model.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return nil, repository.ErrNotFound
		},
		create: func(_ context.Context, user *model.User) error {
			created = user
			user.ID = 7
			return nil
		},
	}

	user, err := newAuthService(repo).Signup(context.Background(), validSignup())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, 7, user.ID)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))
}

func TestSignup_AdminRoleHonored(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*model.User, error) { return nil, repository.ErrNotFound },
		create:      func(_ context.Context, _ *model.User) error { return nil },
	}
	req := validSignup()
	req.Role = "admin"

	user, err := newAuthService(repo).Signup(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestSignup_EmailAlreadyRegistered(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*model.User, error) {
			return &model.User{ID: 1}, nil
		},
	}

	_, err := newAuthService(repo).Signup(context.Background(), validSignup())

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))
}

func TestSignin(t *testing.T) {
	hash, _ := utils.HashPassword("secret123")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, email string) (*model.User, error) {
			if email != "alice@example.com" {
				return nil, repository.ErrNotFound
			}
			return &model.User{ID: 7, Email: email, PasswordHash: hash, Role: model.RoleCustomer}, nil
		},
	}
	svc := newAuthService(repo)

	user, token, err := svc.Signin(context.Background(), model.SigninRequest{Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Signin(context.Background(), model.SigninRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))

	_, _, err = svc.Signin(context.Background(), model.SigninRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.Equal(t, "Invalid email or password", apperr.MessageOf(err))
}

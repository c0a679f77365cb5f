package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/utils"
)

// AuthService provides signup and signin
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Signin(ctx context.Context, req model.SigninRequest) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{userRepo: userRepo, jwtUtil: jwtUtil}
}

// Signup creates a new user account. Role defaults to customer when the
// request carries none or an unrecognized value.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if len(req.Password) < 6 {
		return nil, apperr.Validation("Password must be at least 6 characters")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.Validation("Valid email is required")
	}
	if len(req.Phone) < 10 {
		return nil, apperr.Validation("Valid phone number is required")
	}

	email := strings.ToLower(req.Email)

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         model.RoleOrDefault(req.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Signin authenticates a user and returns a JWT token. Failure never
// reveals whether the email or the password was wrong.
func (s *authService) Signin(ctx context.Context, req model.SigninRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.Unauthenticated("Invalid email or password")
		}
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperr.Unauthenticated("Invalid email or password")
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

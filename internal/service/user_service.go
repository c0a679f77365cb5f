package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/policy"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/repository"
)

// UserService defines operations over user records
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	UpdateUser(ctx context.Context, caller policy.Claims, id int, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, caller policy.Claims, id int) error
}

type userService struct {
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, bookingRepo repository.BookingRepository) UserService {
	return &userService{userRepo: userRepo, bookingRepo: bookingRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update. Customers may only touch their own
// non-role fields; role changes are an admin operation.
func (s *userService) UpdateUser(ctx context.Context, caller policy.Claims, id int, req model.UpdateUserRequest) (*model.User, error) {
	if caller.Role == model.RoleCustomer {
		if caller.UserID != id {
			return nil, apperr.Forbidden("You can only update your own profile")
		}
		if req.Role != nil {
			return nil, apperr.Forbidden("You cannot change your role")
		}
	}
	if req.Empty() {
		return nil, apperr.Validation("No update data provided")
	}
	if req.Role != nil && !model.Role(*req.Role).Valid() {
		return nil, apperr.Validation("Role must be either 'admin' or 'customer'")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		req.Email = &email
		taken, err := s.userRepo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("Email already in use")
		}
	}

	user, err := s.userRepo.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperr.NotFound("User not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user. Admin only, never themselves, and never a
// user who still owns an active booking.
func (s *userService) DeleteUser(ctx context.Context, caller policy.Claims, id int) error {
	if caller.Role != model.RoleAdmin {
		return apperr.Forbidden("Only admin can delete users")
	}
	if caller.UserID == id {
		return apperr.Validation("Admin cannot delete their own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}

	hasActive, err := s.bookingRepo.HasActiveByCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if hasActive {
		return apperr.Conflict("Cannot delete user with active bookings")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

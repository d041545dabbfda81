package services

import (
	"context"
	"errors"
	"log"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// User management errors
var (
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrWeakPassword  = errors.New("password does not meet requirements")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// ListTechnicians lists active technicians (for work order assignment)
func (s *UserService) ListTechnicians(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleTechnician)
}

// GetByID returns a user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	Email string `json:"email"`
}

// UpdateProfile updates a user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserAlreadyExists
		}
		user.Email = input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(current, user.Password) {
		return ErrWrongPassword
	}
	if !password.ValidatePassword(next) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(next)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// SetRole changes a user's role (admin operation). The new role must be
// on the closed role set.
func (s *UserService) SetRole(ctx context.Context, userID uint, rawRole string) (*models.User, error) {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return nil, ErrUnknownRole
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = string(role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Role of user %s set to %s", user.Username, role)
	return user, nil
}

// SetActive enables or disables a user account
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes a user
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/domain/services"
)

// UserService implements the UserService interface
type UserService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
	logger     *slog.Logger
}

// NewUserService creates a user service hashing with bcrypt.DefaultCost
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &UserService{userRepo: userRepo, bcryptCost: bcrypt.DefaultCost, logger: logger}
}

// NewUserServiceWithCost creates a user service with a custom bcrypt cost
func NewUserServiceWithCost(userRepo repositories.UserRepository, cost int, logger *slog.Logger) services.UserService {
	return &UserService{userRepo: userRepo, bcryptCost: cost, logger: logger}
}

// CreateUser validates, hashes and inserts. The plain-text password never reaches storage.
func (s *UserService) CreateUser(ctx context.Context, req *services.CreateUserRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required, validation.Length(config.MinPasswordLength, 72)),
		validation.Field(&req.Role, validation.In(models.RoleUser, models.RoleAdmin)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate checks an email/password pair
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.UnauthorizedError{Message: "invalid email or password"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &domain.UnauthorizedError{Message: "invalid email or password"}
	}
	return user, nil
}

// ResolveCaller loads the caller identity for a verified token subject
func (s *UserService) ResolveCaller(ctx context.Context, userID string) (*models.Caller, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.UnauthorizedError{Message: "unknown user"}
		}
		return nil, err
	}
	return user.Caller(), nil
}

// FindByEmail looks a user up by email
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
}

// SetRole assigns a role to the user with the given email
func (s *UserService) SetRole(ctx context.Context, email, role string) (*models.User, error) {
	if err := validation.Validate(role, validation.Required, validation.In(models.RoleUser, models.RoleAdmin)); err != nil {
		return nil, fmt.Errorf("%w: role: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, role); err != nil {
		return nil, err
	}
	user.Role = role

	s.logger.Info("user role changed", "user_id", user.ID, "role", role)
	return user, nil
}

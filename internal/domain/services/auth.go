package services

import (
	"context"

	"inkwell/internal/domain/models"
)

// UserService creates and administers accounts.
// Hashing is an explicit pipeline step, never a persistence hook.
type UserService interface {
	// CreateUser validates credentials, hashes the password and inserts the user
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)

	// Authenticate checks an email/password pair and returns the user
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// ResolveCaller loads the caller identity (including role) for a user ID
	ResolveCaller(ctx context.Context, userID string) (*models.Caller, error)

	// FindByEmail looks a user up by email, case-insensitively
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// SetRole changes a user's role ("user" or "admin")
	SetRole(ctx context.Context, email, role string) (*models.User, error)
}

// CreateUserRequest carries plain-text credentials into the pipeline
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // Defaults to "user"
}

package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        domain.Role
}

// AuthService implements account registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

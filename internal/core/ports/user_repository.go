package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// UserRepository defines persistence operations for org users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByParentID returns the direct children of the given user.
	FindByParentID(ctx context.Context, parentID string) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// UpdateRoleAndParent commits a promotion: role, parent and the resolved
	// program/sites are written in a single update.
	UpdateRoleAndParent(ctx context.Context, id string, role domain.Role, parentID string, program string, sites []string) error

	// UpdateParent rewrites only the parent back-reference.
	UpdateParent(ctx context.Context, id string, parentID string) error

	// UpdateAttributes rewrites only program/sites.
	UpdateAttributes(ctx context.Context, id string, program string, sites []string) error
}

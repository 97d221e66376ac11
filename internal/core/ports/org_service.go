package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// TreeNode is one node of the validated descendant tree. Children whose role
// does not structurally match the parent are pruned, not included.
type TreeNode struct {
	User     *domain.User
	Children []*TreeNode
}

// UpdateAttributesInput carries an attribute edit on a single user.
type UpdateAttributesInput struct {
	UserID  string
	Program string
	Sites   []string
}

// OrgService exposes tree queries and attribute propagation.
type OrgService interface {
	// DescendantTree builds the validated tree rooted at rootID.
	DescendantTree(ctx context.Context, rootID string) (*TreeNode, error)

	// UpdateAttributes persists a program/sites edit on an authoritative or
	// single-site node and cascades it through the subtree. Returns the
	// number of descendant nodes updated.
	UpdateAttributes(ctx context.Context, in UpdateAttributesInput) (int, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightpaths/org-system/internal/api/metrics"
	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
	"github.com/brightpaths/org-system/pkg/rolegraph"
)

// maxTraversalDepth bounds descendant walks. The bound exists purely to
// tolerate corrupted parent links in the backing store; well-formed trees are
// at most three levels deep (program-leader → site-supervisor → frontline-staff).
const maxTraversalDepth = 10

// OrgTree is the queryable view of users linked by parent back-references.
type OrgTree struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewOrgTree(users ports.UserRepository, log zerolog.Logger) *OrgTree {
	return &OrgTree{users: users, log: log}
}

// IsDescendant reports whether walking parent pointers upward from
// candidateID ever reaches ofID. Any id revisited during the walk is treated
// as a cycle and terminates the walk (fail-safe, never errors).
func (t *OrgTree) IsDescendant(ctx context.Context, candidateID, ofID string) bool {
	return rolegraph.ReachesUp(candidateID, ofID, func(id string) (string, bool) {
		u, err := t.users.FindByID(ctx, id)
		if err != nil || u.ParentID == "" {
			return "", false
		}
		return u.ParentID, true
	})
}

// SetParent rewrites a user's parent back-reference. It fails with
// domain.ErrCycle when newParentID is the user itself or one of the user's
// own descendants.
func (t *OrgTree) SetParent(ctx context.Context, userID, newParentID string) error {
	if newParentID == userID {
		return domain.ErrCycle
	}
	if newParentID != "" && t.IsDescendant(ctx, newParentID, userID) {
		return domain.ErrCycle
	}
	if err := t.users.UpdateParent(ctx, userID, newParentID); err != nil {
		return fmt.Errorf("set parent: %w", err)
	}
	return nil
}

// DescendantsOf returns every user below userID, breadth-first, bounded by
// maxTraversalDepth. Hitting the bound truncates the walk: the caller still
// gets the nodes within the bound, and the anomaly is logged and counted
// since on healthy data it indicates circular parent links.
func (t *OrgTree) DescendantsOf(ctx context.Context, userID string) ([]*domain.User, error) {
	byID := make(map[string]*domain.User)
	var walkErr error

	ids, truncated := rolegraph.BFS(userID, func(id string) []string {
		children, err := t.users.FindByParentID(ctx, id)
		if err != nil {
			walkErr = err
			return nil
		}
		out := make([]string, 0, len(children))
		for _, c := range children {
			byID[c.ID] = c
			out = append(out, c.ID)
		}
		return out
	}, maxTraversalDepth)

	if walkErr != nil {
		return nil, fmt.Errorf("descendants of %s: %w", userID, walkErr)
	}
	if truncated {
		metrics.TraversalDepthExceededTotal.Inc()
		t.log.Warn().Str("user_id", userID).Int("max_depth", maxTraversalDepth).
			Msg("descendant walk hit depth bound, possible circular parent links")
	}

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, byID[id])
	}
	return users, nil
}

// BuildValidatedTree builds the {user, children} tree rooted at rootID. A
// child is included only when its stored role structurally requires the
// parent's actual role; violating edges are pruned from the result, never
// deleted from storage.
func (t *OrgTree) BuildValidatedTree(ctx context.Context, rootID string) (*ports.TreeNode, error) {
	root, err := t.users.FindByID(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	return t.buildSubtree(ctx, root, maxTraversalDepth), nil
}

func (t *OrgTree) buildSubtree(ctx context.Context, user *domain.User, depth int) *ports.TreeNode {
	node := &ports.TreeNode{User: user}
	if depth <= 0 {
		metrics.TraversalDepthExceededTotal.Inc()
		t.log.Warn().Str("user_id", user.ID).Msg("validated tree hit depth bound")
		return node
	}

	children, err := t.users.FindByParentID(ctx, user.ID)
	if err != nil {
		// Malformed or unreadable edges are pruned: the tree must remain
		// displayable even when underlying data is inconsistent.
		t.log.Warn().Err(err).Str("user_id", user.ID).Msg("skipping unreadable children")
		return node
	}

	for _, child := range children {
		if !domain.IsOrgRole(child.Role) {
			continue
		}
		required, ok := domain.RequiredParentRole(child.Role)
		if !ok || required != user.Role {
			continue
		}
		node.Children = append(node.Children, t.buildSubtree(ctx, child, depth-1))
	}
	return node
}

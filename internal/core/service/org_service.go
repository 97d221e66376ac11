package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

// OrgTreeService implements ports.OrgService on top of the tree, cascade and
// catalog components.
type OrgTreeService struct {
	tree    *OrgTree
	cascade *CascadePropagator
	users   ports.UserRepository
	catalog ports.ProgramCatalog
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewOrgTreeService(
	tree *OrgTree,
	cascade *CascadePropagator,
	users ports.UserRepository,
	catalog ports.ProgramCatalog,
	audit ports.AuditSink,
	log zerolog.Logger,
) *OrgTreeService {
	return &OrgTreeService{
		tree:    tree,
		cascade: cascade,
		users:   users,
		catalog: catalog,
		audit:   audit,
		log:     log,
	}
}

// DescendantTree returns the validated tree rooted at rootID.
func (s *OrgTreeService) DescendantTree(ctx context.Context, rootID string) (*ports.TreeNode, error) {
	return s.tree.BuildValidatedTree(ctx, rootID)
}

// UpdateAttributes persists a program/sites edit on a single user and pushes
// it down the subtree. Only roles whose attributes are their own accept
// edits: authoritative nodes take program and sites as given; single-site
// nodes may change their one site within the parent leader's program.
// Returns the number of descendant nodes the cascade updated.
func (s *OrgTreeService) UpdateAttributes(ctx context.Context, in ports.UpdateAttributesInput) (int, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("update attributes: %w", err)
	}
	if !domain.IsOrgRole(user.Role) {
		return 0, domain.ErrAttributesImmutable
	}

	program := in.Program
	sites := in.Sites

	switch domain.AttrMode(user.Role) {
	case domain.AttributeAuthoritative:
		if program == "" {
			return 0, domain.ErrProgramRequired
		}
	case domain.AttributeSingleSite:
		// The supervisor's program is derived from its parent; only the site
		// choice is editable.
		if len(sites) != 1 {
			return 0, domain.ErrInvalidSiteSelection
		}
		program = user.Program
		valid, err := s.catalog.SitesFor(ctx, program)
		if err != nil {
			return 0, fmt.Errorf("update attributes: %w", err)
		}
		if !containsSite(valid, sites[0]) {
			return 0, domain.ErrInvalidSiteSelection
		}
	default:
		return 0, domain.ErrAttributesImmutable
	}

	if err := s.users.UpdateAttributes(ctx, user.ID, program, sites); err != nil {
		return 0, fmt.Errorf("update attributes: %w", err)
	}

	updated, err := s.cascade.Propagate(ctx, user.ID, program, sites)
	if err != nil {
		return updated, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:  user.ID,
		Action:   "attributes_updated",
		TargetID: user.ID,
		Message:  fmt.Sprintf("attributes of %s changed, %d descendants updated", user.Username, updated),
		Context:  map[string]string{"program": program},
		Timestamp: time.Now().UTC(),
	})
	return updated, nil
}

func containsSite(sites []string, site string) bool {
	for _, s := range sites {
		if s == site {
			return true
		}
	}
	return false
}

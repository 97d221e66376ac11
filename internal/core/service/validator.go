package service

import (
	"context"
	"fmt"

	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

// PromotionValidator decides whether a proposed role transition is
// structurally and authorization-wise legal. It never mutates state.
type PromotionValidator struct {
	users    ports.UserRepository
	requests ports.PromotionRequestRepository
	catalog  ports.ProgramCatalog
}

func NewPromotionValidator(
	users ports.UserRepository,
	requests ports.PromotionRequestRepository,
	catalog ports.ProgramCatalog,
) *PromotionValidator {
	return &PromotionValidator{users: users, requests: requests, catalog: catalog}
}

// Validate runs the checks in order, short-circuiting on the first failure:
// role identity, promotion order, authorization matrix, structural
// preconditions, and (deferred path only) the duplicate-pending guard.
func (v *PromotionValidator) Validate(
	ctx context.Context,
	actor, target *domain.User,
	requested domain.Role,
	attrs ports.PromotionAttributes,
) (*ports.ValidationResult, error) {
	// 1. Target must not already hold the requested role.
	if target.Role == requested {
		return nil, domain.ErrAlreadyHasRole
	}

	// 2. The chain is linear and total: the only legal target is the next
	// role after the target's current role.
	if !domain.IsOrgRole(target.Role) {
		return nil, domain.ErrIllegalTransition
	}
	next, ok := domain.NextRole(target.Role)
	if !ok || next != requested {
		return nil, domain.ErrIllegalTransition
	}

	// 3. Authorization matrix.
	requiresApproval, err := authorize(actor.Role, requested)
	if err != nil {
		return nil, err
	}

	// 4. Structural preconditions, independent of who is asking.
	if err := v.checkStructural(ctx, requested, attrs); err != nil {
		return nil, err
	}

	// 5. Duplicate guard, deferred path only. Direct promotions commit
	// immediately and never race a pending request of their own making. The
	// authoritative guard is the store's atomic check-and-insert; this check
	// exists to fail fast with a precise error.
	if requiresApproval {
		exists, err := v.requests.ExistsPending(ctx, target.ID, requested)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateRequest
		}
	}

	return &ports.ValidationResult{RequiresApproval: requiresApproval}, nil
}

// authorize applies the fixed authorization matrix. Administrators always act
// directly; program-leaders and site-supervisors may request the two lower
// transitions, which then require approval.
func authorize(actorRole, requested domain.Role) (requiresApproval bool, err error) {
	switch requested {
	case domain.RoleSiteSupervisor, domain.RoleProgramLeader:
		switch actorRole {
		case domain.RoleAdministrator:
			return false, nil
		case domain.RoleProgramLeader, domain.RoleSiteSupervisor:
			return true, nil
		default:
			return false, domain.ErrUnauthorized
		}
	case domain.RoleDataViewer:
		if actorRole == domain.RoleAdministrator {
			return false, nil
		}
		return false, domain.ErrUnauthorized
	default:
		return false, domain.ErrIllegalTransition
	}
}

func (v *PromotionValidator) checkStructural(ctx context.Context, requested domain.Role, attrs ports.PromotionAttributes) error {
	switch requested {
	case domain.RoleSiteSupervisor:
		parent, err := v.lookupParent(ctx, attrs.ParentID, domain.RoleProgramLeader)
		if err != nil {
			return err
		}
		if len(attrs.Sites) != 1 {
			return domain.ErrInvalidSiteSelection
		}
		valid, err := v.catalog.SitesFor(ctx, parent.Program)
		if err != nil {
			return fmt.Errorf("site catalog: %w", err)
		}
		for _, s := range valid {
			if s == attrs.Sites[0] {
				return nil
			}
		}
		return domain.ErrInvalidSiteSelection

	case domain.RoleProgramLeader:
		// Parent input is ignored for roots; only the program matters.
		if attrs.Program == "" {
			return domain.ErrProgramRequired
		}
		return nil

	case domain.RoleFrontlineStaff:
		// Program/sites inputs are ignored; they are overwritten from the
		// parent at commit time.
		_, err := v.lookupParent(ctx, attrs.ParentID, domain.RoleSiteSupervisor)
		return err

	case domain.RoleDataViewer:
		// No structural inputs; parent is forced to none of the caller's input.
		return nil

	default:
		return domain.ErrIllegalTransition
	}
}

func (v *PromotionValidator) lookupParent(ctx context.Context, parentID string, required domain.Role) (*domain.User, error) {
	if parentID == "" {
		return nil, domain.ErrInvalidParent
	}
	parent, err := v.users.FindByID(ctx, parentID)
	if err != nil {
		return nil, domain.ErrInvalidParent
	}
	if parent.Role != required {
		return nil, domain.ErrInvalidParent
	}
	return parent, nil
}

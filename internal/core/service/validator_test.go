package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

func healthCatalog() *stubCatalog {
	return &stubCatalog{sites: map[string][]string{
		"Health":    {"North Clinic", "South Clinic"},
		"Education": {"East Campus", "West Campus"},
	}}
}

func newValidator(users *stubUserRepo, requests *stubRequestRepo) *PromotionValidator {
	return NewPromotionValidator(users, requests, healthCatalog())
}

func admin() *domain.User {
	return &domain.User{ID: "admin", Username: "admin", Role: domain.RoleAdministrator}
}

func TestValidate_AlreadyHasRole(t *testing.T) {
	repo := smallOrg()
	v := newValidator(repo, newStubRequestRepo())
	sup, _ := repo.FindByID(context.Background(), "sup")

	_, err := v.Validate(context.Background(), admin(), sup, domain.RoleSiteSupervisor, ports.PromotionAttributes{})
	if !errors.Is(err, domain.ErrAlreadyHasRole) {
		t.Errorf("got %v, want ErrAlreadyHasRole", err)
	}
}

func TestValidate_IllegalTransition_SkipsALevel(t *testing.T) {
	// Requesting program-leader directly for a frontline-staff member: the
	// chain is linear, so only site-supervisor is legal for them.
	repo := smallOrg()
	v := newValidator(repo, newStubRequestRepo())
	f1, _ := repo.FindByID(context.Background(), "f1")

	_, err := v.Validate(context.Background(), admin(), f1, domain.RoleProgramLeader, ports.PromotionAttributes{})
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("got %v, want ErrIllegalTransition", err)
	}
}

func TestValidate_NextRoleInChainIsLegal(t *testing.T) {
	repo := smallOrg()
	v := newValidator(repo, newStubRequestRepo())
	f1, _ := repo.FindByID(context.Background(), "f1")

	attrs := ports.PromotionAttributes{ParentID: "leader", Sites: []string{"North Clinic"}}
	result, err := v.Validate(context.Background(), admin(), f1, domain.RoleSiteSupervisor, attrs)
	if err != nil {
		t.Fatalf("got %v, want valid", err)
	}
	if result.RequiresApproval {
		t.Error("administrator promotions must not require approval")
	}
}

func TestValidate_AuthorizationMatrix(t *testing.T) {
	cases := []struct {
		name             string
		actorRole        domain.Role
		targetID         string
		requested        domain.Role
		wantErr          error
		requiresApproval bool
	}{
		{"leader requests supervisor promotion", domain.RoleProgramLeader, "f1", domain.RoleSiteSupervisor, nil, true},
		{"supervisor requests supervisor promotion", domain.RoleSiteSupervisor, "f1", domain.RoleSiteSupervisor, nil, true},
		{"admin performs supervisor promotion", domain.RoleAdministrator, "f1", domain.RoleSiteSupervisor, nil, false},
		{"frontline cannot promote", domain.RoleFrontlineStaff, "f1", domain.RoleSiteSupervisor, domain.ErrUnauthorized, false},
		{"viewer cannot promote", domain.RoleDataViewer, "f1", domain.RoleSiteSupervisor, domain.ErrUnauthorized, false},
		{"supervisor requests leader promotion", domain.RoleSiteSupervisor, "sup", domain.RoleProgramLeader, nil, true},
		{"only admin promotes to data-viewer", domain.RoleProgramLeader, "leader", domain.RoleDataViewer, domain.ErrUnauthorized, false},
		{"admin promotes to data-viewer directly", domain.RoleAdministrator, "leader", domain.RoleDataViewer, nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := smallOrg()
			v := newValidator(repo, newStubRequestRepo())
			target, err := repo.FindByID(context.Background(), c.targetID)
			if err != nil {
				t.Fatal(err)
			}
			actor := &domain.User{ID: "actor", Username: "actor", Role: c.actorRole}

			attrs := ports.PromotionAttributes{ParentID: "leader", Program: "Health", Sites: []string{"North Clinic"}}
			result, err := v.Validate(context.Background(), actor, target, c.requested, attrs)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("got %v, want %v", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.RequiresApproval != c.requiresApproval {
				t.Errorf("RequiresApproval = %v, want %v", result.RequiresApproval, c.requiresApproval)
			}
		})
	}
}

func TestValidate_SiteSelection(t *testing.T) {
	repo := smallOrg()
	v := newValidator(repo, newStubRequestRepo())
	ctx := context.Background()
	f1, _ := repo.FindByID(ctx, "f1")

	// Two sites selected: exactly one is required.
	attrs := ports.PromotionAttributes{ParentID: "leader", Sites: []string{"North Clinic", "South Clinic"}}
	if _, err := v.Validate(ctx, admin(), f1, domain.RoleSiteSupervisor, attrs); !errors.Is(err, domain.ErrInvalidSiteSelection) {
		t.Errorf("two sites: got %v, want ErrInvalidSiteSelection", err)
	}

	// A site outside the parent leader's program.
	attrs.Sites = []string{"East Campus"}
	if _, err := v.Validate(ctx, admin(), f1, domain.RoleSiteSupervisor, attrs); !errors.Is(err, domain.ErrInvalidSiteSelection) {
		t.Errorf("foreign site: got %v, want ErrInvalidSiteSelection", err)
	}

	// A parent who is not a program-leader.
	attrs = ports.PromotionAttributes{ParentID: "sup", Sites: []string{"North Clinic"}}
	if _, err := v.Validate(ctx, admin(), f1, domain.RoleSiteSupervisor, attrs); !errors.Is(err, domain.ErrInvalidParent) {
		t.Errorf("non-leader parent: got %v, want ErrInvalidParent", err)
	}
}

func TestValidate_ProgramRequired(t *testing.T) {
	repo := smallOrg()
	v := newValidator(repo, newStubRequestRepo())
	sup, _ := repo.FindByID(context.Background(), "sup")

	_, err := v.Validate(context.Background(), admin(), sup, domain.RoleProgramLeader, ports.PromotionAttributes{})
	if !errors.Is(err, domain.ErrProgramRequired) {
		t.Errorf("got %v, want ErrProgramRequired", err)
	}
}

func TestValidate_DuplicatePendingRequest(t *testing.T) {
	repo := smallOrg()
	requests := newStubRequestRepo()
	v := newValidator(repo, requests)
	ctx := context.Background()
	f1, _ := repo.FindByID(ctx, "f1")

	if _, err := requests.CreatePending(ctx, &domain.PromotionRequest{
		ID:            "req-1",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Status:        domain.StatusPending,
	}); err != nil {
		t.Fatal(err)
	}

	// Deferred path (non-admin actor) hits the duplicate guard.
	leader, _ := repo.FindByID(ctx, "leader")
	attrs := ports.PromotionAttributes{ParentID: "leader", Sites: []string{"North Clinic"}}
	if _, err := v.Validate(ctx, leader, f1, domain.RoleSiteSupervisor, attrs); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Errorf("got %v, want ErrDuplicateRequest", err)
	}

	// The direct path skips the guard: it commits immediately.
	if _, err := v.Validate(ctx, admin(), f1, domain.RoleSiteSupervisor, attrs); err != nil {
		t.Errorf("direct path must skip duplicate guard, got %v", err)
	}
}

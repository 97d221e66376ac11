package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

type workflowFixture struct {
	users    *stubUserRepo
	requests *stubRequestRepo
	audit    *stubAuditSink
	workflow *PromotionWorkflow
}

func newWorkflowFixture(extra ...*domain.User) *workflowFixture {
	users := smallOrg()
	for _, u := range extra {
		clone := *u
		users.byID[u.ID] = &clone
	}
	requests := newStubRequestRepo()
	audit := &stubAuditSink{}
	tree := NewOrgTree(users, discardLogger)
	cascade := NewCascadePropagator(tree, users, discardLogger)
	validator := NewPromotionValidator(users, requests, healthCatalog())
	return &workflowFixture{
		users:    users,
		requests: requests,
		audit:    audit,
		workflow: NewPromotionWorkflow(users, requests, validator, cascade, audit, discardLogger),
	}
}

func TestWorkflow_AdminCommitsDirectly(t *testing.T) {
	fx := newWorkflowFixture(admin())
	ctx := context.Background()

	// Administrator promotes the supervisor to program-leader with a new program.
	result, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "admin",
		TargetUserID:  "sup",
		RequestedRole: domain.RoleProgramLeader,
		Attributes:    ports.PromotionAttributes{Program: "Health", Sites: []string{"North Clinic", "South Clinic"}},
	})
	if err != nil {
		t.Fatalf("RequestPromotion: %v", err)
	}
	if !result.Committed || result.Commit == nil {
		t.Fatal("expected an immediate commit")
	}

	target, _ := fx.users.FindByID(ctx, "sup")
	if target.Role != domain.RoleProgramLeader {
		t.Errorf("role = %s, want program-leader", target.Role)
	}
	// The promoter becomes the new parent, administrators included.
	if target.ParentID != "admin" {
		t.Errorf("parent = %s, want admin", target.ParentID)
	}

	// No request row exists for the direct path.
	pending, _ := fx.requests.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("direct commit created %d pending requests", len(pending))
	}
}

func TestWorkflow_DeferredRequestLeavesRoleUnchanged(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	// A site-supervisor requests the same promotion: deferred.
	result, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "sup",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Reason:        "covering the north clinic",
		Attributes:    ports.PromotionAttributes{ParentID: "leader", Sites: []string{"South Clinic"}},
	})
	if err != nil {
		t.Fatalf("RequestPromotion: %v", err)
	}
	if result.Committed {
		t.Fatal("non-admin promotion must not commit immediately")
	}
	if result.RequestID == "" {
		t.Fatal("expected a request id")
	}

	target, _ := fx.users.FindByID(ctx, "f1")
	if target.Role != domain.RoleFrontlineStaff {
		t.Errorf("role mutated before approval: %s", target.Role)
	}

	req, err := fx.requests.FindByID(ctx, result.RequestID)
	if err != nil {
		t.Fatalf("request not persisted: %v", err)
	}
	if req.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if req.CurrentRole != domain.RoleFrontlineStaff || req.RequestedRole != domain.RoleSiteSupervisor {
		t.Errorf("roles not snapshotted: %s → %s", req.CurrentRole, req.RequestedRole)
	}
}

func TestWorkflow_DuplicatePendingRequest(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	in := ports.RequestPromotionInput{
		ActorID:       "sup",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Attributes:    ports.PromotionAttributes{ParentID: "leader", Sites: []string{"South Clinic"}},
	}
	if _, err := fx.workflow.RequestPromotion(ctx, in); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := fx.workflow.RequestPromotion(ctx, in); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("second request: got %v, want ErrDuplicateRequest", err)
	}

	pending, _ := fx.requests.ListPending(ctx)
	if len(pending) != 1 {
		t.Errorf("expected exactly one pending request, got %d", len(pending))
	}
}

func TestWorkflow_ApproveCommitsWithRequesterAsParent(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	result, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "leader",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Attributes:    ports.PromotionAttributes{ParentID: "leader", Sites: []string{"South Clinic"}},
	})
	if err != nil {
		t.Fatalf("RequestPromotion: %v", err)
	}

	commit, err := fx.workflow.Approve(ctx, result.RequestID, "looks good")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if commit.NewRole != domain.RoleSiteSupervisor {
		t.Errorf("committed role = %s", commit.NewRole)
	}

	target, _ := fx.users.FindByID(ctx, "f1")
	if target.Role != domain.RoleSiteSupervisor {
		t.Errorf("role = %s, want site-supervisor", target.Role)
	}
	if target.ParentID != "leader" {
		t.Errorf("parent = %s, want the requester", target.ParentID)
	}
	// Program derives from the structural parent; the chosen site sticks.
	if target.Program != "Health" || len(target.Sites) != 1 || target.Sites[0] != "South Clinic" {
		t.Errorf("attributes = %q %v", target.Program, target.Sites)
	}

	req, _ := fx.requests.FindByID(ctx, result.RequestID)
	if req.Status != domain.StatusApproved {
		t.Errorf("status = %s, want approved", req.Status)
	}
	if req.AdminNotes != "looks good" {
		t.Errorf("admin notes = %q", req.AdminNotes)
	}
}

func TestWorkflow_TerminalRequestsAreWriteOnce(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	result, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "leader",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Attributes:    ports.PromotionAttributes{ParentID: "leader", Sites: []string{"South Clinic"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := fx.workflow.Reject(ctx, result.RequestID, "not yet"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	// Rejection mutates nothing on the target.
	target, _ := fx.users.FindByID(ctx, "f1")
	if target.Role != domain.RoleFrontlineStaff {
		t.Errorf("reject mutated role to %s", target.Role)
	}

	// Any further resolution of the terminal request fails with not-found.
	if _, err := fx.workflow.Approve(ctx, result.RequestID, ""); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("approve after reject: got %v, want ErrRequestNotFound", err)
	}
	if err := fx.workflow.Reject(ctx, result.RequestID, ""); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("double reject: got %v, want ErrRequestNotFound", err)
	}
	if target, _ = fx.users.FindByID(ctx, "f1"); target.Role != domain.RoleFrontlineStaff {
		t.Errorf("terminal re-resolution mutated role to %s", target.Role)
	}
}

func TestWorkflow_ApproveUnknownRequest(t *testing.T) {
	fx := newWorkflowFixture()
	if _, err := fx.workflow.Approve(context.Background(), "missing", ""); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Errorf("got %v, want ErrRequestNotFound", err)
	}
}

func TestWorkflow_ValidationFailureMutatesNothing(t *testing.T) {
	fx := newWorkflowFixture()
	ctx := context.Background()

	_, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "f2",
		TargetUserID:  "f1",
		RequestedRole: domain.RoleSiteSupervisor,
		Attributes:    ports.PromotionAttributes{ParentID: "leader", Sites: []string{"North Clinic"}},
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	target, _ := fx.users.FindByID(ctx, "f1")
	if target.Role != domain.RoleFrontlineStaff || target.ParentID != "sup" {
		t.Error("failed validation must not mutate the target")
	}
	pending, _ := fx.requests.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("failed validation created %d requests", len(pending))
	}
	if len(fx.audit.actions()) != 0 {
		t.Errorf("failed validation produced audit events: %v", fx.audit.actions())
	}
}

func TestWorkflow_DirectLeaderPromotionCascades(t *testing.T) {
	fx := newWorkflowFixture(admin())
	ctx := context.Background()

	// Promoting the supervisor to program-leader with a new program pushes
	// the program down to the frontline staff beneath them.
	result, err := fx.workflow.RequestPromotion(ctx, ports.RequestPromotionInput{
		ActorID:       "admin",
		TargetUserID:  "sup",
		RequestedRole: domain.RoleProgramLeader,
		Attributes:    ports.PromotionAttributes{Program: "Education", Sites: []string{"East Campus"}},
	})
	if err != nil {
		t.Fatalf("RequestPromotion: %v", err)
	}
	if result.Commit.CascadedNodes != 2 {
		t.Errorf("cascaded %d nodes, want 2", result.Commit.CascadedNodes)
	}
	for _, id := range []string{"f1", "f2"} {
		u, _ := fx.users.FindByID(ctx, id)
		if u.Program != "Education" {
			t.Errorf("%s program = %s, want Education", id, u.Program)
		}
	}
}

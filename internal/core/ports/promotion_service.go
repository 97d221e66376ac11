package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// PromotionAttributes carries the structural inputs submitted alongside a
// promotion: the intended structural parent and the program/site selection.
// Which fields are consulted depends on the requested role; the rest are
// ignored.
type PromotionAttributes struct {
	ParentID string
	Program  string
	Sites    []string
}

// ValidationResult is the verdict of a successful validation.
type ValidationResult struct {
	// RequiresApproval is true when the transition may only be requested and
	// must later be approved; false means the actor may commit it directly.
	RequiresApproval bool
}

// RequestPromotionInput carries all data for a promotion attempt.
type RequestPromotionInput struct {
	ActorID       string
	TargetUserID  string
	RequestedRole domain.Role
	Reason        string
	Attributes    PromotionAttributes
}

// CommitResult describes an applied promotion.
type CommitResult struct {
	UserID        string
	NewRole       domain.Role
	ParentID      string
	Program       string
	Sites         []string
	CascadedNodes int
}

// RequestPromotionResult is returned by RequestPromotion. Exactly one of
// Commit (direct path) or RequestID (deferred path) is set.
type RequestPromotionResult struct {
	Committed bool
	RequestID string
	Commit    *CommitResult
}

// PromotionService is the promotion workflow exposed to the transport layer.
type PromotionService interface {
	// Validate returns a read-only verdict without mutating anything.
	Validate(ctx context.Context, actorID, targetUserID string, role domain.Role, attrs PromotionAttributes) (*ValidationResult, error)

	RequestPromotion(ctx context.Context, in RequestPromotionInput) (*RequestPromotionResult, error)

	// Approve resolves a pending request and commits the promotion on behalf
	// of the original requester.
	Approve(ctx context.Context, requestID, adminNotes string) (*CommitResult, error)

	// Reject resolves a pending request with no further mutation.
	Reject(ctx context.Context, requestID, adminNotes string) error

	ListPending(ctx context.Context) ([]*domain.PromotionRequest, error)
}

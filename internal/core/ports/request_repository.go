package ports

import (
	"context"

	"github.com/brightpaths/org-system/internal/core/domain"
)

// PromotionRequestRepository persists promotion requests.
type PromotionRequestRepository interface {
	// CreatePending inserts a new pending request. The insert is an atomic
	// check-and-insert: when a pending request for the same
	// (target_user_id, requested_role) already exists, it fails with
	// domain.ErrDuplicateRequest even under concurrent callers.
	CreatePending(ctx context.Context, req *domain.PromotionRequest) (*domain.PromotionRequest, error)

	FindByID(ctx context.Context, id string) (*domain.PromotionRequest, error)

	// ExistsPending reports whether a pending request exists for the pair.
	ExistsPending(ctx context.Context, targetUserID string, role domain.Role) (bool, error)

	// CompareAndSetStatus atomically transitions the request from status
	// `from` to `to`, recording adminNotes, and returns the request as it was
	// before the transition. When the request does not exist or is no longer
	// in `from`, it fails with domain.ErrRequestNotFound and nothing changes.
	CompareAndSetStatus(ctx context.Context, id string, from, to domain.RequestStatus, adminNotes string) (*domain.PromotionRequest, error)

	ListPending(ctx context.Context) ([]*domain.PromotionRequest, error)
}

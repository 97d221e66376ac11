package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brightpaths/org-system/internal/api/metrics"
	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

// PromotionWorkflow implements ports.PromotionService: it creates, approves
// and rejects promotion requests, and commits role/parent changes.
type PromotionWorkflow struct {
	users     ports.UserRepository
	requests  ports.PromotionRequestRepository
	validator *PromotionValidator
	cascade   *CascadePropagator
	audit     ports.AuditSink
	log       zerolog.Logger
}

func NewPromotionWorkflow(
	users ports.UserRepository,
	requests ports.PromotionRequestRepository,
	validator *PromotionValidator,
	cascade *CascadePropagator,
	audit ports.AuditSink,
	log zerolog.Logger,
) *PromotionWorkflow {
	return &PromotionWorkflow{
		users:     users,
		requests:  requests,
		validator: validator,
		cascade:   cascade,
		audit:     audit,
		log:       log,
	}
}

// Validate returns a read-only verdict for the proposed transition.
func (w *PromotionWorkflow) Validate(
	ctx context.Context,
	actorID, targetUserID string,
	role domain.Role,
	attrs ports.PromotionAttributes,
) (*ports.ValidationResult, error) {
	actor, target, err := w.loadPair(ctx, actorID, targetUserID)
	if err != nil {
		return nil, err
	}
	result, err := w.validator.Validate(ctx, actor, target, role, attrs)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}
	return result, nil
}

// RequestPromotion validates the transition and either commits it immediately
// (direct path) or creates a pending request (deferred path). Validation
// failures mutate nothing.
func (w *PromotionWorkflow) RequestPromotion(ctx context.Context, in ports.RequestPromotionInput) (*ports.RequestPromotionResult, error) {
	actor, target, err := w.loadPair(ctx, in.ActorID, in.TargetUserID)
	if err != nil {
		return nil, err
	}

	result, err := w.validator.Validate(ctx, actor, target, in.RequestedRole, in.Attributes)
	if err != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}

	if !result.RequiresApproval {
		commit, err := w.commit(ctx, actor.ID, target, in.RequestedRole, in.Attributes)
		if err != nil {
			return nil, err
		}
		return &ports.RequestPromotionResult{Committed: true, Commit: commit}, nil
	}

	now := time.Now().UTC()
	req := &domain.PromotionRequest{
		ID:            uuid.NewString(),
		RequesterID:   actor.ID,
		TargetUserID:  target.ID,
		CurrentRole:   target.Role,
		RequestedRole: in.RequestedRole,
		Reason:        in.Reason,
		Status:        domain.StatusPending,
		ParentID:      in.Attributes.ParentID,
		Program:       in.Attributes.Program,
		Sites:         in.Attributes.Sites,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := w.requests.CreatePending(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.PromotionRequestsTotal.WithLabelValues("created").Inc()
	w.audit.Record(domain.AuditEvent{
		ActorID:  actor.ID,
		Action:   "promotion_requested",
		TargetID: target.ID,
		Message:  fmt.Sprintf("%s requested promotion of %s to %s", actor.Username, target.Username, in.RequestedRole),
		Context:  map[string]string{"request_id": created.ID, "requested_role": string(in.RequestedRole)},
		Timestamp: now,
	})
	w.log.Info().Str("request_id", created.ID).Str("target_id", target.ID).
		Str("requested_role", string(in.RequestedRole)).Msg("promotion request created")

	return &ports.RequestPromotionResult{Committed: false, RequestID: created.ID}, nil
}

// Approve atomically claims the pending request (compare-and-set on status),
// then commits the promotion using the original requester as the new parent.
// A request that does not exist or is no longer pending fails with
// domain.ErrRequestNotFound; a concurrent second approval loses the CAS and
// cannot re-apply the promotion.
func (w *PromotionWorkflow) Approve(ctx context.Context, requestID, adminNotes string) (*ports.CommitResult, error) {
	req, err := w.requests.CompareAndSetStatus(ctx, requestID, domain.StatusPending, domain.StatusApproved, adminNotes)
	if err != nil {
		return nil, err
	}

	target, err := w.users.FindByID(ctx, req.TargetUserID)
	if err != nil {
		w.rollbackClaim(ctx, requestID)
		return nil, fmt.Errorf("approve %s: %w", requestID, err)
	}

	attrs := ports.PromotionAttributes{ParentID: req.ParentID, Program: req.Program, Sites: req.Sites}
	commit, err := w.commit(ctx, req.RequesterID, target, req.RequestedRole, attrs)
	if err != nil {
		w.rollbackClaim(ctx, requestID)
		return nil, fmt.Errorf("approve %s: %w", requestID, err)
	}

	metrics.PromotionRequestsTotal.WithLabelValues("approved").Inc()
	w.audit.Record(domain.AuditEvent{
		ActorID:  req.RequesterID,
		Action:   "promotion_approved",
		TargetID: req.TargetUserID,
		Message:  fmt.Sprintf("request %s approved: %s is now %s", requestID, target.Username, req.RequestedRole),
		Context:  map[string]string{"request_id": requestID, "admin_notes": adminNotes},
		Timestamp: time.Now().UTC(),
	})
	return commit, nil
}

// Reject atomically resolves the pending request with no further mutation.
func (w *PromotionWorkflow) Reject(ctx context.Context, requestID, adminNotes string) error {
	req, err := w.requests.CompareAndSetStatus(ctx, requestID, domain.StatusPending, domain.StatusRejected, adminNotes)
	if err != nil {
		return err
	}

	metrics.PromotionRequestsTotal.WithLabelValues("rejected").Inc()
	w.audit.Record(domain.AuditEvent{
		ActorID:  req.RequesterID,
		Action:   "promotion_rejected",
		TargetID: req.TargetUserID,
		Message:  fmt.Sprintf("request %s rejected", requestID),
		Context:  map[string]string{"request_id": requestID, "admin_notes": adminNotes},
		Timestamp: time.Now().UTC(),
	})
	w.log.Info().Str("request_id", requestID).Msg("promotion request rejected")
	return nil
}

func (w *PromotionWorkflow) ListPending(ctx context.Context) ([]*domain.PromotionRequest, error) {
	return w.requests.ListPending(ctx)
}

// commit applies a validated promotion: the target takes the requested role,
// the promoter becomes the new parent (an explicit business rule, preserved
// for administrator-performed promotions too), inherited and forced
// attributes are resolved, and the cascade runs when attributes changed.
func (w *PromotionWorkflow) commit(
	ctx context.Context,
	promoterID string,
	target *domain.User,
	requested domain.Role,
	attrs ports.PromotionAttributes,
) (*ports.CommitResult, error) {
	program, sites, err := w.resolveAttributes(ctx, requested, attrs)
	if err != nil {
		return nil, err
	}

	if err := w.users.UpdateRoleAndParent(ctx, target.ID, requested, promoterID, program, sites); err != nil {
		return nil, fmt.Errorf("commit promotion: %w", err)
	}

	cascaded := 0
	if !target.SameAttributes(program, sites) {
		cascaded, err = w.cascade.Propagate(ctx, target.ID, program, sites)
		if err != nil {
			// The role change is already committed; surface the cascade
			// failure so the caller can retry the attribute edit.
			return nil, fmt.Errorf("commit promotion: %w", err)
		}
	}

	metrics.PromotionsCommittedTotal.WithLabelValues(string(requested)).Inc()
	w.audit.Record(domain.AuditEvent{
		ActorID:  promoterID,
		Action:   "promotion_committed",
		TargetID: target.ID,
		Message:  fmt.Sprintf("%s promoted to %s", target.Username, requested),
		Context: map[string]string{
			"previous_role": string(target.Role),
			"new_role":      string(requested),
			"new_parent_id": promoterID,
		},
		Timestamp: time.Now().UTC(),
	})
	w.log.Info().Str("target_id", target.ID).Str("new_role", string(requested)).
		Str("new_parent_id", promoterID).Int("cascaded", cascaded).Msg("promotion committed")

	return &ports.CommitResult{
		UserID:        target.ID,
		NewRole:       requested,
		ParentID:      promoterID,
		Program:       program,
		Sites:         sites,
		CascadedNodes: cascaded,
	}, nil
}

// resolveAttributes computes the program/sites the target carries after the
// commit, according to the attribute mode of the new role.
func (w *PromotionWorkflow) resolveAttributes(ctx context.Context, requested domain.Role, attrs ports.PromotionAttributes) (string, []string, error) {
	switch domain.AttrMode(requested) {
	case domain.AttributeAuthoritative:
		return attrs.Program, attrs.Sites, nil
	case domain.AttributeSingleSite:
		parent, err := w.users.FindByID(ctx, attrs.ParentID)
		if err != nil {
			return "", nil, fmt.Errorf("resolve attributes: %w", err)
		}
		return parent.Program, attrs.Sites, nil
	case domain.AttributeInherited:
		parent, err := w.users.FindByID(ctx, attrs.ParentID)
		if err != nil {
			return "", nil, fmt.Errorf("resolve attributes: %w", err)
		}
		return parent.Program, parent.Sites, nil
	default: // AttributeNone
		return "", nil, nil
	}
}

func (w *PromotionWorkflow) loadPair(ctx context.Context, actorID, targetID string) (*domain.User, *domain.User, error) {
	actor, err := w.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("actor %s: %w", actorID, err)
	}
	target, err := w.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("target %s: %w", targetID, err)
	}
	return actor, target, nil
}

// rollbackClaim returns an approved-but-uncommitted request to pending so it
// can be retried. Best effort: a failure here is logged, not surfaced.
func (w *PromotionWorkflow) rollbackClaim(ctx context.Context, requestID string) {
	if _, err := w.requests.CompareAndSetStatus(ctx, requestID, domain.StatusApproved, domain.StatusPending, ""); err != nil {
		w.log.Error().Err(err).Str("request_id", requestID).Msg("failed to roll back approval claim")
	}
}

// errorReason maps validation errors to a short metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyHasRole):
		return "already_has_role"
	case errors.Is(err, domain.ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidSiteSelection):
		return "invalid_site_selection"
	case errors.Is(err, domain.ErrInvalidParent):
		return "invalid_parent"
	case errors.Is(err, domain.ErrProgramRequired):
		return "program_required"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return "duplicate_request"
	default:
		return "other"
	}
}

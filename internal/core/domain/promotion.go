package domain

import "time"

// RequestStatus is the lifecycle state of a promotion request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// validStatusTransitions defines the allowed state machine transitions.
// A request is created pending; approved and rejected are terminal.
var validStatusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PromotionRequest is a deferred promotion awaiting two-party approval.
// Users are referenced by id only; the request never embeds them.
//
// ParentID, Program and Sites snapshot the structural attributes submitted at
// request time so that a later approval commits exactly what was validated.
type PromotionRequest struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	RequesterID   string        `json:"requester_id" bson:"requester_id"`
	TargetUserID  string        `json:"target_user_id" bson:"target_user_id"`
	CurrentRole   Role          `json:"current_role" bson:"current_role"`
	RequestedRole Role          `json:"requested_role" bson:"requested_role"`
	Reason        string        `json:"reason,omitempty" bson:"reason,omitempty"`
	Status        RequestStatus `json:"status" bson:"status"`
	AdminNotes    string        `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	ParentID      string        `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Program       string        `json:"program,omitempty" bson:"program,omitempty"`
	Sites         []string      `json:"sites,omitempty" bson:"sites,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

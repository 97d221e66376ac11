package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type promotionAttributesRequest struct {
	ParentID string   `json:"parent_id"`
	Program  string   `json:"program"`
	Sites    []string `json:"sites"`
}

type validatePromotionRequest struct {
	TargetUserID  string                     `json:"target_user_id" validate:"required"`
	RequestedRole string                     `json:"requested_role" validate:"required,oneof=frontline-staff site-supervisor program-leader data-viewer"`
	Attributes    promotionAttributesRequest `json:"attributes"`
}

type validatePromotionResponse struct {
	Valid            bool `json:"valid"`
	RequiresApproval bool `json:"requires_approval"`
}

type createPromotionRequest struct {
	TargetUserID  string                     `json:"target_user_id" validate:"required"`
	RequestedRole string                     `json:"requested_role" validate:"required,oneof=frontline-staff site-supervisor program-leader data-viewer"`
	Reason        string                     `json:"reason" validate:"max=500"`
	Attributes    promotionAttributesRequest `json:"attributes"`
}

type commitResponse struct {
	UserID        string   `json:"user_id"`
	NewRole       string   `json:"new_role"`
	ParentID      string   `json:"parent_id"`
	Program       string   `json:"program,omitempty"`
	Sites         []string `json:"sites,omitempty"`
	CascadedNodes int      `json:"cascaded_nodes"`
}

type createPromotionResponse struct {
	Committed bool            `json:"committed"`
	RequestID string          `json:"request_id,omitempty"`
	Commit    *commitResponse `json:"commit,omitempty"`
}

type resolveRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=500"`
}

type pendingRequestResponse struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requester_id"`
	TargetUserID  string    `json:"target_user_id"`
	CurrentRole   string    `json:"current_role"`
	RequestedRole string    `json:"requested_role"`
	Reason        string    `json:"reason,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type pendingListResponse struct {
	Requests []pendingRequestResponse `json:"requests"`
	Count    int                      `json:"count"`
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

// PromotionHandler handles HTTP requests for the promotion workflow.
type PromotionHandler struct {
	service ports.PromotionService
}

func NewPromotionHandler(service ports.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// Validate handles POST /v1/promotions/validate — a dry run that reports
// whether the transition would be allowed, without mutating anything.
//
// @Summary      Validate a promotion without applying it
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validatePromotionRequest  true  "Promotion to validate"
// @Success      200   {object}  validatePromotionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/promotions/validate [post]
func (h *PromotionHandler) Validate(c echo.Context) error {
	var req validatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.Validate(c.Request().Context(), actorID, req.TargetUserID,
		domain.Role(req.RequestedRole), toAttributes(req.Attributes))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, validatePromotionResponse{
		Valid:            true,
		RequiresApproval: result.RequiresApproval,
	})
}

// Create handles POST /v1/promotions — applies the promotion directly when
// the actor is entitled to, otherwise records a pending request.
//
// @Summary      Request or apply a promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPromotionRequest  true  "Promotion details"
// @Success      200   {object}  createPromotionResponse  "Promotion committed directly"
// @Success      202   {object}  createPromotionResponse  "Request recorded, pending approval"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/promotions [post]
func (h *PromotionHandler) Create(c echo.Context) error {
	var req createPromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.RequestPromotion(c.Request().Context(), ports.RequestPromotionInput{
		ActorID:       actorID,
		TargetUserID:  req.TargetUserID,
		RequestedRole: domain.Role(req.RequestedRole),
		Reason:        req.Reason,
		Attributes:    toAttributes(req.Attributes),
	})
	if err != nil {
		return err
	}

	resp := createPromotionResponse{
		Committed: result.Committed,
		RequestID: result.RequestID,
		Commit:    toCommitResponse(result.Commit),
	}
	if result.Committed {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusAccepted, resp)
}

// Approve handles POST /v1/promotions/:id/approve.
//
// @Summary      Approve a pending promotion request
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true   "Request id"
// @Param        body  body      resolveRequest  false  "Admin notes"
// @Success      200   {object}  commitResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/promotions/{id}/approve [post]
func (h *PromotionHandler) Approve(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	commit, err := h.service.Approve(c.Request().Context(), c.Param("id"), req.AdminNotes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommitResponse(commit))
}

// Reject handles POST /v1/promotions/:id/reject.
//
// @Summary      Reject a pending promotion request
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true   "Request id"
// @Param        body  body      resolveRequest  false  "Admin notes"
// @Success      204   "Request rejected"
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/promotions/{id}/reject [post]
func (h *PromotionHandler) Reject(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Reject(c.Request().Context(), c.Param("id"), req.AdminNotes); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPending handles GET /v1/promotions/pending.
//
// @Summary      List pending promotion requests
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/promotions/pending [get]
func (h *PromotionHandler) ListPending(c echo.Context) error {
	requests, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]pendingRequestResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, pendingRequestResponse{
			ID:            r.ID,
			RequesterID:   r.RequesterID,
			TargetUserID:  r.TargetUserID,
			CurrentRole:   string(r.CurrentRole),
			RequestedRole: string(r.RequestedRole),
			Reason:        r.Reason,
			Status:        string(r.Status),
			CreatedAt:     r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, pendingListResponse{Requests: items, Count: len(items)})
}

func toAttributes(req promotionAttributesRequest) ports.PromotionAttributes {
	return ports.PromotionAttributes{
		ParentID: req.ParentID,
		Program:  req.Program,
		Sites:    req.Sites,
	}
}

func toCommitResponse(commit *ports.CommitResult) *commitResponse {
	if commit == nil {
		return nil
	}
	return &commitResponse{
		UserID:        commit.UserID,
		NewRole:       string(commit.NewRole),
		ParentID:      commit.ParentID,
		Program:       commit.Program,
		Sites:         commit.Sites,
		CascadedNodes: commit.CascadedNodes,
	}
}

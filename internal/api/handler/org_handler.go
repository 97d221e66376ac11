package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpaths/org-system/internal/core/ports"
)

// OrgHandler handles HTTP requests for tree queries and attribute edits.
type OrgHandler struct {
	service ports.OrgService
}

func NewOrgHandler(service ports.OrgService) *OrgHandler {
	return &OrgHandler{service: service}
}

// Tree handles GET /v1/org/users/:id/tree.
//
// @Summary      Get the validated descendant tree of a user
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Root user id"
// @Success      200  {object}  treeNodeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/org/users/{id}/tree [get]
func (h *OrgHandler) Tree(c echo.Context) error {
	node, err := h.service.DescendantTree(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTreeResponse(node))
}

// UpdateAttributes handles PUT /v1/org/users/:id/attributes.
//
// @Summary      Update a user's program/site attributes and cascade them
// @Tags         org
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "User id"
// @Param        body  body      updateAttributesRequest  true  "New attributes"
// @Success      200   {object}  updateAttributesResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/org/users/{id}/attributes [put]
func (h *OrgHandler) UpdateAttributes(c echo.Context) error {
	var req updateAttributesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	userID := c.Param("id")
	cascaded, err := h.service.UpdateAttributes(c.Request().Context(), ports.UpdateAttributesInput{
		UserID:  userID,
		Program: req.Program,
		Sites:   req.Sites,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateAttributesResponse{
		UserID:        userID,
		CascadedNodes: cascaded,
	})
}

func toTreeResponse(node *ports.TreeNode) treeNodeResponse {
	resp := treeNodeResponse{
		ID:          node.User.ID,
		Username:    node.User.Username,
		DisplayName: node.User.DisplayName,
		Role:        string(node.User.Role),
		Program:     node.User.Program,
		Sites:       node.User.Sites,
		Children:    make([]treeNodeResponse, 0, len(node.Children)),
	}
	for _, child := range node.Children {
		resp.Children = append(resp.Children, toTreeResponse(child))
	}
	return resp
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpaths/org-system/internal/core/ports"
)

// CatalogHandler serves read-only program/site catalog lookups.
type CatalogHandler struct {
	catalog ports.ProgramCatalog
}

func NewCatalogHandler(catalog ports.ProgramCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Sites handles GET /v1/programs/:program/sites.
//
// @Summary      List the valid sites of a program
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        program  path      string  true  "Program name"
// @Success      200      {object}  programSitesResponse
// @Failure      401      {object}  errorResponse
// @Router       /v1/programs/{program}/sites [get]
func (h *CatalogHandler) Sites(c echo.Context) error {
	program := c.Param("program")
	sites, err := h.catalog.SitesFor(c.Request().Context(), program)
	if err != nil {
		return err
	}
	if sites == nil {
		sites = []string{}
	}
	return c.JSON(http.StatusOK, programSitesResponse{Program: program, Sites: sites})
}

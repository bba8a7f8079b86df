package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

// LookupHandler serves the recorded pipeline history.
type LookupHandler struct {
	service ports.LookupService
}

func NewLookupHandler(service ports.LookupService) *LookupHandler {
	return &LookupHandler{service: service}
}

// List handles GET /v1/lookups.
//
// @Summary      List recent pipeline runs
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum items (1-100, default 20)"
// @Success      200    {object}  listLookupsResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/lookups [get]
func (h *LookupHandler) List(c echo.Context) error {
	var req listLookupsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.ListLookups(c.Request().Context(), req.Limit)
	if err != nil {
		return err
	}

	items := make([]lookupResponse, 0, len(result.Items))
	for _, l := range result.Items {
		items = append(items, toLookupResponse(l))
	}
	return c.JSON(http.StatusOK, listLookupsResponse{Items: items, Limit: result.Limit})
}

// Get handles GET /v1/lookups/:id.
//
// @Summary      Get one pipeline run
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lookup id"
// @Success      200  {object}  lookupResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/lookups/{id} [get]
func (h *LookupHandler) Get(c echo.Context) error {
	var req getLookupRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	l, err := h.service.GetLookup(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLookupResponse(l))
}

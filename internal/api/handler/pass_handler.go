package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

// PassHandler exposes the flyover pipeline over HTTP.
type PassHandler struct {
	service ports.FlyoverService
}

func NewPassHandler(service ports.FlyoverService) *PassHandler {
	return &PassHandler{service: service}
}

// Next handles GET /v1/passes.
//
// @Summary      Upcoming ISS passes over this server's location
// @Description  Resolves the server's public IP, geolocates it and returns the next passes.
// @Tags         passes
// @Produce      json
// @Success      200  {object}  passesResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      504  {object}  errorResponse
// @Router       /v1/passes [get]
func (h *PassHandler) Next(c echo.Context) error {
	passes, err := h.service.NextPasses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPassesResponse(passes))
}

// ForIP handles GET /v1/passes/ip/:ip.
//
// @Summary      Upcoming ISS passes over an IP address
// @Tags         passes
// @Produce      json
// @Param        ip   path      string  true  "IPv4 or IPv6 address"
// @Success      200  {object}  passesResponse
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/passes/ip/{ip} [get]
func (h *PassHandler) ForIP(c echo.Context) error {
	var req ipRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	passes, err := h.service.PassesForIP(c.Request().Context(), domain.IPAddress(req.IP))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPassesResponse(passes))
}

// At handles GET /v1/passes/coordinates.
//
// @Summary      Upcoming ISS passes over a point
// @Tags         passes
// @Produce      json
// @Param        lat  query     number  true  "Latitude in degrees"
// @Param        lon  query     number  true  "Longitude in degrees"
// @Success      200  {object}  passesResponse
// @Failure      400  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/passes/coordinates [get]
func (h *PassHandler) At(c echo.Context) error {
	var req coordinatesRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// The validator has already checked both values parse as degrees.
	lat, _ := strconv.ParseFloat(req.Lat, 64)
	lon, _ := strconv.ParseFloat(req.Lon, 64)

	passes, err := h.service.PassesAt(c.Request().Context(), domain.Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPassesResponse(passes))
}

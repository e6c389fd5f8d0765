package handlers

import (
	"net/http"

	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// HotlineHandler serves the crisis hotline directory
type HotlineHandler struct {
	hotlineRepository repositories.HotlineRepository
}

// NewHotlineHandler creates a new HotlineHandler
func NewHotlineHandler(hotlineRepo repositories.HotlineRepository) *HotlineHandler {
	return &HotlineHandler{hotlineRepository: hotlineRepo}
}

// RegisterHotlineRoutes registers hotline routes
func (h *HotlineHandler) RegisterHotlineRoutes(g *echo.Group) {
	g.GET("", h.GetHotlines)
}

// GetHotlines lists hotlines, optionally filtered by country
func (h *HotlineHandler) GetHotlines(c echo.Context) error {
	hotlines, err := h.hotlineRepository.GetHotlines(c.QueryParam("country"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, hotlines)
}

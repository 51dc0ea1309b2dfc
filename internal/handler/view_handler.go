package handler

import (
	"github.com/gofiber/fiber/v2"

	"moments-backend/internal/middleware"
	"moments-backend/internal/service/nav"
)

type ViewHandler struct {
	navService nav.Service
}

func NewViewHandler(navService nav.Service) *ViewHandler {
	return &ViewHandler{navService: navService}
}

// Resolve maps a navigation token to its view model. An unresolvable event
// id yields the NOT_FOUND view with status 200; it is a view state, not a
// transport error.
func (h *ViewHandler) Resolve(c *fiber.Ctx) error {
	token := c.Query("path")
	if token == "" {
		return middleware.BadRequest("Query parameter 'path' is required")
	}
	return c.Status(fiber.StatusOK).JSON(h.navService.Resolve(c.Context(), token))
}

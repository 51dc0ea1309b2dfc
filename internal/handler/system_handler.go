package handler

import (
	"github.com/gofiber/fiber/v2"

	"moments-backend/internal/middleware"
	"moments-backend/internal/store"
)

type SystemHandler struct {
	store store.Store
}

func NewSystemHandler(st store.Store) *SystemHandler {
	return &SystemHandler{store: st}
}

func (h *SystemHandler) Stats(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.store.Stats(c.Context()))
}

// Reset wipes all user data and restores the demo dataset. The confirm flag
// is mandatory; resetting is not something a stray request should trigger.
func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.BodyParser(&body); err != nil || !body.Confirm {
		return middleware.BadRequest("Reset requires explicit confirmation")
	}

	if err := h.store.ResetAll(c.Context()); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Demo data restored"})
}

package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"moments-backend/internal/domain"
	"moments-backend/internal/middleware"
	"moments-backend/internal/service/event"
	"moments-backend/internal/service/share"
)

type EventHandler struct {
	eventService event.Service
	shareService share.Service
}

func NewEventHandler(eventService event.Service, shareService share.Service) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		shareService: shareService,
	}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.eventService.List(c.Context()))
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventData, ok := h.eventService.Get(c.Context(), c.Params("eventId"))
	if !ok {
		return middleware.NotFound("Event not found")
	}
	return c.Status(fiber.StatusOK).JSON(eventData)
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.HostName) == "" || strings.TrimSpace(input.Date) == "" {
		return middleware.BadRequest("Name, host name and date are required")
	}

	created, err := h.eventService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.eventService.Update(c.Context(), c.Params("eventId"), input)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return middleware.NotFound("Event not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	if err := h.eventService.Delete(c.Context(), c.Params("eventId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) RegenerateWelcome(c *fiber.Ctx) error {
	var body struct {
		EventType string `json:"eventType"`
	}
	// Body is optional; an empty one falls back to the default event type.
	_ = c.BodyParser(&body)

	updated, err := h.eventService.RegenerateWelcome(c.Context(), c.Params("eventId"), body.EventType)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return middleware.NotFound("Event not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *EventHandler) QRCode(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if _, ok := h.eventService.Get(c.Context(), eventID); !ok {
		return middleware.NotFound("Event not found")
	}

	size, _ := strconv.Atoi(c.Query("size"))
	png, err := h.shareService.QRCode(eventID, size)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}

func (h *EventHandler) Invite(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Email) == "" {
		return middleware.BadRequest("Recipient email is required")
	}

	eventData, ok := h.eventService.Get(c.Context(), c.Params("eventId"))
	if !ok {
		return middleware.NotFound("Event not found")
	}

	if err := h.shareService.SendInvite(c.Context(), body.Email, eventData); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Invite sent"})
}

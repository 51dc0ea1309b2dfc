package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"moments-backend/internal/domain"
	"moments-backend/internal/middleware"
	"moments-backend/internal/service/event"
	"moments-backend/internal/service/media"
	"moments-backend/internal/service/upload"
)

const maxUploadSize = 25 * 1024 * 1024

type MediaHandler struct {
	mediaService  media.Service
	uploadService upload.Service
	eventService  event.Service
}

func NewMediaHandler(mediaService media.Service, uploadService upload.Service, eventService event.Service) *MediaHandler {
	return &MediaHandler{
		mediaService:  mediaService,
		uploadService: uploadService,
		eventService:  eventService,
	}
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.mediaService.List(c.Context()))
}

func (h *MediaHandler) ListByEvent(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.mediaService.ListByEvent(c.Context(), c.Params("eventId")))
}

// Upload accepts a multipart batch under the "files" field. The event must
// exist: MediaItem.EventID is a caller contract, enforced here at the edge.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	if _, ok := h.eventService.Get(c.Context(), eventID); !ok {
		return middleware.NotFound("Event not found")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.BadRequest("Multipart form is required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return middleware.BadRequest("At least one file is required")
	}

	files := make([]upload.File, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxUploadSize {
			return middleware.BadRequest("File size must be less than 25MB")
		}

		src, err := header.Open()
		if err != nil {
			return middleware.BadRequest("Failed to read file")
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return middleware.BadRequest("Failed to read file")
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		files = append(files, upload.File{
			Name:        header.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	items, err := h.uploadService.Process(c.Context(), eventID, c.FormValue("uploader_name"), files, nil)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uploaded": len(items),
		"media":    items,
	})
}

func (h *MediaHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateMediaInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.mediaService.Update(c.Context(), c.Params("mediaId"), input)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return middleware.NotFound("Media not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	if err := h.mediaService.Delete(c.Context(), c.Params("mediaId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MediaHandler) Describe(c *fiber.Ctx) error {
	item, err := h.mediaService.Describe(c.Context(), c.Params("mediaId"))
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotFound):
			return middleware.NotFound("Media not found")
		case errors.Is(err, media.ErrNotImage):
			return middleware.BadRequest("Only images can be described")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

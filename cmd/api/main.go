package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"moments-backend/internal/config"
	"moments-backend/internal/handler"
	"moments-backend/internal/kv"
	"moments-backend/internal/middleware"
	"moments-backend/internal/service"
	"moments-backend/internal/store"
	"moments-backend/internal/uploader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	var backend kv.Store
	if cfg.MemoryStore {
		log.Println("Using in-memory store; data is lost on restart")
		backend = kv.NewMemory()
	} else {
		redisClient, err := config.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		backend = kv.NewRedis(redisClient)
	}

	st := store.New(backend)
	if err := st.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	genaiClient, err := config.NewGenAIClient(ctx, cfg)
	if err != nil {
		log.Printf("Warning: GenAI client unavailable: %v (AI assist will use fallbacks)", err)
	}

	services := service.NewServices(st, buildUploader(cfg), genaiClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildUploader returns nil when no remote backend is usable; the upload
// pipeline then embeds everything locally.
func buildUploader(cfg *config.Config) uploader.Uploader {
	switch cfg.UploadBackend {
	case "minio":
		client, err := config.NewMinIOClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to connect to MinIO: %v (uploads fall back to local embedding)", err)
			return nil
		}
		return uploader.NewMinIO(client, cfg)
	case "cloudinary":
		client, err := config.NewCloudinaryClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v (uploads fall back to local embedding)", err)
			return nil
		}
		if client == nil {
			log.Println("Warning: Cloudinary credentials missing (uploads fall back to local embedding)")
			return nil
		}
		return uploader.NewCloudinary(client, cfg.CloudinaryFolder)
	default:
		return nil
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/views", h.View.Resolve)

	events := v1.Group("/events")
	events.Get("/", h.Event.List)
	events.Post("/", h.Event.Create)
	events.Get("/:eventId", h.Event.Get)
	events.Put("/:eventId", h.Event.Update)
	events.Delete("/:eventId", h.Event.Delete)
	events.Post("/:eventId/welcome-message", h.Event.RegenerateWelcome)
	events.Get("/:eventId/qr", h.Event.QRCode)
	events.Post("/:eventId/invites", h.Event.Invite)
	events.Get("/:eventId/media", h.Media.ListByEvent)
	events.Post("/:eventId/media", h.Media.Upload)

	media := v1.Group("/media")
	media.Get("/", h.Media.List)
	media.Patch("/:mediaId", h.Media.Update)
	media.Delete("/:mediaId", h.Media.Delete)
	media.Post("/:mediaId/describe", h.Media.Describe)

	v1.Get("/stats", h.System.Stats)
	v1.Post("/reset", h.System.Reset)
}

package service

import (
	"google.golang.org/genai"

	"moments-backend/internal/config"
	"moments-backend/internal/service/assist"
	"moments-backend/internal/service/event"
	"moments-backend/internal/service/media"
	"moments-backend/internal/service/nav"
	"moments-backend/internal/service/share"
	"moments-backend/internal/service/upload"
	"moments-backend/internal/store"
	"moments-backend/internal/uploader"
)

type Services struct {
	Store  store.Store
	Event  event.Service
	Media  media.Service
	Upload upload.Service
	Assist assist.Service
	Share  share.Service
	Nav    nav.Service
}

func NewServices(st store.Store, remote uploader.Uploader, genaiClient *genai.Client, cfg *config.Config) *Services {
	assistService := assist.NewService(genaiClient)

	return &Services{
		Store:  st,
		Event:  event.NewService(st, assistService),
		Media:  media.NewService(st, assistService),
		Upload: upload.NewService(st, remote, assistService, cfg.UploadTimeout),
		Assist: assistService,
		Share:  share.NewService(cfg),
		Nav:    nav.NewService(st),
	}
}

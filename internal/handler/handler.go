package handler

import "moments-backend/internal/service"

type Handlers struct {
	Event  *EventHandler
	Media  *MediaHandler
	View   *ViewHandler
	System *SystemHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Event:  NewEventHandler(services.Event, services.Share),
		Media:  NewMediaHandler(services.Media, services.Upload, services.Event),
		View:   NewViewHandler(services.Nav),
		System: NewSystemHandler(services.Store),
	}
}

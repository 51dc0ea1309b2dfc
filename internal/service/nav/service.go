// Package nav maps opaque navigation tokens to view models. Entry to a
// data-bearing screen always refetches from the store first, so a rendered
// view never carries stale collections.
package nav

import (
	"context"
	"strings"

	"moments-backend/internal/domain"
	"moments-backend/internal/store"
)

const (
	publicPrefix   = "/event/"
	dashboardToken = "/dashboard"
	adminPrefix    = "/admin/"
)

type Service interface {
	Resolve(ctx context.Context, token string) domain.View
}

type service struct {
	store store.Store
}

func NewService(st store.Store) Service {
	return &service{store: st}
}

// Resolve applies the fixed prefix rules in order; anything unrecognized
// lands on Landing.
func (s *service) Resolve(ctx context.Context, token string) domain.View {
	switch {
	case strings.HasPrefix(token, publicPrefix):
		return s.publicUpload(ctx, strings.TrimPrefix(token, publicPrefix))
	case token == dashboardToken:
		return domain.View{
			State:  domain.ViewDashboard,
			Events: s.store.ListEvents(ctx),
			Media:  s.store.ListMedia(ctx),
		}
	case strings.HasPrefix(token, adminPrefix):
		return s.eventAdmin(ctx, strings.TrimPrefix(token, adminPrefix))
	default:
		return domain.View{State: domain.ViewLanding}
	}
}

func (s *service) eventAdmin(ctx context.Context, id string) domain.View {
	events := s.store.ListEvents(ctx)
	for i := range events {
		if events[i].ID == id {
			return domain.View{
				State:  domain.ViewEventAdmin,
				Event:  &events[i],
				Events: events,
				Media:  s.store.ListMediaByEvent(ctx, id),
			}
		}
	}
	return domain.View{State: domain.ViewNotFound}
}

func (s *service) publicUpload(ctx context.Context, id string) domain.View {
	event, ok := s.store.GetEvent(ctx, id)
	if !ok {
		return domain.View{State: domain.ViewNotFound}
	}
	return domain.View{State: domain.ViewPublicUpload, Event: &event}
}

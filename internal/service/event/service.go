package event

import (
	"context"
	"errors"
	"time"

	"moments-backend/internal/domain"
	"moments-backend/internal/service/assist"
	"moments-backend/internal/store"
)

var ErrNotFound = errors.New("event not found")

type Service interface {
	List(ctx context.Context) []domain.Event
	Get(ctx context.Context, id string) (domain.Event, bool)
	Create(ctx context.Context, input domain.CreateEventInput) (domain.Event, error)
	Update(ctx context.Context, id string, input domain.UpdateEventInput) (domain.Event, error)
	// Delete cascades to the event's media. Unknown ids are a no-op.
	Delete(ctx context.Context, id string) error
	// RegenerateWelcome replaces the stored welcome message with a freshly
	// generated one and returns the updated event.
	RegenerateWelcome(ctx context.Context, id, eventType string) (domain.Event, error)
}

type service struct {
	store  store.Store
	assist assist.Service
}

func NewService(st store.Store, assistSvc assist.Service) Service {
	return &service{store: st, assist: assistSvc}
}

func (s *service) List(ctx context.Context) []domain.Event {
	return s.store.ListEvents(ctx)
}

func (s *service) Get(ctx context.Context, id string) (domain.Event, bool) {
	return s.store.GetEvent(ctx, id)
}

func (s *service) Create(ctx context.Context, input domain.CreateEventInput) (domain.Event, error) {
	taken := func(id string) bool {
		_, exists := s.store.GetEvent(ctx, id)
		return exists
	}

	event := domain.Event{
		ID:             store.NewEventID(input.Name, taken),
		Name:           input.Name,
		Date:           input.Date,
		HostName:       input.HostName,
		CoverImage:     input.CoverImage,
		WelcomeMessage: input.WelcomeMessage,
		CreatedAt:      time.Now().UnixMilli(),
	}
	if event.WelcomeMessage == "" && s.assist != nil {
		event.WelcomeMessage = s.assist.GenerateWelcomeMessage(ctx, event.Name, event.HostName, "Party")
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *service) Update(ctx context.Context, id string, input domain.UpdateEventInput) (domain.Event, error) {
	event, ok := s.store.GetEvent(ctx, id)
	if !ok {
		return domain.Event{}, ErrNotFound
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.HostName != nil {
		event.HostName = *input.HostName
	}
	if input.CoverImage != nil {
		event.CoverImage = *input.CoverImage
	}
	if input.WelcomeMessage != nil {
		event.WelcomeMessage = *input.WelcomeMessage
	}
	if input.IsActive != nil {
		event.IsActive = input.IsActive
	}

	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

func (s *service) RegenerateWelcome(ctx context.Context, id, eventType string) (domain.Event, error) {
	event, ok := s.store.GetEvent(ctx, id)
	if !ok {
		return domain.Event{}, ErrNotFound
	}
	if eventType == "" {
		eventType = "Party"
	}

	event.WelcomeMessage = s.assist.GenerateWelcomeMessage(ctx, event.Name, event.HostName, eventType)
	if err := s.store.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

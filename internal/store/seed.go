package store

import (
	"time"

	"moments-backend/internal/domain"
)

// Demo dataset restored on first run and after ResetAll.

func defaultEvents() []domain.Event {
	return []domain.Event{
		{
			ID:             "demo-wedding",
			Name:           "Sarah & Tom's Wedding",
			Date:           "2024-06-15",
			HostName:       "Sarah",
			WelcomeMessage: "Welcome to our special day! Please snap and share every magical moment with us.",
			CoverImage:     "https://images.unsplash.com/photo-1519741497674-611481863552?w=800&q=80",
		},
		{
			ID:             "demo-birthday",
			Name:           "Emma's 30th Birthday Bash",
			Date:           "2024-07-20",
			HostName:       "Emma",
			WelcomeMessage: "It's my dirty thirty! Help me capture all the fun moments!",
			CoverImage:     "https://images.unsplash.com/photo-1530103862676-de8c9debad1d?w=800&q=80",
		},
	}
}

func defaultMedia() []domain.MediaItem {
	now := time.Now().UnixMilli()
	return []domain.MediaItem{
		{
			ID:            "demo-media-1",
			EventID:       "demo-wedding",
			URL:           "https://images.unsplash.com/photo-1511285560929-80b456fea0bc?w=800&q=80",
			Type:          domain.MediaTypeImage,
			Timestamp:     now - time.Hour.Milliseconds(),
			Caption:       ptr("The first dance"),
			AIDescription: ptr("Pure romance!"),
		},
		{
			ID:            "demo-media-2",
			EventID:       "demo-wedding",
			URL:           "https://images.unsplash.com/photo-1465495976277-4387d4b0b4c6?w=800&q=80",
			Type:          domain.MediaTypeImage,
			Timestamp:     now - 2*time.Hour.Milliseconds(),
			Caption:       ptr("Cutting the cake"),
			AIDescription: ptr("Sweet celebration!"),
		},
		{
			ID:            "demo-media-3",
			EventID:       "demo-wedding",
			URL:           "https://images.unsplash.com/photo-1519225421980-715cb0215aed?w=800&q=80",
			Type:          domain.MediaTypeImage,
			Timestamp:     now - 3*time.Hour.Milliseconds(),
			AIDescription: ptr("Joyful moments!"),
		},
		{
			ID:            "demo-media-4",
			EventID:       "demo-birthday",
			URL:           "https://images.unsplash.com/photo-1464349153735-7db50ed83c84?w=800&q=80",
			Type:          domain.MediaTypeImage,
			Timestamp:     now - 30*time.Minute.Milliseconds(),
			AIDescription: ptr("Party vibes!"),
		},
	}
}

func ptr(s string) *string {
	return &s
}

package domain

import "strings"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaTypeFromContentType derives the media type from a file's declared
// MIME type: anything outside image/* is treated as video.
func MediaTypeFromContentType(contentType string) MediaType {
	if strings.HasPrefix(contentType, "image/") {
		return MediaTypeImage
	}
	return MediaTypeVideo
}

// MediaItem is one uploaded asset tied to an Event via EventID. URL is either
// a remote address or a self-contained data URI.
type MediaItem struct {
	ID            string    `json:"id"`
	EventID       string    `json:"eventId"`
	URL           string    `json:"url"`
	Type          MediaType `json:"type"`
	Timestamp     int64     `json:"timestamp"`
	Caption       *string   `json:"caption,omitempty"`
	AIDescription *string   `json:"aiDescription,omitempty"`
	UploaderName  *string   `json:"uploaderName,omitempty"`
}

type UpdateMediaInput struct {
	Caption       *string `json:"caption,omitempty"`
	AIDescription *string `json:"aiDescription,omitempty"`
	UploaderName  *string `json:"uploaderName,omitempty"`
}

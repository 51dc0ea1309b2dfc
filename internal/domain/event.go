package domain

// Event is one photo-collection campaign created by a host. The JSON field
// names double as the persisted representation, so they stay camelCase.
type Event struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	HostName       string `json:"hostName"`
	CoverImage     string `json:"coverImage,omitempty"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"`
	CreatedAt      int64  `json:"createdAt,omitempty"`
}

type CreateEventInput struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	HostName       string `json:"hostName"`
	CoverImage     string `json:"coverImage,omitempty"`
	WelcomeMessage string `json:"welcomeMessage,omitempty"`
}

// UpdateEventInput carries a partial edit; nil fields keep their stored value.
type UpdateEventInput struct {
	Name           *string `json:"name,omitempty"`
	Date           *string `json:"date,omitempty"`
	HostName       *string `json:"hostName,omitempty"`
	CoverImage     *string `json:"coverImage,omitempty"`
	WelcomeMessage *string `json:"welcomeMessage,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

package domain

// ViewState is one of the screens the navigation layer can land on.
// NotFound is terminal: the token named an event that no longer exists.
type ViewState string

const (
	ViewLanding      ViewState = "LANDING"
	ViewDashboard    ViewState = "DASHBOARD"
	ViewEventAdmin   ViewState = "EVENT_ADMIN"
	ViewPublicUpload ViewState = "PUBLIC_UPLOAD"
	ViewNotFound     ViewState = "NOT_FOUND"
)

// View is the model handed to whatever renders a screen. Data-bearing states
// carry freshly fetched collections; Landing and NotFound carry none.
type View struct {
	State  ViewState   `json:"state"`
	Event  *Event      `json:"event,omitempty"`
	Events []Event     `json:"events,omitempty"`
	Media  []MediaItem `json:"media,omitempty"`
}

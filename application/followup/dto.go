package followup

import "time"

// FollowUpRequest carries raw form values. WhenAt accepts the
// datetime-local format; on update a blank WhenAt keeps the current date.
type FollowUpRequest struct {
	ClientID string `json:"client_id" form:"client_id"`
	OrderID  string `json:"order_id" form:"order_id"`
	Kind     string `json:"kind" form:"kind"`
	Title    string `json:"title" form:"title"`
	Notes    string `json:"notes" form:"notes"`
	WhenAt   string `json:"when_at" form:"when_at"`
}

type FollowUpResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	OrderID   *string   `json:"order_id,omitempty"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	WhenAt    time.Time `json:"when_at"`
	Done      bool      `json:"done"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// CalendarEvent is one entry of the calendar feed.
type CalendarEvent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	AllDay          bool      `json:"allDay"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
}

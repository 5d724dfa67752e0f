package followup

import "backoffice/domain/followup"

const doneColor = "#9AA0A6"

var kindColors = map[followup.Kind]string{
	followup.KindFollowUp:   "#0d6efd",
	followup.KindDelivery:   "#28a745",
	followup.KindCollection: "#fd7e14",
}

func ToFollowUpResponse(f *followup.FollowUp) *FollowUpResponse {
	return &FollowUpResponse{
		ID:        f.ID(),
		ClientID:  f.ClientID(),
		OrderID:   f.OrderID(),
		Kind:      string(f.Kind()),
		Title:     f.Title(),
		Notes:     f.Notes(),
		WhenAt:    f.WhenAt(),
		Done:      f.Done(),
		Version:   f.Version(),
		CreatedAt: f.CreatedAt(),
	}
}

// ToCalendarEvent greys out done entries and prefixes the order when there
// is one.
func ToCalendarEvent(f *followup.FollowUp) CalendarEvent {
	color := kindColors[f.Kind()]
	if f.Done() {
		color = doneColor
	}
	title := f.Title()
	if orderID := f.OrderID(); orderID != nil {
		title = "[Order " + *orderID + "] " + title
	}
	return CalendarEvent{
		ID:              f.ID(),
		Title:           title,
		Start:           f.WhenAt(),
		BackgroundColor: color,
		BorderColor:     color,
	}
}

package quote

import (
	"time"

	"backoffice/application/lineitem"
	"backoffice/domain/quote"
	"backoffice/domain/shared"
)

func ToQuoteResponse(q *quote.Quote) *QuoteResponse {
	var validUntil *string
	if v := q.ValidUntil(); v != nil {
		s := v.Format(time.DateOnly)
		validUntil = &s
	}
	return &QuoteResponse{
		ID:         q.ID(),
		ClientID:   q.ClientID(),
		Status:     string(q.Status()),
		Notes:      q.Notes(),
		ValidUntil: validUntil,
		Items:      lineitem.ToResponses(q.Items()),
		Total:      q.Total(),
		Version:    q.Version(),
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	}
}

// parseValidUntil reads the leading date. Anything unreadable means no
// validity date.
func parseValidUntil(raw string) *time.Time {
	t, ok := shared.ParseDay(raw)
	if !ok {
		return nil
	}
	return &t
}

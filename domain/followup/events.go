package followup

import (
	"time"

	"backoffice/domain/shared"
)

type FollowUpScheduledEvent struct {
	shared.BaseEvent
	kind   Kind
	whenAt time.Time
}

func NewFollowUpScheduledEvent(id string, kind Kind, whenAt time.Time) *FollowUpScheduledEvent {
	return &FollowUpScheduledEvent{
		BaseEvent: shared.NewBaseEvent("followup.scheduled", id),
		kind:      kind,
		whenAt:    whenAt,
	}
}

func (e *FollowUpScheduledEvent) Payload() map[string]any {
	return map[string]any{"kind": string(e.kind), "when_at": e.whenAt.Format(time.RFC3339)}
}

type FollowUpDoneEvent struct {
	shared.BaseEvent
}

func NewFollowUpDoneEvent(id string) *FollowUpDoneEvent {
	return &FollowUpDoneEvent{BaseEvent: shared.NewBaseEvent("followup.done", id)}
}

package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
)

// EventKind identifies the type of change a notification carries.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is a single change notification for one bookmark record.
// Delivery is at-least-once and ordering across distinct records is not
// guaranteed; consumers absorb duplicates via the reconciler rules.
type Event struct {
	Kind   EventKind       `json:"kind"`
	Record domain.Bookmark `json:"record"`
}

// Encode serializes the event for the wire.
func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

// DecodeEvent parses a wire payload back into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	switch e.Kind {
	case EventInsert, EventUpdate, EventDelete:
		return e, nil
	default:
		return Event{}, fmt.Errorf("unknown event kind: %q", e.Kind)
	}
}

package realtime

import (
	"testing"
	"time"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
)

func TestEventRoundTrip(t *testing.T) {
	ev := Event{
		Kind: EventInsert,
		Record: domain.Bookmark{
			ID:        "b-1",
			UserID:    "user-1",
			Name:      "github.com",
			URL:       "https://github.com",
			Category:  domain.CategoryCode,
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	data, err := ev.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error: %v", err)
	}
	if got.Kind != EventInsert {
		t.Errorf("Kind = %v, want %v", got.Kind, EventInsert)
	}
	if got.Record.ID != "b-1" || got.Record.Category != domain.CategoryCode {
		t.Errorf("Record = %+v, want original record back", got.Record)
	}
}

func TestDecodeEventRejectsUnknownKind(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"kind":"truncate","record":{}}`)); err == nil {
		t.Error("DecodeEvent() should reject unknown kinds")
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte("not json")); err == nil {
		t.Error("DecodeEvent() should reject malformed payloads")
	}
}

func TestTopicIsPerUser(t *testing.T) {
	if Topic("a") == Topic("b") {
		t.Error("Topic() must be distinct per user")
	}
}

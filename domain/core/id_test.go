package core

import (
	"testing"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	if id1.IsEmpty() || id2.IsEmpty() {
		t.Error("Expected non-empty IDs")
	}
	if id1 == id2 {
		t.Error("Expected unique IDs")
	}
	if len(id1.String()) != 36 {
		t.Errorf("Expected UUID string length 36, got %d", len(id1.String()))
	}
}

func TestParseSessionID(t *testing.T) {
	id, err := ParseSessionID("abc-123")
	if err != nil {
		t.Fatalf("ParseSessionID() error = %v", err)
	}
	if id.String() != "abc-123" {
		t.Errorf("Expected abc-123, got %s", id.String())
	}
}

func TestParseSessionID_RejectsBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		if _, err := ParseSessionID(raw); err == nil {
			t.Errorf("Expected error for blank input %q", raw)
		}
	}
}

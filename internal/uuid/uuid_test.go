package uuid

import (
	"testing"

	"github.com/google/uuid"
)

func TestHex(t *testing.T) {
	id := UUID(uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"))
	if got := id.Hex(); got != "0f8fad5bd9cb469fa16570867728950e" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestScanValueRoundTrip(t *testing.T) {
	id := NewUUID()
	v, err := id.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var got UUID
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got != id {
		t.Errorf("round trip = %s; want %s", got, id)
	}
	if err := got.Scan("not bytes"); err == nil {
		t.Error("expected error scanning a string")
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("nope"); err == nil {
		t.Error("expected parse error")
	}
	id, err := Parse("0f8fad5bd9cb469fa16570867728950e")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.String() != "0f8fad5b-d9cb-469f-a165-70867728950e" {
		t.Errorf("String() = %q", id.String())
	}
}

package wire

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeScript(t *testing.T) {
	in := Script{
		ID:          "6d0c1f8e-8a8b-4c57-a1b5-0b8e0c9d7f31",
		Selector:    "@e[tag=cart]",
		Timestamp:   time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC),
		SampleCount: 3,
		Steps:       []int{1, 0},
		Commands: []string{
			"minecraft:tp @e[tag=cart] 0.00 0.00 0.00 0.00 0.00",
			"delay 2.8",
			"minecraft:tp @e[tag=cart] 1.00 0.00 0.00 -90.00 0.00",
			"delay 2.8",
		},
	}

	out, err := DecodeScript(EncodeScript(in))
	if err != nil {
		t.Fatalf("DecodeScript failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded script mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyScript(t *testing.T) {
	out, err := DecodeScript(EncodeScript(Script{ID: "empty"}))
	if err != nil {
		t.Fatalf("DecodeScript failed: %v", err)
	}
	if out.ID != "empty" {
		t.Errorf("Expected id empty, got %s", out.ID)
	}
	if len(out.Commands) != 0 || len(out.Steps) != 0 {
		t.Errorf("Expected no commands or steps, got %d/%d", len(out.Commands), len(out.Steps))
	}
	if !out.Timestamp.IsZero() {
		t.Errorf("Expected zero timestamp, got %v", out.Timestamp)
	}
}

func TestDecodeScriptRejectsGarbage(t *testing.T) {
	if _, err := DecodeScript([]byte{1, 2}); err == nil {
		t.Error("Expected error for short buffer")
	}
	if _, err := DecodeScript([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}); err == nil {
		t.Error("Expected error for out-of-range root offset")
	}
}

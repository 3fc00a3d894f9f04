package test

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/pebbe/zmq4"
)

// Message represents a generic message structure for ZeroMQ communication
type Message struct {
	Type      string          `json:"type"`
	Timestamp float64         `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// requestAddress returns the REP endpoint of a running server, skipping the
// test when none is configured.
func requestAddress(t *testing.T) string {
	addr := os.Getenv("PATHSCRIPT_ZMQ_ADDR")
	if addr == "" {
		t.Skip("PATHSCRIPT_ZMQ_ADDR not set; start the server and point this at its request socket")
	}
	return addr
}

func roundTrip(t *testing.T, addr string, req Message) Message {
	t.Helper()

	ctx, err := zmq4.NewContext()
	if err != nil {
		t.Fatalf("Failed to create ZMQ context: %v", err)
	}
	defer ctx.Term()

	socket, err := ctx.NewSocket(zmq4.REQ)
	if err != nil {
		t.Fatalf("Failed to create REQ socket: %v", err)
	}
	defer socket.Close()
	socket.SetLinger(0)

	if err := socket.Connect(addr); err != nil {
		t.Fatalf("Failed to connect to %s: %v", addr, err)
	}

	reqData, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	if _, err := socket.SendBytes(reqData, 0); err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}

	socket.SetRcvtimeo(5 * time.Second)
	respData, err := socket.RecvBytes(0)
	if err != nil {
		t.Fatalf("Failed to receive response: %v", err)
	}

	var resp Message
	if err := json.Unmarshal(respData, &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return resp
}

// TestGeneratorConfigRequest asks a running server for its generator settings
func TestGeneratorConfigRequest(t *testing.T) {
	addr := requestAddress(t)

	resp := roundTrip(t, addr, Message{
		Type:      "GENERATOR_CONFIG_REQUEST",
		Timestamp: float64(time.Now().Unix()),
	})
	if resp.Type != "GENERATOR_CONFIG_RESPONSE" {
		t.Errorf("Expected response type 'GENERATOR_CONFIG_RESPONSE', got '%s'", resp.Type)
	}
}

// TestScriptRequest generates a one-segment script through a running server
func TestScriptRequest(t *testing.T) {
	addr := requestAddress(t)

	resp := roundTrip(t, addr, Message{
		Type:      "SCRIPT_REQUEST",
		Timestamp: float64(time.Now().Unix()),
		Data: json.RawMessage(`{
			"start": {"x": 0, "y": 0, "z": 0},
			"end": {"x": 10, "y": 0, "z": 0},
			"offset": {"x": 0, "y": 5, "z": 0},
			"tag": "foo",
			"speed": 1,
			"tick_interval": 20
		}`),
	})
	if resp.Type != "SCRIPT_RESPONSE" {
		t.Fatalf("Expected response type 'SCRIPT_RESPONSE', got '%s': %s", resp.Type, resp.Data)
	}

	var script struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(resp.Data, &script); err != nil {
		t.Fatalf("Failed to decode script: %v", err)
	}
	if len(script.Commands) != 22 {
		t.Errorf("Expected 22 commands, got %d", len(script.Commands))
	}
}

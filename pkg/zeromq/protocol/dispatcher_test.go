package protocol

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/pathscript/services"
)

type decoded struct {
	Type      string          `json:"type"`
	Timestamp float64         `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

func newDispatcher(t *testing.T) *MessageDispatcher {
	t.Helper()
	configs, err := services.NewGeneratorConfigService(filepath.Join(t.TempDir(), "none.yaml"), nil)
	require.NoError(t, err)

	d := NewMessageDispatcher(nil)
	RegisterHandlers(d, services.NewScriptService(configs, nil), configs, nil)
	return d
}

func decode(t *testing.T, raw []byte) decoded {
	t.Helper()
	var msg decoded
	require.NoError(t, json.Unmarshal(raw, &msg), "reply is JSON: %s", raw)
	return msg
}

func errorOf(t *testing.T, raw []byte) ErrorResponse {
	t.Helper()
	msg := decode(t, raw)
	require.Equal(t, MsgTypeError, msg.Type)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	return resp
}

func TestScriptRequest(t *testing.T) {
	d := newDispatcher(t)

	reply := d.Handle([]byte(`{
		"type": "SCRIPT_REQUEST",
		"timestamp": 1700000000,
		"data": {
			"start": {"x": 0, "y": 0, "z": 0},
			"end": {"x": 10, "y": 0, "z": 0},
			"offset": {"x": 0, "y": 5, "z": 0},
			"tag": "foo",
			"speed": 1,
			"tick_interval": 20
		}
	}`))

	msg := decode(t, reply)
	require.Equal(t, MsgTypeScriptResponse, msg.Type)
	assert.Greater(t, msg.Timestamp, 0.0)

	var generated services.GeneratedScript
	require.NoError(t, json.Unmarshal(msg.Data, &generated))
	assert.Equal(t, "@e[tag=foo]", generated.Selector)
	assert.Equal(t, 11, generated.SampleCount)
	require.Len(t, generated.Commands, 22)
	assert.Equal(t, "minecraft:tp @e[tag=foo] 0.00 0.00 0.00 0.00 0.00", generated.Commands[0])
	assert.Equal(t, "delay 2.8", generated.Commands[21])
}

func TestScriptRequestErrors(t *testing.T) {
	d := newDispatcher(t)

	tests := []struct {
		name string
		raw  string
		code int
	}{
		{"not json", `{{`, CodeBadRequest},
		{"missing type", `{"data": {}}`, CodeBadRequest},
		{"unknown type", `{"type": "CONFIG_REQUEST"}`, CodeBadRequest},
		{"no data", `{"type": "SCRIPT_REQUEST"}`, CodeBadRequest},
		{"missing speed", `{"type": "SCRIPT_REQUEST", "data": {"start": {"x": 0}, "end": {"x": 1}, "tag": "a", "tick_interval": 1}}`, CodeBadRequest},
		{"offset too large", `{"type": "SCRIPT_REQUEST", "data": {"start": {}, "end": {"x": 1}, "offset": {"y": 500}, "tag": "a", "speed": 1, "tick_interval": 1}}`, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := errorOf(t, d.Handle([]byte(tt.raw)))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestGeneratorConfigRequest(t *testing.T) {
	d := newDispatcher(t)

	msg := decode(t, d.Handle([]byte(`{"type": "GENERATOR_CONFIG_REQUEST"}`)))
	require.Equal(t, MsgTypeGeneratorConfigResponse, msg.Type)

	var resp GeneratorConfigResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	assert.Nil(t, resp.Config)
	assert.Equal(t, "minecraft:tp", resp.MoveVerb)
	assert.Equal(t, "OFFSET", resp.ControlMode)
	assert.True(t, resp.MultiSegment)
	assert.True(t, resp.WithOrientation)
	assert.Equal(t, 0.05, resp.TickSeconds)
	assert.Equal(t, 2.8, resp.DelayTicks)
	assert.Equal(t, 100.0, resp.MaxOffsetBound)
}

func TestHandlerFunc(t *testing.T) {
	d := NewMessageDispatcher(nil)
	d.RegisterHandler("PING", HandlerFunc(func(data json.RawMessage) ([]byte, error) {
		return Marshal("PONG", string(data))
	}))

	msg := decode(t, d.Handle([]byte(`{"type": "PING", "data": "hello"}`)))
	assert.Equal(t, "PONG", msg.Type)
	assert.JSONEq(t, `"\"hello\""`, string(msg.Data))
}

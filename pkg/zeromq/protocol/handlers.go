package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/open-teleop/pathscript/pkg/config"
	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/request"
	"github.com/open-teleop/pathscript/services"
)

// ScriptHandler handles SCRIPT_REQUEST messages
type ScriptHandler struct {
	scripts services.ScriptService
	logger  customlog.Logger
}

// NewScriptHandler creates a new handler for script requests
func NewScriptHandler(scripts services.ScriptService, logger customlog.Logger) *ScriptHandler {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &ScriptHandler{scripts: scripts, logger: logger}
}

// HandleMessage decodes a ScriptRequestDTO and replies with SCRIPT_RESPONSE
func (h *ScriptHandler) HandleMessage(data json.RawMessage) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s requires data", ErrInvalidMessage, MsgTypeScriptRequest)
	}

	var dto request.ScriptRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	req, err := dto.ToRequest(h.scripts.DefaultDelay())
	if err != nil {
		return nil, err
	}

	generated, err := h.scripts.Generate(req)
	if err != nil {
		return nil, err
	}

	h.logger.Debugf("Sending script %s (%d commands)", generated.ID, len(generated.Commands))
	return Marshal(MsgTypeScriptResponse, generated)
}

// GeneratorConfigResponse is the payload of GENERATOR_CONFIG_RESPONSE.
// Config is nil while the built-in defaults are in effect.
type GeneratorConfigResponse struct {
	Config          *config.Config `json:"config"`
	MoveVerb        string         `json:"move_verb"`
	ControlMode     string         `json:"control_mode"`
	MultiSegment    bool           `json:"multi_segment"`
	TickSeconds     float64        `json:"tick_seconds"`
	DelayTicks      float64        `json:"delay_ticks"`
	MaxOffsetBound  float64        `json:"max_offset_bound"`
	MaxSamples      int            `json:"max_samples"`
	WithOrientation bool           `json:"with_orientation"`
}

// NewGeneratorConfigResponse flattens the effective settings next to the
// stored document.
func NewGeneratorConfigResponse(configs services.GeneratorConfigService) GeneratorConfigResponse {
	settings := configs.Settings()
	opts := settings.Script.Trajectory
	return GeneratorConfigResponse{
		Config:          configs.GetCurrentConfig(),
		MoveVerb:        settings.Script.MoveVerb,
		ControlMode:     opts.ControlMode.String(),
		MultiSegment:    opts.MultiSegment,
		TickSeconds:     opts.TickSeconds,
		DelayTicks:      settings.DelayTicks,
		MaxOffsetBound:  opts.MaxOffsetBound,
		MaxSamples:      opts.MaxSamples,
		WithOrientation: settings.Script.WithOrientation,
	}
}

// GeneratorConfigHandler handles GENERATOR_CONFIG_REQUEST messages
type GeneratorConfigHandler struct {
	configs services.GeneratorConfigService
}

// NewGeneratorConfigHandler creates a new handler for configuration requests
func NewGeneratorConfigHandler(configs services.GeneratorConfigService) *GeneratorConfigHandler {
	return &GeneratorConfigHandler{configs: configs}
}

// HandleMessage replies with the effective generator configuration
func (h *GeneratorConfigHandler) HandleMessage(json.RawMessage) ([]byte, error) {
	return Marshal(MsgTypeGeneratorConfigResponse, NewGeneratorConfigResponse(h.configs))
}

// RegisterHandlers installs the script and configuration handlers.
func RegisterHandlers(
	d *MessageDispatcher,
	scripts services.ScriptService,
	configs services.GeneratorConfigService,
	logger customlog.Logger,
) {
	d.RegisterHandler(MsgTypeScriptRequest, NewScriptHandler(scripts, logger))
	d.RegisterHandler(MsgTypeGeneratorConfigRequest, NewGeneratorConfigHandler(configs))
}

package protocol

import (
	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/wire"
	"github.com/open-teleop/pathscript/services"
)

// Publish topics
const (
	TopicScript             = "pathscript.script"
	TopicConfigNotification = "configuration.notification"
)

// MessagePublisher sends a payload on a topic.
type MessagePublisher interface {
	PublishMessage(topic string, data []byte) error
	PublishJSON(topic string, messageType string, data interface{}) error
}

// Publisher distributes generated scripts and configuration notifications
type Publisher struct {
	transport MessagePublisher
	configs   services.GeneratorConfigService
	logger    customlog.Logger
}

// NewPublisher creates a publisher sending through transport
func NewPublisher(transport MessagePublisher, configs services.GeneratorConfigService, logger customlog.Logger) *Publisher {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &Publisher{
		transport: transport,
		configs:   configs,
		logger:    logger,
	}
}

// PublishScript sends the script as a CommandScript flatbuffer
func (p *Publisher) PublishScript(s *services.GeneratedScript) error {
	payload := wire.EncodeScript(wire.Script{
		ID:          s.ID,
		Selector:    s.Selector,
		Timestamp:   s.GeneratedAt,
		SampleCount: s.SampleCount,
		Steps:       s.Steps,
		Commands:    s.Commands,
	})

	p.logger.Debugf("Publishing script %s (%d bytes)", s.ID, len(payload))
	return p.transport.PublishMessage(TopicScript, payload)
}

// PublishConfigUpdatedNotification publishes a notification that the config has been updated
func (p *Publisher) PublishConfigUpdatedNotification() error {
	notification := map[string]interface{}{}
	if cfg := p.configs.GetCurrentConfig(); cfg != nil {
		notification["config_id"] = cfg.ConfigID
		notification["version"] = cfg.Version
		notification["last_updated"] = cfg.LastUpdated
	}

	p.logger.Infof("Publishing configuration update notification")
	return p.transport.PublishJSON(TopicConfigNotification, MsgTypeConfigUpdated, notification)
}

package zeromq

import (
	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/zeromq/protocol"
	"github.com/open-teleop/pathscript/services"
)

// RegisterHandlers installs the request handlers on the service and makes it
// the publisher for the script and configuration services.
func RegisterHandlers(
	service *ZeroMQService,
	scripts services.ScriptService,
	configs services.GeneratorConfigService,
	logger customlog.Logger,
) *protocol.Publisher {
	if logger == nil {
		logger = customlog.Nop()
	}

	protocol.RegisterHandlers(service.Dispatcher(), scripts, configs, logger)

	publisher := protocol.NewPublisher(service, configs, logger)
	scripts.SetPublisher(publisher)
	configs.SetPublisher(publisher)

	logger.Infof("Registered ZeroMQ handlers and publisher")
	return publisher
}

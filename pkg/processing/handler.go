package processing

import (
	"time"

	customlog "github.com/open-teleop/pathscript/pkg/log"
)

// LoggingResultHandler logs processing results
type LoggingResultHandler struct {
	logger customlog.Logger
}

// NewLoggingResultHandler creates a new logging result handler
func NewLoggingResultHandler(logger customlog.Logger) *LoggingResultHandler {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &LoggingResultHandler{logger: logger}
}

// HandleResult handles a processed job result
func (h *LoggingResultHandler) HandleResult(result *ProcessResult) {
	if result.Error != nil {
		h.logger.Warnf("Job %d failed: %v", result.Index, result.Error)
		return
	}
	if result.Script == nil {
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"job":      result.Index,
		"id":       result.Script.ID,
		"commands": len(result.Script.Commands),
	}).Debugf("Job processed at %s", time.Unix(0, result.Timestamp).UTC().Format(time.RFC3339Nano))
}

// CreateHandlerFunc creates a ResultHandler function for the ProcessingPool
func (h *LoggingResultHandler) CreateHandlerFunc() ResultHandler {
	return func(processResult *ProcessResult) {
		if processResult == nil {
			h.logger.Errorf("Received nil ProcessResult")
			return
		}
		h.HandleResult(processResult)
	}
}

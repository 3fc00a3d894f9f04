package processing

import (
	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/services"
)

// ScriptProcessor generates scripts for pooled jobs through the script service
type ScriptProcessor struct {
	logger  customlog.Logger
	scripts services.ScriptService
}

// NewScriptProcessor creates a new script processor
func NewScriptProcessor(logger customlog.Logger, scripts services.ScriptService) *ScriptProcessor {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &ScriptProcessor{
		logger:  logger,
		scripts: scripts,
	}
}

// ProcessJob generates the script for a single job
func (p *ScriptProcessor) ProcessJob(job *Job) (*services.GeneratedScript, error) {
	p.logger.Debugf("Processing job %d for selector %s (%d waypoints)",
		job.Index, job.Request.Selector, len(job.Request.Waypoints))

	return p.scripts.Generate(job.Request)
}

// CreateProcessorFunc creates a JobProcessor function for a ProcessingPool
func (p *ScriptProcessor) CreateProcessorFunc() JobProcessor {
	return func(job *Job) (*services.GeneratedScript, error) {
		return p.ProcessJob(job)
	}
}

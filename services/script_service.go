package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/script"
)

// GeneratedScript is a finished command script with its identity and shape.
type GeneratedScript struct {
	ID          string    `json:"id"`
	Selector    string    `json:"selector"`
	Commands    []string  `json:"commands"`
	SampleCount int       `json:"sample_count"`
	Segments    int       `json:"segments"`
	Steps       []int     `json:"steps"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ScriptPublisher distributes generated scripts to subscribers.
type ScriptPublisher interface {
	PublishScript(s *GeneratedScript) error
}

// ScriptStats counts generation outcomes since startup.
type ScriptStats struct {
	Generated     uint64    `json:"generated"`
	Failed        uint64    `json:"failed"`
	Published     uint64    `json:"published"`
	LastID        string    `json:"last_id,omitempty"`
	LastGenerated time.Time `json:"last_generated"`
}

// ScriptService turns requests into command scripts using the current
// generator configuration.
type ScriptService interface {
	Generate(req script.Request) (*GeneratedScript, error)
	// DefaultDelay is the delay applied to requests that do not set one.
	DefaultDelay() float64
	Stats() ScriptStats
	SetPublisher(p ScriptPublisher)
}

type scriptService struct {
	configs   GeneratorConfigService
	logger    customlog.Logger
	publisher ScriptPublisher

	generated atomic.Uint64
	failed    atomic.Uint64
	published atomic.Uint64

	mu            sync.RWMutex
	lastID        string
	lastGenerated time.Time
	now           func() time.Time
}

// NewScriptService creates a ScriptService reading its settings from configs.
func NewScriptService(configs GeneratorConfigService, logger customlog.Logger) ScriptService {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &scriptService{
		configs: configs,
		logger:  logger.WithField("component", "script"),
		now:     time.Now,
	}
}

func (s *scriptService) DefaultDelay() float64 {
	return s.configs.Settings().DelayTicks
}

func (s *scriptService) Generate(req script.Request) (*GeneratedScript, error) {
	settings := s.configs.Settings()

	sc, err := script.Generate(req, settings.Script)
	if err != nil {
		s.failed.Add(1)
		s.logger.WithField("selector", req.Selector).Warnf("Script generation rejected: %v", err)
		return nil, err
	}

	result := &GeneratedScript{
		ID:          uuid.New().String(),
		Selector:    sc.Selector,
		Commands:    sc.Commands,
		SampleCount: sc.Trajectory.SampleCount(),
		Segments:    len(sc.Trajectory.Segments),
		Steps:       sc.Trajectory.Steps,
		GeneratedAt: s.now().UTC(),
	}

	s.generated.Add(1)
	s.mu.Lock()
	s.lastID = result.ID
	s.lastGenerated = result.GeneratedAt
	publisher := s.publisher
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"id":       result.ID,
		"segments": result.Segments,
		"samples":  result.SampleCount,
	}).Infof("Script generated")

	if publisher != nil {
		go func() {
			if err := publisher.PublishScript(result); err != nil {
				s.logger.Warnf("Failed to publish script %s: %v", result.ID, err)
				return
			}
			s.published.Add(1)
		}()
	}

	return result, nil
}

func (s *scriptService) Stats() ScriptStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ScriptStats{
		Generated:     s.generated.Load(),
		Failed:        s.failed.Load(),
		Published:     s.published.Load(),
		LastID:        s.lastID,
		LastGenerated: s.lastGenerated,
	}
}

func (s *scriptService) SetPublisher(p ScriptPublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publisher = p
}

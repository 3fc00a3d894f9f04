package diagnostic

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/open-teleop/pathscript/pkg/processing"
	"github.com/open-teleop/pathscript/services"
)

// PoolStatus describes the batch worker pool
type PoolStatus struct {
	Name          string                 `json:"name"`
	Running       bool                   `json:"running"`
	Workers       int                    `json:"workers"`
	QueueLength   int                    `json:"queue_length"`
	QueueCapacity int                    `json:"queue_capacity"`
	Metrics       processing.PoolMetrics `json:"metrics"`
}

// SystemMetrics represents service diagnostics information
type SystemMetrics struct {
	Timestamp     time.Time            `json:"timestamp"`
	UptimeSeconds float64              `json:"uptime_seconds"`
	ZeroMQEnabled bool                 `json:"zeromq_enabled"`
	Scripts       services.ScriptStats `json:"scripts"`
	Pool          *PoolStatus          `json:"pool,omitempty"`
}

// DiagnosticService reports generation and pool counters
type DiagnosticService struct {
	mu            sync.RWMutex
	scripts       services.ScriptService
	pool          *processing.ProcessingPool
	startedAt     time.Time
	zeroMQEnabled bool
	now           func() time.Time
}

// NewDiagnosticService creates a new diagnostic service instance. pool may be nil.
func NewDiagnosticService(scripts services.ScriptService, pool *processing.ProcessingPool) *DiagnosticService {
	return &DiagnosticService{
		scripts:   scripts,
		pool:      pool,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// SetZeroMQEnabled records whether the ZeroMQ transport is running.
func (s *DiagnosticService) SetZeroMQEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zeroMQEnabled = enabled
}

// GetMetricsHandler handles API requests for service metrics
func (s *DiagnosticService) GetMetricsHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"metrics": s.GetMetrics(),
	})
}

// GetMetrics returns a snapshot of the current metrics
func (s *DiagnosticService) GetMetrics() SystemMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	metrics := SystemMetrics{
		Timestamp:     now,
		UptimeSeconds: now.Sub(s.startedAt).Seconds(),
		ZeroMQEnabled: s.zeroMQEnabled,
		Scripts:       s.scripts.Stats(),
	}

	if s.pool != nil {
		metrics.Pool = &PoolStatus{
			Name:          s.pool.GetName(),
			Running:       s.pool.IsRunning(),
			Workers:       s.pool.GetWorkerCount(),
			QueueLength:   s.pool.GetQueueLength(),
			QueueCapacity: s.pool.GetQueueCapacity(),
			Metrics:       s.pool.GetMetrics(),
		}
	}
	return metrics
}

package processing

import (
	"errors"
	"sync"
	"time"

	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/script"
	"github.com/open-teleop/pathscript/services"
)

var (
	// ErrPoolStopped is returned for jobs submitted to a pool that is not running.
	ErrPoolStopped = errors.New("processing pool not running")
	// ErrQueueFull is returned when the job queue has no free slot.
	ErrQueueFull = errors.New("processing pool queue is full")
)

// Job is a single script generation request queued on a pool.
type Job struct {
	Index       int
	Request     script.Request
	SubmittedAt time.Time

	// Reply, when set, receives the job's result after the pool-wide
	// result handler has run. It must be buffered.
	Reply chan<- *ProcessResult
}

// ProcessResult is the result of processing a job
type ProcessResult struct {
	Index     int
	Script    *services.GeneratedScript
	Timestamp int64
	Error     error
}

// ResultHandler is a function that handles processed results
type ResultHandler func(result *ProcessResult)

// JobProcessor generates the script for a job in a worker
type JobProcessor func(job *Job) (*services.GeneratedScript, error)

// ProcessingPool is a fixed-size worker pool fed by a bounded queue
type ProcessingPool struct {
	name          string
	workerCount   int
	logger        customlog.Logger
	jobQueue      chan *Job
	running       bool
	wg            sync.WaitGroup
	mu            sync.RWMutex
	processor     JobProcessor
	resultHandler ResultHandler
	queueSize     int
	metrics       *PoolMetrics
}

// PoolMetrics tracks metrics for a processing pool
type PoolMetrics struct {
	ProcessedCount    int64 `json:"processed"`
	ErrorCount        int64 `json:"errors"`
	QueuedCount       int64 `json:"queued"`
	RejectedCount     int64 `json:"rejected"`
	LastProcessedTime int64 `json:"last_processed_ns"`
	ProcessingTimeAvg int64 `json:"processing_time_avg_us"`
	ProcessingTimeMax int64 `json:"processing_time_max_us"`
	mu                sync.Mutex
}

// NewProcessingPool creates a new processing pool
func NewProcessingPool(
	name string,
	workerCount int,
	queueSize int,
	logger customlog.Logger,
) *ProcessingPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = customlog.Nop()
	}
	return &ProcessingPool{
		name:        name,
		workerCount: workerCount,
		queueSize:   queueSize,
		logger:      logger.WithField("pool", name),
		jobQueue:    make(chan *Job, queueSize),
		metrics:     &PoolMetrics{},
	}
}

// SetProcessor sets the job processor function
func (p *ProcessingPool) SetProcessor(processor JobProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processor = processor
}

// SetResultHandler sets the result handler function
func (p *ProcessingPool) SetResultHandler(handler ResultHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resultHandler = handler
}

// Submit adds a job to the queue without blocking.
func (p *ProcessingPool) Submit(job *Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		p.countRejected()
		p.logger.Warnf("%s pool not running, discarding job %d", p.name, job.Index)
		return ErrPoolStopped
	}

	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}

	select {
	case p.jobQueue <- job:
		p.metrics.mu.Lock()
		p.metrics.QueuedCount++
		p.metrics.mu.Unlock()
		return nil
	default:
		p.countRejected()
		p.logger.Warnf("%s pool queue is full, discarding job %d", p.name, job.Index)
		return ErrQueueFull
	}
}

func (p *ProcessingPool) countRejected() {
	p.metrics.mu.Lock()
	p.metrics.RejectedCount++
	p.metrics.mu.Unlock()
}

// Start starts the processing pool workers
func (p *ProcessingPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	p.running = true
	p.logger.Infof("Starting %s pool with %d workers", p.name, p.workerCount)

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop drains queued jobs and waits for the workers to exit. A stopped pool
// cannot be restarted.
func (p *ProcessingPool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Infof("Stopping %s pool", p.name)

	p.wg.Wait()
	p.logger.Infof("%s pool stopped", p.name)

	p.logMetrics()
}

// worker processes jobs from the queue
func (p *ProcessingPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debugf("%s pool worker %d started", p.name, id)

	for job := range p.jobQueue {
		p.mu.RLock()
		processor := p.processor
		resultHandler := p.resultHandler
		p.mu.RUnlock()

		result := &ProcessResult{Index: job.Index}
		if processor == nil {
			p.logger.Errorf("No job processor set for %s pool", p.name)
			result.Error = errors.New("no job processor configured")
		} else {
			startTime := time.Now()
			result.Script, result.Error = processor(job)
			p.record(time.Since(startTime).Microseconds(), result.Error)
		}
		result.Timestamp = time.Now().UnixNano()

		if resultHandler != nil {
			resultHandler(result)
		}
		if job.Reply != nil {
			job.Reply <- result
		}
	}

	p.logger.Debugf("%s pool worker %d stopped", p.name, id)
}

func (p *ProcessingPool) record(processingTime int64, err error) {
	p.metrics.mu.Lock()
	defer p.metrics.mu.Unlock()

	p.metrics.ProcessedCount++
	p.metrics.LastProcessedTime = time.Now().UnixNano()

	if p.metrics.ProcessingTimeAvg == 0 {
		p.metrics.ProcessingTimeAvg = processingTime
	} else {
		// Simple moving average
		p.metrics.ProcessingTimeAvg = (p.metrics.ProcessingTimeAvg + processingTime) / 2
	}
	if processingTime > p.metrics.ProcessingTimeMax {
		p.metrics.ProcessingTimeMax = processingTime
	}

	if err != nil {
		p.metrics.ErrorCount++
	}
}

// GetMetrics returns a copy of the current metrics
func (p *ProcessingPool) GetMetrics() PoolMetrics {
	p.metrics.mu.Lock()
	defer p.metrics.mu.Unlock()

	return PoolMetrics{
		ProcessedCount:    p.metrics.ProcessedCount,
		ErrorCount:        p.metrics.ErrorCount,
		QueuedCount:       p.metrics.QueuedCount,
		RejectedCount:     p.metrics.RejectedCount,
		LastProcessedTime: p.metrics.LastProcessedTime,
		ProcessingTimeAvg: p.metrics.ProcessingTimeAvg,
		ProcessingTimeMax: p.metrics.ProcessingTimeMax,
	}
}

func (p *ProcessingPool) logMetrics() {
	metrics := p.GetMetrics()

	p.logger.Infof("%s pool metrics: processed=%d, errors=%d, rejected=%d, avg_time=%dµs, max_time=%dµs",
		p.name, metrics.ProcessedCount, metrics.ErrorCount, metrics.RejectedCount,
		metrics.ProcessingTimeAvg, metrics.ProcessingTimeMax)
}

// GetName returns the pool name
func (p *ProcessingPool) GetName() string {
	return p.name
}

// GetWorkerCount returns the number of workers
func (p *ProcessingPool) GetWorkerCount() int {
	return p.workerCount
}

// GetQueueLength returns the current length of the job queue
func (p *ProcessingPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// GetQueueCapacity returns the capacity of the job queue
func (p *ProcessingPool) GetQueueCapacity() int {
	return p.queueSize
}

// IsRunning reports whether the workers are accepting jobs.
func (p *ProcessingPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

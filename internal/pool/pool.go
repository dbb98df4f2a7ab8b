package pool

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"asrd/internal/asr"
)

// Pool owns a fixed set of recognizer instances, the admission queue, and the
// dispatcher that pairs queued tasks with idle instances.
type Pool struct {
	modelPath string
	factory   asr.Factory
	threads   int

	loadTimeout  time.Duration
	drainTimeout time.Duration

	log zerolog.Logger
	pub EventPublisher

	mu        sync.RWMutex
	instances []*Instance

	totalRequests      uint64
	successfulRequests uint64
	failedRequests     uint64

	queue *taskQueue

	// wake is pulsed on release and recovery so waiters retry immediately
	// instead of sitting out acquireRetryInterval.
	wake chan struct{}

	dispatchOnce sync.Once
	dispatching  atomic.Bool

	closeOnce sync.Once
	closed    chan struct{}
	inflight  sync.WaitGroup
}

// New constructs a Pool from cfg, applying package defaults for unset fields.
// Instances start in the loading state; call Start to warm them up.
func New(cfg Config) (*Pool, error) {
	if cfg.Factory == nil {
		return nil, fmt.Errorf("pool: nil engine factory")
	}
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, fmt.Errorf("pool: empty model path")
	}
	n := cfg.Instances
	if n <= 0 {
		n = defaultInstances
	}
	devices := cfg.Devices
	if len(devices) == 0 {
		devices = []string{"cpu"}
	}
	qcap := cfg.QueueCapacity
	if qcap <= 0 {
		qcap = defaultQueueCapacity
	}
	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}
	drainTimeout := cfg.DrainTimeout
	if drainTimeout <= 0 {
		drainTimeout = defaultDrainTimeout
	}
	lg := zerolog.Nop()
	if cfg.Logger != nil {
		lg = *cfg.Logger
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = noopPublisher{}
	}

	p := &Pool{
		modelPath:    cfg.ModelPath,
		factory:      cfg.Factory,
		threads:      cfg.Threads,
		loadTimeout:  loadTimeout,
		drainTimeout: drainTimeout,
		log:          lg,
		pub:          pub,
		queue:        newTaskQueue(qcap),
		wake:         make(chan struct{}, 1),
		closed:       make(chan struct{}),
	}
	p.instances = make([]*Instance, n)
	for i := 0; i < n; i++ {
		p.instances[i] = &Instance{
			ID:     i,
			Device: devices[i%len(devices)],
			Status: StatusLoading,
		}
	}
	return p, nil
}

// Size returns the fixed number of instances.
func (p *Pool) Size() int { return len(p.instances) }

// QueueCapacity returns the admission limit.
func (p *Pool) QueueCapacity() int { return p.queue.Cap() }

// acquire picks the least recently used idle instance, flips it to busy and
// charges the request counters. It reports false when nothing is idle.
func (p *Pool) acquire() (*Instance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var picked *Instance
	for _, inst := range p.instances {
		if inst.Status != StatusIdle {
			continue
		}
		if picked == nil || inst.LastUsed.Before(picked.LastUsed) {
			picked = inst
		}
	}
	if picked == nil {
		return nil, false
	}
	picked.Status = StatusBusy
	picked.RequestCount++
	picked.LastUsed = time.Now()
	p.totalRequests++
	updateInstanceGauges(p.instances)
	return picked, true
}

// release returns a busy instance to idle and notifies waiters. success
// selects which pool-wide counter the finished request is charged to; a
// failed instance stays in the error state regardless.
func (p *Pool) release(inst *Instance, success bool) {
	p.mu.Lock()
	if inst.Status == StatusBusy {
		inst.Status = StatusIdle
	}
	inst.LastUsed = time.Now()
	if success {
		p.successfulRequests++
	} else {
		p.failedRequests++
	}
	updateInstanceGauges(p.instances)
	p.mu.Unlock()
	p.notify()
}

// markFailed takes an instance out of rotation after an inference failure.
// The instance stays in the error state until Recover reloads it.
func (p *Pool) markFailed(inst *Instance, cause error) {
	p.mu.Lock()
	inst.Status = StatusError
	inst.ErrorCount++
	if cause != nil {
		inst.LastError = cause.Error()
	}
	p.failedRequests++
	updateInstanceGauges(p.instances)
	p.mu.Unlock()
	p.log.Error().Int("instance", inst.ID).Err(cause).Msg("instance failed")
	p.pub.Publish(Event{Name: "instance_failed", InstanceID: inst.ID, Fields: map[string]any{"error": fmt.Sprint(cause)}})
}

// notify pulses the wake channel; one pending pulse is enough.
func (p *Pool) notify() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close shuts the pool down: new submissions fail immediately, queued tasks
// fail with a shutdown error, and in-flight work gets up to the drain timeout
// to finish before engines are released.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.log.Info().Msg("shutting down pool")
		close(p.closed)
		p.notify()

		done := make(chan struct{})
		go func() {
			p.inflight.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(p.drainTimeout):
			p.log.Warn().Dur("timeout", p.drainTimeout).Msg("drain timeout, abandoning in-flight tasks")
		}

		// The dispatcher drains on exit, but it may never have started.
		p.failQueued()

		p.mu.Lock()
		for _, inst := range p.instances {
			if inst.Engine != nil {
				if err := inst.Engine.Close(); err != nil {
					p.log.Warn().Int("instance", inst.ID).Err(err).Msg("engine close failed")
				}
				inst.Engine = nil
			}
			inst.Status = StatusError
		}
		updateInstanceGauges(p.instances)
		p.mu.Unlock()

		p.pub.Publish(Event{Name: "pool_shutdown"})
		p.log.Info().Msg("pool shutdown complete")
	})
	return nil
}

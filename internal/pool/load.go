package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Start warms every instance concurrently and launches the dispatcher. It
// returns an error only when not a single instance loaded; a partially loaded
// pool keeps serving with reduced capacity.
func (p *Pool) Start(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	defer cancel()

	p.log.Info().Int("instances", len(p.instances)).Str("model", p.modelPath).Msg("loading instances")

	var wg sync.WaitGroup
	errs := make([]error, len(p.instances))
	for i, inst := range p.instances {
		wg.Add(1)
		go func(i int, inst *Instance) {
			defer wg.Done()
			errs[i] = p.loadInstance(ctx, inst)
		}(i, inst)
	}
	wg.Wait()

	loaded := 0
	var failures []error
	for _, err := range errs {
		if err == nil {
			loaded++
		} else {
			failures = append(failures, err)
		}
	}
	p.log.Info().Int("loaded", loaded).Int("instances", len(p.instances)).Msg("instance loading completed")
	if loaded == 0 {
		return fmt.Errorf("pool: no instances loaded: %w", errors.Join(failures...))
	}
	p.startDispatcher()
	return nil
}

// loadInstance builds the engine for one instance and records the outcome.
func (p *Pool) loadInstance(ctx context.Context, inst *Instance) error {
	p.mu.Lock()
	inst.Status = StatusLoading
	updateInstanceGauges(p.instances)
	p.mu.Unlock()

	start := time.Now()
	eng, err := p.factory(ctx, p.modelPath, inst.Device)
	if err != nil {
		p.mu.Lock()
		inst.Status = StatusError
		inst.ErrorCount++
		inst.LastError = err.Error()
		updateInstanceGauges(p.instances)
		p.mu.Unlock()
		p.log.Error().Int("instance", inst.ID).Str("device", inst.Device).Err(err).Msg("instance load failed")
		p.pub.Publish(Event{Name: "instance_load_failed", InstanceID: inst.ID, Fields: map[string]any{"error": err.Error()}})
		return ErrInstanceLoad(inst.ID, err)
	}

	p.mu.Lock()
	inst.Engine = eng
	inst.Status = StatusIdle
	inst.LoadDuration = time.Since(start)
	inst.LastUsed = time.Now()
	inst.LastError = ""
	updateInstanceGauges(p.instances)
	p.mu.Unlock()

	p.log.Info().Int("instance", inst.ID).Str("device", inst.Device).Dur("load_time", inst.LoadDuration).Msg("instance loaded")
	p.pub.Publish(Event{Name: "instance_loaded", InstanceID: inst.ID, Fields: map[string]any{"device": inst.Device}})
	p.notify()
	return nil
}

package pool

import (
	"fmt"
	"time"
)

// startDispatcher launches the dispatch loop exactly once. Start calls it
// after warm-up; Transcribe calls it too so a pool used without Start still
// makes progress.
func (p *Pool) startDispatcher() {
	p.dispatchOnce.Do(func() {
		p.dispatching.Store(true)
		go p.dispatch()
	})
}

// dispatch pairs queued tasks with idle instances in admission order. Each
// paired task runs on its own goroutine so one slow inference cannot stall
// the queue; effective concurrency is capped by the instance count because
// pairing blocks until an instance frees up.
func (p *Pool) dispatch() {
	defer p.dispatching.Store(false)
	p.log.Info().Msg("dispatcher started")
	for {
		select {
		case <-p.closed:
			p.failQueued()
			p.log.Info().Msg("dispatcher stopped")
			return
		case t := <-p.queue.ch:
			queueDepth.Set(float64(p.queue.Len()))
			if err := t.ctx.Err(); err != nil {
				t.resolve("", err)
				tasksCompletedTotal.WithLabelValues("canceled").Inc()
				continue
			}
			inst, ok := p.acquireWait(t)
			if !ok {
				continue
			}
			p.inflight.Add(1)
			go p.runTask(inst, t)
		}
	}
}

// acquireWait blocks until an instance is acquired for t, retrying on release
// notifications and every acquireRetryInterval. It resolves t itself when the
// pool closes or the task context ends first.
func (p *Pool) acquireWait(t *task) (*Instance, bool) {
	ticker := time.NewTicker(acquireRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.closed:
			t.resolve("", ErrShutdown())
			tasksCompletedTotal.WithLabelValues("shutdown").Inc()
			return nil, false
		default:
		}
		if inst, ok := p.acquire(); ok {
			return inst, true
		}
		select {
		case <-p.closed:
			t.resolve("", ErrShutdown())
			tasksCompletedTotal.WithLabelValues("shutdown").Inc()
			return nil, false
		case <-t.ctx.Done():
			t.resolve("", t.ctx.Err())
			tasksCompletedTotal.WithLabelValues("canceled").Inc()
			return nil, false
		case <-p.wake:
		case <-ticker.C:
		}
	}
}

// runTask executes t on inst, retrying on another instance after a failure.
// The failing instance leaves rotation permanently; the task itself keeps
// retrying until it succeeds, its context ends, or the pool closes.
func (p *Pool) runTask(inst *Instance, t *task) {
	defer p.inflight.Done()
	for {
		text, err := p.infer(inst, t)
		if err == nil {
			p.release(inst, true)
			t.resolve(text, nil)
			tasksCompletedTotal.WithLabelValues("success").Inc()
			return
		}
		if t.ctx.Err() != nil {
			// Canceled mid-inference: the instance is healthy, the
			// submitter is gone.
			p.release(inst, false)
			t.resolve("", t.ctx.Err())
			tasksCompletedTotal.WithLabelValues("canceled").Inc()
			return
		}

		p.markFailed(inst, err)
		taskRetriesTotal.Inc()
		p.log.Warn().Str("task", t.id).Int("instance", inst.ID).Err(err).Msg("task failed, retrying on another instance")

		select {
		case <-p.closed:
			t.resolve("", ErrShutdown())
			tasksCompletedTotal.WithLabelValues("shutdown").Inc()
			return
		case <-t.ctx.Done():
			t.resolve("", t.ctx.Err())
			tasksCompletedTotal.WithLabelValues("canceled").Inc()
			return
		case <-time.After(failureRetryInterval):
		}

		var ok bool
		inst, ok = p.acquireWait(t)
		if !ok {
			return
		}
	}
}

// infer runs one transcription on an acquired instance.
func (p *Pool) infer(inst *Instance, t *task) (string, error) {
	p.mu.RLock()
	eng := inst.Engine
	p.mu.RUnlock()
	if eng == nil {
		return "", errInference(inst.ID, fmt.Errorf("engine not loaded"))
	}
	start := time.Now()
	res, err := eng.Transcribe(t.ctx, t.wavPath, t.opts)
	inferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", errInference(inst.ID, err)
	}
	return res.Text, nil
}

// failQueued drains the admission queue, failing every waiting task so no
// submitter hangs across shutdown.
func (p *Pool) failQueued() {
	for {
		t, ok := p.queue.TryDequeue()
		if !ok {
			queueDepth.Set(0)
			return
		}
		t.resolve("", ErrShutdown())
		tasksCompletedTotal.WithLabelValues("shutdown").Inc()
	}
}

package pool

import (
	"context"

	"asrd/internal/asr"
)

// Transcribe admits one prepared WAV slice and blocks until the pool
// produces its text. Admission is rejected immediately when the queue is
// full or the pool is shut down; once admitted, the task is retried across
// instances until it succeeds or ctx ends.
func (p *Pool) Transcribe(ctx context.Context, wavPath string, opts asr.Options) (string, error) {
	select {
	case <-p.closed:
		return "", ErrShutdown()
	default:
	}

	if opts.Threads == 0 {
		opts.Threads = p.threads
	}
	t := newTask(ctx, wavPath, opts)
	if err := p.queue.TryEnqueue(t); err != nil {
		p.log.Warn().Str("task", t.id).Err(err).Msg("enqueue rejected")
		return "", err
	}
	tasksEnqueuedTotal.Inc()
	queueDepth.Set(float64(p.queue.Len()))
	p.log.Debug().Str("task", t.id).Int("queue", p.queue.Len()).Msg("task enqueued")

	p.startDispatcher()

	// If Close raced the enqueue above, drain so nothing waits forever.
	select {
	case <-p.closed:
		p.failQueued()
	default:
	}

	select {
	case res := <-t.done:
		return res.text, res.err
	case <-ctx.Done():
		// The task stays queued; the dispatcher discards it on dequeue.
		return "", ctx.Err()
	}
}

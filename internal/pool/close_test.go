package pool

import (
	"context"
	"testing"
	"time"

	"asrd/internal/asr"
)

func TestCloseFailsAllQueuedTasks(t *testing.T) {
	// Never start the pool: every submitted task stays pending.
	p, err := New(Config{
		Instances:    1,
		ModelPath:    "m.bin",
		Factory:      newFakeFactory(),
		DrainTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	const submitters = 5
	errCh := make(chan error, submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			_, err := p.Transcribe(ctx, "pending.wav", asr.Options{})
			errCh <- err
		}()
	}

	// Let the submissions land before closing.
	waitFor(t, "submissions to queue", func() bool { return p.queue.Len() >= submitters-1 })

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for i := 0; i < submitters; i++ {
		select {
		case err := <-errCh:
			if !IsShutdown(err) {
				t.Fatalf("submitter %d got %v, want shutdown error", i, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("submitter %d never unblocked", i)
		}
	}
}

func TestCloseRejectsNewSubmissions(t *testing.T) {
	p := newStartedPool(t, Config{Instances: 1, DrainTimeout: 100 * time.Millisecond})
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := p.Transcribe(testCtx(t), "late.wav", asr.Options{})
	if !IsShutdown(err) {
		t.Fatalf("expected shutdown error, got %v", err)
	}
}

func TestCloseReleasesEngines(t *testing.T) {
	pub := NewMemoryPublisher()
	p := newStartedPool(t, Config{Instances: 2, Publisher: pub, DrainTimeout: 100 * time.Millisecond})
	engines := []*fakeEngine{engineAt(t, p, 0), engineAt(t, p, 1)}

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for i, e := range engines {
		if !e.closed.Load() {
			t.Fatalf("engine %d not closed", i)
		}
	}
	p.mu.RLock()
	for i, inst := range p.instances {
		if inst.Engine != nil {
			t.Fatalf("instance %d still holds an engine", i)
		}
		if inst.Status != StatusError {
			t.Fatalf("instance %d status %q after close, want error", i, inst.Status)
		}
	}
	p.mu.RUnlock()

	found := false
	for _, e := range pub.Events() {
		if e.Name == "pool_shutdown" {
			found = true
		}
	}
	if !found {
		t.Fatal("pool_shutdown event not published")
	}
}

func TestCloseWaitsForInflight(t *testing.T) {
	p := newStartedPool(t, Config{Instances: 1, DrainTimeout: 2 * time.Second})
	eng := engineAt(t, p, 0)
	eng.mu.Lock()
	eng.delay = 150 * time.Millisecond
	eng.mu.Unlock()

	resCh := make(chan error, 1)
	go func() {
		_, err := p.Transcribe(context.Background(), "inflight.wav", asr.Options{})
		resCh <- err
	}()

	// Wait for the task to reach the engine, then close underneath it.
	waitFor(t, "task to reach the engine", func() bool { return eng.calls.Load() > 0 })
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case err := <-resCh:
		if err != nil {
			t.Fatalf("in-flight task should finish during drain, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight task never resolved")
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := newStartedPool(t, Config{Instances: 1, DrainTimeout: 100 * time.Millisecond})
	if err := p.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

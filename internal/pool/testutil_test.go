package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"asrd/internal/asr"
)

// fakeEngine is a lightweight in-memory engine used for tests. With no
// fields set it echoes the WAV path back as the transcript.
type fakeEngine struct {
	mu        sync.Mutex
	text      string
	err       error
	failTimes int
	delay     time.Duration

	calls  atomic.Int64
	closed atomic.Bool
}

func (f *fakeEngine) Transcribe(ctx context.Context, wavPath string, opts asr.Options) (asr.Result, error) {
	f.calls.Add(1)
	f.mu.Lock()
	delay := f.delay
	f.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return asr.Result{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTimes > 0 {
		f.failTimes--
		return asr.Result{}, errors.New("synthetic engine failure")
	}
	if f.err != nil {
		return asr.Result{}, f.err
	}
	if f.text != "" {
		return asr.Result{Text: f.text}, nil
	}
	return asr.Result{Text: wavPath}, nil
}

func (f *fakeEngine) Close() error {
	f.closed.Store(true)
	return nil
}

// newFakeFactory returns a Factory producing fresh fakeEngines.
func newFakeFactory() asr.Factory {
	return func(ctx context.Context, modelPath, device string) (asr.Engine, error) {
		return &fakeEngine{}, nil
	}
}

// newStartedPool builds and starts a pool backed by fake engines, applying
// test-friendly fallbacks for required Config fields.
func newStartedPool(t *testing.T, cfg Config) *Pool {
	t.Helper()
	if cfg.ModelPath == "" {
		cfg.ModelPath = "model.bin"
	}
	if cfg.Factory == nil {
		cfg.Factory = newFakeFactory()
	}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := p.Start(testCtx(t)); err != nil {
		t.Fatalf("start pool: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// engineAt returns instance i's fakeEngine.
func engineAt(t *testing.T, p *Pool, i int) *fakeEngine {
	t.Helper()
	p.mu.RLock()
	defer p.mu.RUnlock()
	fe, ok := p.instances[i].Engine.(*fakeEngine)
	if !ok {
		t.Fatalf("instance %d engine is %T, want *fakeEngine", i, p.instances[i].Engine)
	}
	return fe
}

// setLastUsed rewrites an instance's recency for LRU selection tests.
func setLastUsed(p *Pool, i int, at time.Time) {
	p.mu.Lock()
	p.instances[i].LastUsed = at
	p.mu.Unlock()
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}

// waitFor polls cond until it holds or two seconds pass.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

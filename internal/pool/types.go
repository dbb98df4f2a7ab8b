package pool

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"asrd/internal/asr"
)

// Status represents the lifecycle state of one worker instance.
type Status string

const (
	StatusLoading Status = "loading"
	StatusIdle    Status = "idle"
	StatusBusy    Status = "busy"
	StatusError   Status = "error"
)

// allStatuses is used to build zero-filled status distributions.
var allStatuses = []Status{StatusLoading, StatusIdle, StatusBusy, StatusError}

// Instance is one pool worker bound to a device. All fields are guarded by
// the pool mutex; the engine itself is only used by the goroutine that
// currently holds the instance.
type Instance struct {
	ID     int
	Device string
	Status Status
	Engine asr.Engine

	RequestCount uint64
	ErrorCount   uint64
	LastUsed     time.Time
	LoadDuration time.Duration
	LastError    string
}

// task is one admitted unit of work: a prepared WAV slice plus the one-shot
// slot its submitter is waiting on.
type task struct {
	id      string
	wavPath string
	opts    asr.Options
	ctx     context.Context

	resolveOnce sync.Once
	done        chan taskResult // buffered so resolve never blocks

	enqueued time.Time
}

type taskResult struct {
	text string
	err  error
}

func newTask(ctx context.Context, wavPath string, opts asr.Options) *task {
	return &task{
		id:       uuid.NewString(),
		wavPath:  wavPath,
		opts:     opts,
		ctx:      ctx,
		done:     make(chan taskResult, 1),
		enqueued: time.Now(),
	}
}

// resolve delivers the task outcome exactly once; later calls are dropped.
func (t *task) resolve(text string, err error) {
	t.resolveOnce.Do(func() {
		t.done <- taskResult{text: text, err: err}
	})
}

package pool

import (
	"time"

	"github.com/rs/zerolog"

	"asrd/internal/asr"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultInstances     = 5
	defaultQueueCapacity = 5000
	defaultLoadTimeout   = 300 * time.Second
	defaultDrainTimeout  = 30 * time.Second
)

// Dispatcher pacing. acquireRetryInterval bounds the wait for an idle
// instance when no release notification arrives; failureRetryInterval is the
// pause before a task whose instance failed mid-inference is dispatched
// again.
const (
	acquireRetryInterval = 500 * time.Millisecond
	failureRetryInterval = 1 * time.Second
)

// Config encapsulates all tunables for Pool construction.
type Config struct {
	// Instances is the fixed number of workers.
	Instances int
	// Devices assigns a device tag per worker, cycled when shorter than
	// Instances. Empty means every worker runs on "cpu".
	Devices []string
	// ModelPath is the recognizer model file every worker loads.
	ModelPath string
	// Factory builds one engine per worker.
	Factory asr.Factory
	// Threads per inference call, passed through to the engine.
	Threads int
	// QueueCapacity bounds the admission queue.
	QueueCapacity int
	// LoadTimeout bounds the concurrent warm-up in Start and each Recover.
	LoadTimeout time.Duration
	// DrainTimeout bounds how long Close waits for in-flight work.
	DrainTimeout time.Duration
	// Logger receives pool lifecycle and dispatch logs; nil disables logging.
	Logger *zerolog.Logger
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
}

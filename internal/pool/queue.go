package pool

// taskQueue is the bounded FIFO admission queue. The buffered channel carries
// both ordering and capacity; TryEnqueue never blocks.
type taskQueue struct {
	ch chan *task
}

func newTaskQueue(capacity int) *taskQueue {
	return &taskQueue{ch: make(chan *task, capacity)}
}

// TryEnqueue admits t, or reports a queue-full error without blocking.
func (q *taskQueue) TryEnqueue(t *task) error {
	select {
	case q.ch <- t:
		return nil
	default:
		return ErrQueueFull(len(q.ch), cap(q.ch))
	}
}

// TryDequeue removes the oldest waiting task without blocking.
func (q *taskQueue) TryDequeue() (*task, bool) {
	select {
	case t := <-q.ch:
		return t, true
	default:
		return nil, false
	}
}

// Len reports the number of waiting tasks.
func (q *taskQueue) Len() int { return len(q.ch) }

// Cap reports the admission limit.
func (q *taskQueue) Cap() int { return cap(q.ch) }

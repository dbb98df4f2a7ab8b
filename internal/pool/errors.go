package pool

import "fmt"

// queueFullError signals admission rejection for 429 mapping.
type queueFullError struct{ size, capacity int }

func (e queueFullError) Error() string {
	return fmt.Sprintf("queue full: %d/%d", e.size, e.capacity)
}

// ErrQueueFull constructs a queueFullError.
func ErrQueueFull(size, capacity int) error { return queueFullError{size: size, capacity: capacity} }

// IsQueueFull reports whether err indicates a rejected enqueue (return 429).
func IsQueueFull(err error) bool {
	_, ok := err.(queueFullError)
	return ok
}

// instanceLoadError reports why an instance failed to load its model.
type instanceLoadError struct {
	id    int
	cause error
}

func (e instanceLoadError) Error() string {
	return fmt.Sprintf("instance %d load failed: %v", e.id, e.cause)
}

func (e instanceLoadError) Unwrap() error { return e.cause }

// ErrInstanceLoad constructs an instanceLoadError.
func ErrInstanceLoad(id int, cause error) error { return instanceLoadError{id: id, cause: cause} }

// IsInstanceLoad reports whether err came from a failed engine load.
func IsInstanceLoad(err error) bool {
	_, ok := err.(instanceLoadError)
	return ok
}

// inferenceError marks a recognizer failure on one instance. The dispatcher
// consumes these internally: the task is retried on another instance, so
// submitters never observe this type.
type inferenceError struct {
	id    int
	cause error
}

func (e inferenceError) Error() string {
	return fmt.Sprintf("instance %d inference failed: %v", e.id, e.cause)
}

func (e inferenceError) Unwrap() error { return e.cause }

func errInference(id int, cause error) error { return inferenceError{id: id, cause: cause} }

// IsInference reports whether err is an instance inference failure.
func IsInference(err error) bool {
	_, ok := err.(inferenceError)
	return ok
}

// shutdownError fails submissions and queued tasks once Close has begun.
type shutdownError struct{}

func (shutdownError) Error() string { return "pool is shut down" }

// ErrShutdown constructs the error submitters see when the pool is closing
// or closed.
func ErrShutdown() error { return shutdownError{} }

// IsShutdown reports whether err indicates the pool was shut down.
func IsShutdown(err error) bool {
	_, ok := err.(shutdownError)
	return ok
}

// instanceNotFoundError reports an unknown instance id (return 404).
type instanceNotFoundError struct{ id int }

func (e instanceNotFoundError) Error() string { return fmt.Sprintf("instance not found: %d", e.id) }

// ErrInstanceNotFound constructs an instanceNotFoundError.
func ErrInstanceNotFound(id int) error { return instanceNotFoundError{id: id} }

// IsInstanceNotFound reports whether err names a nonexistent instance.
func IsInstanceNotFound(err error) bool {
	_, ok := err.(instanceNotFoundError)
	return ok
}

// notFailedError rejects recovery of an instance that is not in the error
// state (return 409).
type notFailedError struct {
	id     int
	status Status
}

func (e notFailedError) Error() string {
	return fmt.Sprintf("instance %d is %s, not error", e.id, e.status)
}

// ErrNotFailed constructs a notFailedError.
func ErrNotFailed(id int, status Status) error { return notFailedError{id: id, status: status} }

// IsNotFailed reports whether err indicates a recovery attempt on an
// instance that has not failed.
func IsNotFailed(err error) bool {
	_, ok := err.(notFailedError)
	return ok
}

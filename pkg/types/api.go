package types

// TranscribeResponse is the envelope returned by POST /asr and POST /asr_simple.
// Code 0 means success; any other value carries a human-readable message in Msg.
type TranscribeResponse struct {
	// Application result code: 0 ok, 1 unsupported language, 500 processing error.
	// example: 0
	Code int `json:"code" example:"0"`
	// Human-readable status message.
	// example: ok
	Msg string `json:"msg" example:"ok"`
	// Transcription payload: SRT text for /asr, plain text for /asr_simple.
	Data string `json:"data,omitempty"`
	// Per-segment accounting, present only for segmented transcription.
	Stats *SegmentStats `json:"stats,omitempty"`
}

// SegmentStats summarizes the per-segment outcome of a segmented transcription.
type SegmentStats struct {
	// Number of speech segments submitted to the pool.
	// example: 12
	TotalSegments int `json:"total_segments" example:"12"`
	// Segments that produced text.
	// example: 11
	SuccessfulSegments int `json:"successful_segments" example:"11"`
	// Segments that failed or timed out.
	// example: 1
	FailedSegments int `json:"failed_segments" example:"1"`
	// SuccessfulSegments / TotalSegments, 0 when no segments were found.
	// example: 0.92
	SuccessRate float64 `json:"success_rate" example:"0.92"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: queue full: 5000/5000
	Error string `json:"error" example:"queue full: 5000/5000"`
	// HTTP status code.
	// example: 429
	Code int `json:"code" example:"429"`
}

// InstanceStats reports the lifetime counters of one worker instance.
type InstanceStats struct {
	// Stable instance identifier assigned at pool construction.
	// example: 0
	InstanceID int `json:"instance_id" example:"0"`
	// Compute device the instance is bound to.
	// example: cuda:0
	Device string `json:"device" example:"cuda:0"`
	// Current lifecycle status: loading, idle, busy or error.
	// example: idle
	Status string `json:"status" example:"idle"`
	// Requests dispatched to this instance (counted at acquisition).
	// example: 42
	RequestCount uint64 `json:"request_count" example:"42"`
	// Inference or load failures attributed to this instance.
	// example: 1
	ErrorCount uint64 `json:"error_count" example:"1"`
	// Model load duration in milliseconds, 0 until loading finished.
	// example: 3200
	LoadTimeMs int64 `json:"load_time_ms" example:"3200"`
	// Last acquire/release time (unix seconds).
	// example: 1700000000
	LastUsedUnix int64 `json:"last_used_unix" example:"1700000000"`
}

// PoolStats aggregates pool-wide counters plus per-instance detail.
type PoolStats struct {
	// Fixed number of instances in the pool.
	// example: 5
	TotalInstances int `json:"total_instances" example:"5"`
	// Total acquisitions since startup.
	// example: 120
	TotalRequests uint64 `json:"total_requests" example:"120"`
	// Acquisitions that completed and released their instance.
	// example: 118
	SuccessfulRequests uint64 `json:"successful_requests" example:"118"`
	// Acquisitions that ended with the instance marked failed.
	// example: 2
	FailedRequests uint64 `json:"failed_requests" example:"2"`
	// SuccessfulRequests / max(1, TotalRequests).
	// example: 0.98
	SuccessRate float64 `json:"success_rate" example:"0.98"`
	// Per-instance counters.
	Instances []InstanceStats `json:"instances"`
}

// PoolStatus is the coarse status distribution view of the pool.
type PoolStatus struct {
	// Fixed pool size.
	// example: 5
	PoolSize int `json:"pool_size" example:"5"`
	// Instance count per status name.
	StatusDistribution map[string]int `json:"status_distribution"`
	// Instances currently idle and selectable.
	// example: 3
	AvailableInstances int `json:"available_instances" example:"3"`
}

// QueueStatus reports the admission queue.
type QueueStatus struct {
	// Maximum queued tasks before admission is rejected.
	// example: 5000
	QueueCapacity int `json:"queue_capacity" example:"5000"`
	// Tasks currently waiting for dispatch.
	// example: 17
	QueueSize int `json:"queue_size" example:"17"`
	// QueueSize / QueueCapacity.
	// example: 0.0034
	QueueUtilization float64 `json:"queue_utilization" example:"0.0034"`
	// Whether the dispatcher loop has been started.
	// example: true
	IsProcessing bool `json:"is_processing" example:"true"`
}

// StatsResponse is returned by GET /stats.
type StatsResponse struct {
	ModelPoolStats PoolStats   `json:"model_pool_stats"`
	PoolStatus     PoolStatus  `json:"pool_status"`
	QueueStatus    QueueStatus `json:"queue_status"`
	// Server time in unix seconds.
	// example: 1700000000
	Timestamp int64 `json:"timestamp" example:"1700000000"`
}

// InstanceHealth is one entry of the health detail list.
type InstanceHealth struct {
	// example: 0
	InstanceID int `json:"instance_id" example:"0"`
	// Healthy means loaded and not in the error state.
	// example: true
	Healthy bool `json:"healthy" example:"true"`
	// example: idle
	Status string `json:"status,omitempty" example:"idle"`
	// example: cuda:0
	Device string `json:"device,omitempty" example:"cuda:0"`
	// Populated only for unhealthy instances.
	// example: model not loaded
	Reason string `json:"reason,omitempty" example:"model not loaded"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Overall verdict: healthy, degraded or unhealthy.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// HealthyInstances / TotalInstances.
	// example: 1
	HealthRatio float64 `json:"health_ratio" example:"1"`
	// example: 5
	TotalInstances int `json:"total_instances" example:"5"`
	// example: 5
	HealthyInstances int `json:"healthy_instances" example:"5"`
	// example: 0
	UnhealthyInstances int `json:"unhealthy_instances" example:"0"`
	// Per-instance verdicts.
	HealthDetails []InstanceHealth `json:"health_details"`
}

// RecoverResponse is returned by POST /instances/{id}/recover.
type RecoverResponse struct {
	// example: 2
	InstanceID int `json:"instance_id" example:"2"`
	// Status after the recovery attempt.
	// example: idle
	Status string `json:"status" example:"idle"`
}

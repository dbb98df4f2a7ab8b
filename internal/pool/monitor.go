package pool

import (
	"asrd/pkg/types"
)

// Snapshot returns copies of per-instance state for monitoring.
func (p *Pool) Snapshot() []types.InstanceStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

func (p *Pool) snapshotLocked() []types.InstanceStats {
	out := make([]types.InstanceStats, 0, len(p.instances))
	for _, inst := range p.instances {
		var lastUsed int64
		if !inst.LastUsed.IsZero() {
			lastUsed = inst.LastUsed.Unix()
		}
		out = append(out, types.InstanceStats{
			InstanceID:   inst.ID,
			Device:       inst.Device,
			Status:       string(inst.Status),
			RequestCount: inst.RequestCount,
			ErrorCount:   inst.ErrorCount,
			LoadTimeMs:   inst.LoadDuration.Milliseconds(),
			LastUsedUnix: lastUsed,
		})
	}
	return out
}

// Stats reports pool-wide counters plus per-instance detail.
func (p *Pool) Stats() types.PoolStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := p.totalRequests
	if total == 0 {
		total = 1
	}
	return types.PoolStats{
		TotalInstances:     len(p.instances),
		TotalRequests:      p.totalRequests,
		SuccessfulRequests: p.successfulRequests,
		FailedRequests:     p.failedRequests,
		SuccessRate:        float64(p.successfulRequests) / float64(total),
		Instances:          p.snapshotLocked(),
	}
}

// PoolStatus reports the instance status distribution.
func (p *Pool) PoolStatus() types.PoolStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	dist := make(map[string]int, len(allStatuses))
	for _, s := range allStatuses {
		dist[string(s)] = 0
	}
	for _, inst := range p.instances {
		dist[string(inst.Status)]++
	}
	return types.PoolStatus{
		PoolSize:           len(p.instances),
		StatusDistribution: dist,
		AvailableInstances: dist[string(StatusIdle)],
	}
}

// Ready reports whether at least one instance can serve requests.
func (p *Pool) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, inst := range p.instances {
		if inst.Engine != nil && inst.Status != StatusError {
			return true
		}
	}
	return false
}

// QueueStatus reports admission queue occupancy.
func (p *Pool) QueueStatus() types.QueueStatus {
	size := p.queue.Len()
	capacity := p.queue.Cap()
	return types.QueueStatus{
		QueueCapacity:    capacity,
		QueueSize:        size,
		QueueUtilization: float64(size) / float64(capacity),
		IsProcessing:     p.dispatching.Load(),
	}
}

// Health reports per-instance health and an overall verdict. An instance is
// healthy when its engine is loaded and it is not in the error state; the
// verdict thresholds are 0.8 for healthy and 0.5 for degraded.
func (p *Pool) Health() types.HealthResponse {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := types.HealthResponse{
		TotalInstances: len(p.instances),
		HealthDetails:  make([]types.InstanceHealth, 0, len(p.instances)),
	}
	for _, inst := range p.instances {
		h := types.InstanceHealth{InstanceID: inst.ID}
		switch {
		case inst.Engine == nil:
			h.Reason = "model not loaded"
		case inst.Status == StatusError:
			h.Reason = "instance in error state"
		default:
			h.Healthy = true
			h.Status = string(inst.Status)
			h.Device = inst.Device
		}
		if h.Healthy {
			out.HealthyInstances++
		}
		out.HealthDetails = append(out.HealthDetails, h)
	}
	out.UnhealthyInstances = out.TotalInstances - out.HealthyInstances
	if out.TotalInstances > 0 {
		out.HealthRatio = float64(out.HealthyInstances) / float64(out.TotalInstances)
	}
	switch {
	case out.HealthRatio >= 0.8:
		out.Status = "healthy"
	case out.HealthRatio >= 0.5:
		out.Status = "degraded"
	default:
		out.Status = "unhealthy"
	}
	return out
}

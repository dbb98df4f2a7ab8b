package pool

import "context"

// Recover reloads the engine of a failed instance and returns it to
// rotation. Only instances in the error state can be recovered; anything
// else is rejected so a live worker is never reloaded out from under its
// task.
func (p *Pool) Recover(ctx context.Context, id int) error {
	select {
	case <-p.closed:
		return ErrShutdown()
	default:
	}

	p.mu.Lock()
	if id < 0 || id >= len(p.instances) {
		p.mu.Unlock()
		return ErrInstanceNotFound(id)
	}
	inst := p.instances[id]
	if inst.Status != StatusError {
		p.mu.Unlock()
		return ErrNotFailed(id, inst.Status)
	}
	// Hold the slot as loading so concurrent recovers cannot double-load.
	inst.Status = StatusLoading
	engine := inst.Engine
	inst.Engine = nil
	updateInstanceGauges(p.instances)
	p.mu.Unlock()

	if engine != nil {
		if err := engine.Close(); err != nil {
			p.log.Warn().Int("instance", id).Err(err).Msg("stale engine close failed")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	defer cancel()
	if err := p.loadInstance(ctx, inst); err != nil {
		return err
	}
	p.log.Info().Int("instance", id).Msg("instance recovered")
	p.pub.Publish(Event{Name: "instance_recovered", InstanceID: id})
	return nil
}

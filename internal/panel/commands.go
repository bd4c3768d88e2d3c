package panel

import "context"

// SetTarget is the slider handler: the model and view change at once and
// the write is sent without waiting. A failed write is logged and not rolled
// back; the next heater refresh corrects any divergence.
func (p *Panel) SetTarget(v int) {
	p.applyTarget(v)
}

// Increase moves the target up one step. At the top bound it does nothing.
func (p *Panel) Increase() { p.stepTarget(1) }

// Decrease moves the target down one step. At the bottom bound it does nothing.
func (p *Panel) Decrease() { p.stepTarget(-1) }

func (p *Panel) stepTarget(dir int) {
	next, changed := p.model.stepTarget(dir * p.cfg.Bounds.Step)
	if !changed {
		return
	}
	p.applyTarget(next)
}

// applyTarget is the single path for every target change made locally.
func (p *Panel) applyTarget(v int) {
	var target int
	p.heaterSeq.claim(func() { target = p.model.setTarget(v) })
	p.publish()
	p.send("set_target", func(ctx context.Context) error {
		return p.backend.SetTarget(ctx, target)
	}, "target", target)
}

// SetPower is the toggle handler. The model reflects the toggle at once and
// is not corrected if the write fails.
func (p *Panel) SetPower(on bool) {
	p.heaterSeq.claim(func() { p.model.setPower(on) })
	p.publish()

	cmd := "power_off"
	if on {
		cmd = "power_on"
	}
	p.send(cmd, func(ctx context.Context) error {
		return p.backend.SetPower(ctx, on)
	})
}

// send fires call on a tracked goroutine.
func (p *Panel) send(cmd string, call func(context.Context) error, kv ...interface{}) {
	sent := p.spawn(func() {
		ctx, cancel := p.requestContext(p.ctx)
		defer cancel()

		if err := call(ctx); err != nil {
			if p.ctx.Err() != nil {
				return
			}
			fields := append([]interface{}{"cmd", cmd, "err", err}, kv...)
			p.log.Warnw("heater_command_failed", fields...)
			p.metrics.Incr("panel.command.failed", "cmd:"+cmd)
			return
		}
		p.log.Debugw("heater_command_sent", append([]interface{}{"cmd", cmd}, kv...)...)
		p.metrics.Incr("panel.command.sent", "cmd:"+cmd)
	})
	if !sent {
		p.log.Debugw("heater_command_dropped", append([]interface{}{"cmd", cmd}, kv...)...)
	}
}

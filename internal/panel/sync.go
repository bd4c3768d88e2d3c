package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Ordering decides which of several overlapping refreshes ends up applied.
type Ordering int

const (
	// LatestIssuedWins drops a response when a later-issued one has already
	// been applied. Local commands count as issued too, so a poll that was in
	// flight when the user moved the slider cannot undo the move.
	LatestIssuedWins Ordering = iota
	// LastResolvedWins applies every response in arrival order.
	LastResolvedWins
)

func (o Ordering) String() string {
	if o == LastResolvedWins {
		return "last_resolved"
	}
	return "latest_issued"
}

// ParseOrdering accepts "latest_issued" and "last_resolved".
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "", "latest_issued":
		return LatestIssuedWins, nil
	case "last_resolved":
		return LastResolvedWins, nil
	default:
		return LatestIssuedWins, fmt.Errorf("unknown ordering %q", s)
	}
}

// sequencer stamps requests from a monotonic counter and gates their
// responses according to the ordering.
type sequencer struct {
	mu       sync.Mutex
	ordering Ordering
	issued   uint64
	applied  uint64
}

func newSequencer(o Ordering) *sequencer { return &sequencer{ordering: o} }

func (s *sequencer) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// claim issues a number, marks it applied and runs fn under the lock.
func (s *sequencer) claim(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.applied = s.issued
	fn()
}

// apply runs fn for response seq unless the ordering rejects it.
func (s *sequencer) apply(seq uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ordering == LatestIssuedWins && seq < s.applied {
		return false
	}
	if seq > s.applied {
		s.applied = seq
	}
	fn()
	return true
}

// Run polls until ctx is done. Both refreshes fire once immediately, then on
// their intervals. Each refresh runs on its own goroutine and a slow one
// never delays the next tick.
func (p *Panel) Run(ctx context.Context) error {
	heaterEvery := p.cfg.HeaterInterval
	if heaterEvery <= 0 {
		return errors.New("panel: heater interval must be positive")
	}

	p.publish()
	p.spawn(func() { p.refreshHeater(ctx) })

	var weatherC <-chan time.Time
	if p.cfg.ShowWeather {
		if p.cfg.WeatherInterval <= 0 {
			return errors.New("panel: weather interval must be positive")
		}
		wt := time.NewTicker(p.cfg.WeatherInterval)
		defer wt.Stop()
		weatherC = wt.C
		p.spawn(func() { p.refreshWeather(ctx) })
	}

	ht := time.NewTicker(heaterEvery)
	defer ht.Stop()

	p.log.Infow("panel_sync_started",
		"heater_interval", heaterEvery,
		"weather", p.cfg.ShowWeather,
		"legacy_sensor", p.cfg.LegacySensor,
		"ordering", p.cfg.Ordering.String())

	for {
		select {
		case <-ctx.Done():
			p.log.Infow("panel_sync_stopped")
			return nil
		case <-ht.C:
			if ctx.Err() == nil {
				p.spawn(func() { p.refreshHeater(ctx) })
			}
		case <-weatherC:
			if ctx.Err() == nil {
				p.spawn(func() { p.refreshWeather(ctx) })
			}
		}
	}
}

// RefreshHeater performs one heater refresh synchronously.
func (p *Panel) RefreshHeater(ctx context.Context) { p.refreshHeater(ctx) }

// RefreshWeather performs one weather refresh synchronously.
func (p *Panel) RefreshWeather(ctx context.Context) { p.refreshWeather(ctx) }

func (p *Panel) refreshHeater(ctx context.Context) {
	seq := p.heaterSeq.issue()
	rctx, cancel := p.requestContext(ctx)
	defer cancel()

	if p.cfg.LegacySensor {
		p.refreshSensor(ctx, rctx, seq)
		return
	}

	st, err := p.backend.HeaterState(rctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		p.log.Warnw("heater_refresh_failed", "seq", seq, "err", err)
		p.metrics.Incr("panel.sync.failed", "kind:heater")
		p.commit(p.heaterSeq, seq, "heater", func() { p.model.markHeater(classify(err)) })
		return
	}
	p.metrics.Incr("panel.sync.ok", "kind:heater")
	p.metrics.Gauge("panel.current_f", st.Current)
	p.commit(p.heaterSeq, seq, "heater", func() { p.model.applyHeater(st) })
}

// refreshSensor is the legacy refresh: it only updates the current reading.
func (p *Panel) refreshSensor(ctx, rctx context.Context, seq uint64) {
	v, err := p.backend.Temperature(rctx)
	if ctx.Err() != nil {
		return
	}
	switch {
	case err != nil:
		p.log.Warnw("temperature_refresh_failed", "seq", seq, "err", err)
		p.metrics.Incr("panel.sync.failed", "kind:sensor")
		p.commit(p.heaterSeq, seq, "sensor", func() { p.model.markHeater(classify(err)) })
	case v == nil:
		p.log.Infow("temperature_not_available", "seq", seq)
		p.metrics.Incr("panel.sync.failed", "kind:sensor")
		p.commit(p.heaterSeq, seq, "sensor", func() { p.model.markHeater(StatusUnavailable) })
	default:
		p.metrics.Incr("panel.sync.ok", "kind:sensor")
		p.metrics.Gauge("panel.current_f", *v)
		p.commit(p.heaterSeq, seq, "sensor", func() { p.model.applyCurrent(*v) })
	}
}

func (p *Panel) refreshWeather(ctx context.Context) {
	seq := p.weatherSeq.issue()
	rctx, cancel := p.requestContext(ctx)
	defer cancel()

	w, err := p.backend.Weather(rctx)
	if ctx.Err() != nil {
		return
	}
	switch {
	case err != nil:
		p.log.Warnw("weather_refresh_failed", "seq", seq, "err", err)
		p.metrics.Incr("panel.sync.failed", "kind:weather")
		p.commit(p.weatherSeq, seq, "weather", func() { p.model.markWeather(classify(err)) })
	case w.Temp == nil:
		p.log.Infow("weather_not_available", "seq", seq, "desc", w.Desc)
		p.metrics.Incr("panel.sync.failed", "kind:weather")
		p.commit(p.weatherSeq, seq, "weather", func() { p.model.markWeather(StatusUnavailable) })
	default:
		p.metrics.Incr("panel.sync.ok", "kind:weather")
		p.commit(p.weatherSeq, seq, "weather", func() {
			p.model.applyWeather(WeatherState{Temperature: *w.Temp, Description: w.Desc})
		})
	}
}

// commit applies a response through the sequencer and re-renders.
func (p *Panel) commit(s *sequencer, seq uint64, kind string, fn func()) {
	if !s.apply(seq, fn) {
		p.log.Debugw("stale_response_dropped", "kind", kind, "seq", seq)
		p.metrics.Incr("panel.sync.stale", "kind:"+kind)
		return
	}
	p.publish()
}

// classify maps a backend error to a status: HTTP status and null-field
// failures are "unavailable", anything else (transport, decoding) is "error".
func classify(err error) FetchStatus {
	var se *StatusError
	if errors.As(err, &se) || errors.Is(err, ErrNullField) {
		return StatusUnavailable
	}
	return StatusFetchError
}

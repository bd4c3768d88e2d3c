package service

import (
	"context"
	"math"
	"time"

	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"

	"github.com/google/uuid"
)

// SimulatorService produces sensor readings from a first-order room model:
// while on the room warms toward the setpoint, otherwise it drifts to ambient.
type SimulatorService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	limits    Limits
	model     ThermalModel
	metrics   metrics.Recorder

	last time.Time
}

func NewSimulatorService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, limits Limits, model ThermalModel, rec metrics.Recorder) *SimulatorService {
	return &SimulatorService{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		limits:    limits,
		model:     model,
		metrics:   rec,
	}
}

// Run ticks at the given interval until ctx is cancelled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			_ = s.step(ctx, now.UTC())
		}
	}
}

// step advances the model to now and persists the reading.
func (s *SimulatorService) step(ctx context.Context, now time.Time) error {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}

	if st.ID == 0 {
		if err := s.stateRepo.Ensure(ctx, s.limits.DefaultTargetF, now); err != nil {
			return err
		}
	}
	if !st.HasSensor {
		if err := s.stateRepo.UpdateReading(ctx, s.model.AmbientF, now); err != nil {
			return err
		}
		s.last = now
		return s.sensorOnline(ctx, now, s.model.AmbientF)
	}

	if s.last.IsZero() {
		s.last = now
		return nil
	}
	elapsed := now.Sub(s.last).Seconds()
	s.last = now

	next := s.model.advance(st.CurrentF, st.TargetF, st.IsOn, elapsed)
	s.emit(st, next)
	if next == st.CurrentF {
		return nil
	}
	return s.stateRepo.UpdateReading(ctx, next, now)
}

func (s *SimulatorService) sensorOnline(ctx context.Context, now time.Time, readingF float64) error {
	return s.eventRepo.Append(ctx, models.HeaterEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventSensor,
		Description: "Sensor online",
		Metadata:    map[string]any{"current_f": readingF},
	})
}

func (s *SimulatorService) emit(st models.HeaterState, currentF float64) {
	on := 0.0
	if st.IsOn {
		on = 1
	}
	s.metrics.Gauge("heater.current_f", currentF)
	s.metrics.Gauge("heater.target_f", float64(st.TargetF))
	s.metrics.Gauge("heater.is_on", on)
}

// advance moves currentF toward its goal over elapsed seconds. The goal is
// the setpoint while on (never below ambient) and ambient while off.
func (m ThermalModel) advance(currentF float64, targetF int, isOn bool, elapsed float64) float64 {
	if elapsed <= 0 {
		return currentF
	}
	goal := m.AmbientF
	if isOn {
		goal = math.Max(float64(targetF), m.AmbientF)
	}
	switch {
	case currentF < goal:
		rate := m.CoolRate
		if isOn {
			rate = m.WarmRate
		}
		return math.Min(currentF+rate*elapsed, goal)
	case currentF > goal:
		return math.Max(currentF-m.CoolRate*elapsed, goal)
	default:
		return currentF
	}
}

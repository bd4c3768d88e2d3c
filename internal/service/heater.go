package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"

	"github.com/google/uuid"
)

// ErrTargetOutOfRange is returned when a setpoint falls outside Limits.
var ErrTargetOutOfRange = errors.New("target temperature out of range")

// ErrInvalidReading is returned for sensor readings that are not finite.
var ErrInvalidReading = errors.New("invalid temperature reading")

// HeaterService applies commands and pushed sensor readings. Writes are
// serialized so the event metadata matches the order rows were updated in.
type HeaterService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	limits    Limits
	metrics   metrics.Recorder

	mu sync.Mutex
}

func NewHeaterService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, limits Limits, rec metrics.Recorder) *HeaterService {
	return &HeaterService{stateRepo: stateRepo, eventRepo: eventRepo, limits: limits, metrics: rec}
}

// SetTarget stores a new setpoint and logs TARGET_SET.
func (s *HeaterService) SetTarget(ctx context.Context, targetF int) error {
	if !s.limits.contains(targetF) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrTargetOutOfRange, targetF, s.limits.MinF, s.limits.MaxF)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.ensure(ctx, now)
	if err != nil {
		return err
	}
	if err := s.stateRepo.UpdateTarget(ctx, targetF, now); err != nil {
		return err
	}

	s.metrics.Incr("heater.command", "cmd:set")
	return s.eventRepo.Append(ctx, models.HeaterEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventTargetSet,
		Description: fmt.Sprintf("Target set to %d°F", targetF),
		Metadata:    map[string]any{"from": st.TargetF, "to": targetF},
	})
}

// PowerOn switches the heater on and logs POWER_ON.
func (s *HeaterService) PowerOn(ctx context.Context) error {
	return s.setPower(ctx, true)
}

// PowerOff switches the heater off and logs POWER_OFF.
func (s *HeaterService) PowerOff(ctx context.Context) error {
	return s.setPower(ctx, false)
}

func (s *HeaterService) setPower(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if _, err := s.ensure(ctx, now); err != nil {
		return err
	}
	if err := s.stateRepo.UpdatePower(ctx, on, now); err != nil {
		return err
	}

	ev := models.HeaterEvent{EventID: uuid.NewString(), OccurredAt: now, Type: EventPowerOff, Description: "Heater switched off"}
	tag := "cmd:off"
	if on {
		ev.Type, ev.Description = EventPowerOn, "Heater switched on"
		tag = "cmd:on"
	}
	s.metrics.Incr("heater.command", tag)
	return s.eventRepo.Append(ctx, ev)
}

// RecordReading stores a reading pushed by an external sensor and logs a
// SENSOR event. The first reading is logged as the sensor coming online.
func (s *HeaterService) RecordReading(ctx context.Context, currentF float64) error {
	if math.IsNaN(currentF) || math.IsInf(currentF, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidReading, currentF)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.ensure(ctx, now)
	if err != nil {
		return err
	}
	if err := s.stateRepo.UpdateReading(ctx, currentF, now); err != nil {
		return err
	}

	s.metrics.Gauge("heater.current_f", currentF)
	desc := "Sensor reading"
	if !st.HasSensor {
		desc = "Sensor online"
	}
	return s.eventRepo.Append(ctx, models.HeaterEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        EventSensor,
		Description: desc,
		Metadata:    map[string]any{"current_f": currentF},
	})
}

// ensure creates the row with the default setpoint if needed and returns
// the state as it was before the caller's update.
func (s *HeaterService) ensure(ctx context.Context, now time.Time) (models.HeaterState, error) {
	if err := s.stateRepo.Ensure(ctx, s.limits.DefaultTargetF, now); err != nil {
		return models.HeaterState{}, err
	}
	return s.stateRepo.Load(ctx)
}

package service

import (
	"context"
	"math"
	"time"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
	limits    Limits
	ambientF  float64
}

func NewMonitoringService(stateRepo repository.StateRepo, limits Limits, ambientF float64) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, limits: limits, ambientF: ambientF}
}

// GetState returns the persisted heater state, or an off baseline when
// nothing has been stored yet.
func (s *MonitoringService) GetState(ctx context.Context) (models.HeaterState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.HeaterState{}, err
	}
	if st.ID == 0 {
		return models.HeaterState{
			ID:        repository.HeaterStateRowID,
			TargetF:   s.limits.DefaultTargetF,
			CurrentF:  s.ambientF,
			UpdatedAt: time.Now().UTC(),
		}, nil
	}
	return st, nil
}

// LatestTemperature returns the last reading rounded to one decimal.
func (s *MonitoringService) LatestTemperature(ctx context.Context) (*float64, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if st.ID == 0 || !st.HasSensor {
		return nil, nil
	}
	v := math.Round(st.CurrentF*10) / 10
	return &v, nil
}

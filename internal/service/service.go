package service

import (
	"context"
	"net/http"
	"time"

	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Heater exposes the control operations (setpoint and power) and the
// ingest path for an external sensor.
type Heater interface {
	SetTarget(ctx context.Context, targetF int) error
	PowerOn(ctx context.Context) error
	PowerOff(ctx context.Context) error
	RecordReading(ctx context.Context, currentF float64) error
}

// Monitoring exposes read-only state.
type Monitoring interface {
	GetState(ctx context.Context) (models.HeaterState, error)
	// LatestTemperature is nil until the sensor has reported once.
	LatestTemperature(ctx context.Context) (*float64, error)
}

type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.HeaterEvent, error)
}

// Simulator stands in for the sensor feed. Stop it by cancelling ctx.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Weather interface {
	Current(ctx context.Context) (models.Weather, error)
}

// Service aggregates the sub-services handed to the HTTP layer.
type Service struct {
	Heater
	Monitoring
	EventLog
	Simulator
	Weather
	Authorization
}

// Deps carries what the services need beyond the repositories.
type Deps struct {
	Limits     Limits
	Thermal    ThermalModel
	Weather    WeatherSettings
	HTTPClient *http.Client
	Metrics    metrics.Recorder
	SigningKey string
	TokenTTL   time.Duration
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		Heater:        NewHeaterService(repos.StateRepo, repos.EventRepo, deps.Limits, rec),
		Monitoring:    NewMonitoringService(repos.StateRepo, deps.Limits, deps.Thermal.AmbientF),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(repos.StateRepo, repos.EventRepo, deps.Limits, deps.Thermal, rec),
		Weather:       NewWeatherService(deps.HTTPClient, deps.Weather),
		Authorization: NewAuthService(repos.Auth, deps.SigningKey, deps.TokenTTL),
	}
}

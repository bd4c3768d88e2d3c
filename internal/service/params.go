package service

import "time"

// Limits bounds the setpoint in whole °F.
type Limits struct {
	MinF           int
	MaxF           int
	DefaultTargetF int
}

func (l Limits) contains(v int) bool { return v >= l.MinF && v <= l.MaxF }

// ThermalModel drives the simulated room temperature.
type ThermalModel struct {
	AmbientF float64
	WarmRate float64 // °F per second while heating
	CoolRate float64 // °F per second while drifting
}

// LogFilter selects events by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", POWER_ON, POWER_OFF, TARGET_SET, SENSOR
}

// Event types written to the log.
const (
	EventPowerOn   = "POWER_ON"
	EventPowerOff  = "POWER_OFF"
	EventTargetSet = "TARGET_SET"
	EventSensor    = "SENSOR"
)

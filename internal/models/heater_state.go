package models

import "time"

// HeaterState is the persisted snapshot of the heater.
// Temperatures are in °F. HasSensor stays false until the first reading lands.
type HeaterState struct {
	ID        int       `json:"id"`
	TargetF   int       `json:"target"`
	CurrentF  float64   `json:"current"`
	IsOn      bool      `json:"is_on"`
	HasSensor bool      `json:"has_sensor"`
	UpdatedAt time.Time `json:"updated_at"`
}

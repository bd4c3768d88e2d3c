package models

// Wire schema shared by the REST handlers and the panel client.
//
//	GET  /api/heater/temp   -> HeaterReading
//	GET  /api/temperature   -> TemperatureReading (204 until the first reading)
//	POST /api/heater/set    <- SetTargetRequest ("value" accepted as an alias)
//	POST /api/heater/reading <- SensorReading
//	GET  /api/weather       -> Weather

// HeaterReading is the combined heater status.
type HeaterReading struct {
	Current float64 `json:"current"`
	Target  int     `json:"target"`
	IsOn    bool    `json:"is_on"`
}

// TemperatureReading is the legacy sensor-only payload.
type TemperatureReading struct {
	Temperature *float64 `json:"temperature"`
}

// SetTargetRequest carries a new setpoint in whole °F.
type SetTargetRequest struct {
	Target int `json:"target"`
}

// SensorReading is pushed by an external sensor. Current is required.
type SensorReading struct {
	Current *float64 `json:"current"`
}

package models

// Weather is the outdoor conditions payload served on /api/weather.
// Temp is nil when no reading is available.
type Weather struct {
	Temp *float64 `json:"temp"`
	Desc string   `json:"desc"`
}

package panel

import "sync"

// SliderBounds is the fixed range of the target slider. Step is always 1.
type SliderBounds struct {
	Min  int
	Max  int
	Step int
}

// NewSliderBounds returns bounds for [min, max] with a step of 1.
func NewSliderBounds(min, max int) SliderBounds {
	if min > max {
		min, max = max, min
	}
	return SliderBounds{Min: min, Max: max, Step: 1}
}

// Clamp pins v into [Min, Max].
func (b SliderBounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// HeaterState is the panel's cached copy of the backend heater state.
type HeaterState struct {
	Target  int
	Current float64
	IsOn    bool
}

// WeatherState is the last outdoor reading that was applied.
type WeatherState struct {
	Temperature float64
	Description string
}

// FetchStatus records the outcome of the most recent applied refresh.
type FetchStatus int

const (
	// StatusPending means no refresh has resolved yet.
	StatusPending FetchStatus = iota
	StatusOK
	// StatusUnavailable covers non-OK responses and null payload fields.
	StatusUnavailable
	// StatusFetchError covers transport and decoding failures.
	StatusFetchError
)

func (s FetchStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFetchError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the model handed to the view.
type Snapshot struct {
	Bounds        SliderBounds
	Heater        HeaterState
	HeaterStatus  FetchStatus
	Weather       WeatherState
	WeatherStatus FetchStatus
	ShowWeather   bool
}

// Model holds everything the panel displays. Current and IsOn are written
// only by the sync loop; Target is written by both the sync loop and
// commands. All access goes through the mutex.
type Model struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewModel starts with target = bounds.Clamp(initial) and nothing fetched.
func NewModel(bounds SliderBounds, initial int, showWeather bool) *Model {
	return &Model{snap: Snapshot{
		Bounds:      bounds,
		Heater:      HeaterState{Target: bounds.Clamp(initial)},
		ShowWeather: showWeather,
	}}
}

func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// setTarget stores the clamped target and returns what was stored.
func (m *Model) setTarget(v int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Heater.Target = m.snap.Bounds.Clamp(v)
	return m.snap.Heater.Target
}

// stepTarget returns target+delta clamped, and false when that equals the
// current target (a click at a bound).
func (m *Model) stepTarget(delta int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.snap.Heater.Target
	next := m.snap.Bounds.Clamp(cur + delta)
	return next, next != cur
}

func (m *Model) setPower(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Heater.IsOn = on
}

// applyHeater overwrites the cached heater state from the backend. A target
// outside the slider range is clamped.
func (m *Model) applyHeater(h HeaterState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.Target = m.snap.Bounds.Clamp(h.Target)
	m.snap.Heater = h
	m.snap.HeaterStatus = StatusOK
}

// applyCurrent overwrites only the sensed temperature.
func (m *Model) applyCurrent(current float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Heater.Current = current
	m.snap.HeaterStatus = StatusOK
}

// markHeater records a failed refresh; cached values stay as they were.
func (m *Model) markHeater(s FetchStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.HeaterStatus = s
}

func (m *Model) applyWeather(w WeatherState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Weather = w
	m.snap.WeatherStatus = StatusOK
}

func (m *Model) markWeather(s FetchStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.WeatherStatus = s
}

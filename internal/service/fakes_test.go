package service

import (
	"context"
	"sync"
	"time"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"
)

// fakeStateRepo is an in-memory repository.StateRepo. beforeUpdate, when
// set, runs before every Update* so tests can interleave writers.
type fakeStateRepo struct {
	mu        sync.Mutex
	state     models.HeaterState
	loadErr   error
	ensureErr error
	updateErr error
	ensured   int
	targets   []int
	powers    []bool
	readings  []float64

	beforeUpdate func()
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.HeaterState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.loadErr
}

func (f *fakeStateRepo) Ensure(ctx context.Context, defaultTargetF int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ensureErr != nil {
		return f.ensureErr
	}
	f.ensured++
	if f.state.ID == 0 {
		f.state = models.HeaterState{ID: 1, TargetF: defaultTargetF, UpdatedAt: at}
	}
	return nil
}

func (f *fakeStateRepo) UpdateTarget(ctx context.Context, targetF int, at time.Time) error {
	return f.update(func() {
		f.targets = append(f.targets, targetF)
		f.state.TargetF = targetF
		f.state.UpdatedAt = at
	})
}

func (f *fakeStateRepo) UpdatePower(ctx context.Context, on bool, at time.Time) error {
	return f.update(func() {
		f.powers = append(f.powers, on)
		f.state.IsOn = on
		f.state.UpdatedAt = at
	})
}

func (f *fakeStateRepo) UpdateReading(ctx context.Context, currentF float64, at time.Time) error {
	return f.update(func() {
		f.readings = append(f.readings, currentF)
		f.state.CurrentF = currentF
		f.state.HasSensor = true
		f.state.UpdatedAt = at
	})
}

func (f *fakeStateRepo) update(apply func()) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.state.ID == 0 {
		return repository.ErrNoState
	}
	apply()
	return nil
}

func (f *fakeStateRepo) snapshot() models.HeaterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// fakeEventRepo records appends and answers List from a canned slice.
type fakeEventRepo struct {
	appendErr error
	appended  []models.HeaterEvent

	listResp []models.HeaterEvent
	listErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	calls    int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.HeaterEvent) error {
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.HeaterEvent, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.listResp, f.listErr
}

// countingRecorder is a metrics.Recorder that keeps the last gauge values.
type countingRecorder struct {
	gauges map[string]float64
	incrs  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{gauges: map[string]float64{}, incrs: map[string]int{}}
}

func (r *countingRecorder) Gauge(name string, value float64, tags ...string) { r.gauges[name] = value }
func (r *countingRecorder) Incr(name string, tags ...string)                 { r.incrs[name]++ }

var testLimits = Limits{MinF: 50, MaxF: 90, DefaultTargetF: 70}

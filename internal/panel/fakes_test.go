package panel

import (
	"context"
	"sync"

	"heaterbuddy/internal/models"
)

// fakeBackend answers from the configured funcs and records writes.
type fakeBackend struct {
	mu sync.Mutex

	heaterFn  func(ctx context.Context) (HeaterState, error)
	tempFn    func(ctx context.Context) (*float64, error)
	weatherFn func(ctx context.Context) (models.Weather, error)
	setErr    error
	powerErr  error

	heaterCalls int
	targets     []int
	powers      []bool
}

func (f *fakeBackend) HeaterState(ctx context.Context) (HeaterState, error) {
	f.mu.Lock()
	f.heaterCalls++
	fn := f.heaterFn
	f.mu.Unlock()
	if fn == nil {
		return HeaterState{}, nil
	}
	return fn(ctx)
}

func (f *fakeBackend) Temperature(ctx context.Context) (*float64, error) {
	if f.tempFn == nil {
		return nil, nil
	}
	return f.tempFn(ctx)
}

func (f *fakeBackend) Weather(ctx context.Context) (models.Weather, error) {
	if f.weatherFn == nil {
		return models.Weather{}, nil
	}
	return f.weatherFn(ctx)
}

func (f *fakeBackend) SetTarget(ctx context.Context, target int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, target)
	return f.setErr
}

func (f *fakeBackend) SetPower(ctx context.Context, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.powers = append(f.powers, on)
	return f.powerErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heaterCalls
}

func (f *fakeBackend) writtenTargets() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.targets...)
}

func (f *fakeBackend) writtenPowers() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.powers...)
}

func heaterReturns(st HeaterState, err error) func(context.Context) (HeaterState, error) {
	return func(context.Context) (HeaterState, error) { return st, err }
}

func weatherReturns(w models.Weather, err error) func(context.Context) (models.Weather, error) {
	return func(context.Context) (models.Weather, error) { return w, err }
}

// recordingRenderer keeps every rendered view.
type recordingRenderer struct {
	mu    sync.Mutex
	views []View
}

func (r *recordingRenderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// countingRecorder is a metrics.Recorder for assertions on counters.
type countingRecorder struct {
	mu    sync.Mutex
	incrs map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{incrs: map[string]int{}}
}

func (r *countingRecorder) Gauge(string, float64, ...string) {}

func (r *countingRecorder) Incr(name string, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := name
	for _, t := range tags {
		key += "|" + t
	}
	r.incrs[key]++
}

func (r *countingRecorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.incrs[key]
}

func newTestPanel(b Backend, mutate ...func(*Config)) *Panel {
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	return New(cfg, b, nil, nil, nil)
}

func floatPtr(v float64) *float64 { return &v }

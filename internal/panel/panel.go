// Package panel is the heater control panel client: a model of what is
// shown, a sync loop that polls the backend, commands that write to it, and
// pure rendering of the model into labels.
package panel

import (
	"context"
	"sync"
	"time"

	"heaterbuddy/internal/logger"
	"heaterbuddy/internal/metrics"
	"heaterbuddy/internal/models"
)

// Backend is the subset of the REST API the panel uses.
type Backend interface {
	HeaterState(ctx context.Context) (HeaterState, error)
	Temperature(ctx context.Context) (*float64, error)
	Weather(ctx context.Context) (models.Weather, error)
	SetTarget(ctx context.Context, target int) error
	SetPower(ctx context.Context, on bool) error
}

// Config tunes the panel.
type Config struct {
	Bounds        SliderBounds
	InitialTarget int

	HeaterInterval  time.Duration
	WeatherInterval time.Duration
	// RequestTimeout bounds each backend call. Zero means no timeout.
	RequestTimeout time.Duration

	ShowWeather bool
	// LegacySensor polls /api/temperature, which carries the reading only.
	LegacySensor bool
	Ordering     Ordering
}

// DefaultConfig mirrors the stock page: a 50..90 °F slider, heater polled
// every 2s and weather every 10m.
func DefaultConfig() Config {
	return Config{
		Bounds:          NewSliderBounds(50, 90),
		InitialTarget:   70,
		HeaterInterval:  2 * time.Second,
		WeatherInterval: 10 * time.Minute,
		RequestTimeout:  10 * time.Second,
		ShowWeather:     true,
		Ordering:        LatestIssuedWins,
	}
}

// Panel owns the model. The sync loop and the commands are the only writers.
type Panel struct {
	cfg      Config
	model    *Model
	backend  Backend
	renderer Renderer
	log      *logger.Logger
	metrics  metrics.Recorder

	heaterSeq  *sequencer
	weatherSeq *sequencer

	renderMu sync.Mutex

	// ctx bounds background writes; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	// closed is set under spawnMu so no goroutine is added once Close waits.
	spawnMu sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

// New builds a panel. A nil log or rec is replaced by a no-op.
func New(cfg Config, backend Backend, renderer Renderer, log *logger.Logger, rec metrics.Recorder) *Panel {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if renderer == nil {
		renderer = RendererFunc(func(View) {})
	}
	cfg.Bounds.Step = 1

	ctx, cancel := context.WithCancel(context.Background())
	return &Panel{
		cfg:        cfg,
		model:      NewModel(cfg.Bounds, cfg.InitialTarget, cfg.ShowWeather),
		backend:    backend,
		renderer:   renderer,
		log:        log,
		metrics:    rec,
		heaterSeq:  newSequencer(cfg.Ordering),
		weatherSeq: newSequencer(cfg.Ordering),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Snapshot returns the current model.
func (p *Panel) Snapshot() Snapshot { return p.model.Snapshot() }

// View returns the current rendering.
func (p *Panel) View() View { return Render(p.model.Snapshot()) }

// Close cancels in-flight requests and waits for their goroutines.
// Work spawned after Close is dropped.
func (p *Panel) Close() {
	p.spawnMu.Lock()
	p.closed = true
	p.spawnMu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// publish renders the latest model. Renders are serialized so the renderer
// never sees an older snapshot after a newer one.
func (p *Panel) publish() {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()
	p.renderer.Render(Render(p.model.Snapshot()))
}

// spawn runs fn on a tracked goroutine. It reports false once the panel is
// closed, in which case fn does not run.
func (p *Panel) spawn(fn func()) bool {
	p.spawnMu.Lock()
	defer p.spawnMu.Unlock()
	if p.closed {
		return false
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		fn()
	}()
	return true
}

func (p *Panel) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.RequestTimeout > 0 {
		return context.WithTimeout(parent, p.cfg.RequestTimeout)
	}
	return context.WithCancel(parent)
}

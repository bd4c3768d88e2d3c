package metrics

import (
	"github.com/DataDog/datadog-go/statsd"
)

// Recorder emits gauges and counters. Errors are swallowed; metrics are best-effort.
type Recorder interface {
	Gauge(name string, value float64, tags ...string)
	Incr(name string, tags ...string)
}

// Config selects the DogStatsD agent. An empty Addr disables emission.
type Config struct {
	Addr      string   `mapstructure:"addr"`
	Namespace string   `mapstructure:"namespace"`
	Tags      []string `mapstructure:"tags"`
}

type statsdRecorder struct {
	client statsd.ClientInterface
}

// New returns a DogStatsD-backed recorder, or Nop when cfg.Addr is empty.
func New(cfg Config) (Recorder, error) {
	if cfg.Addr == "" {
		return Nop{}, nil
	}
	client, err := statsd.New(cfg.Addr, statsd.WithNamespace(cfg.Namespace), statsd.WithTags(cfg.Tags))
	if err != nil {
		return Nop{}, err
	}
	return &statsdRecorder{client: client}, nil
}

// NewWithClient wraps an existing statsd client.
func NewWithClient(client statsd.ClientInterface) Recorder {
	return &statsdRecorder{client: client}
}

func (r *statsdRecorder) Gauge(name string, value float64, tags ...string) {
	_ = r.client.Gauge(name, value, tags, 1)
}

func (r *statsdRecorder) Incr(name string, tags ...string) {
	_ = r.client.Incr(name, tags, 1)
}

// Close flushes buffered metrics.
func (r *statsdRecorder) Close() error {
	return r.client.Close()
}

// Close flushes r if it buffers; a Nop recorder has nothing to flush.
func Close(r Recorder) error {
	if c, ok := r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Nop drops everything.
type Nop struct{}

func (Nop) Gauge(string, float64, ...string) {}
func (Nop) Incr(string, ...string)           {}

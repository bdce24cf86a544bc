package sessionnav

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/ubillmobile/sessionnav/session"
)

// Builder assembles an [Engine]. Construction is allocation-only: no
// storage I/O happens until [Engine.Restore].
type Builder struct {
	config Config
	redis  *redis.Client

	auditSink AuditSink

	built bool
}

// New creates a builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the session store.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the sink receiving audit events. Audit must also be
// enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics system.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the resolve-latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and assembles the Engine. A builder
// can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := session.NewStore(
		b.redis,
		cfg.Session.RedisPrefix,
		cfg.Session.StorageKey,
		cfg.Session.RecordTTL,
	)

	engine := &Engine{
		config: cfg,
		store:  store,
		ready:  make(chan struct{}),
	}
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}

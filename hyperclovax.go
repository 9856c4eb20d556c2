// Package hyperclovax provides a top-level convenience entry point for
// creating the CLOVA Studio provider with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/hyperclovax"
//
//	p, err := hyperclovax.New(hyperclovax.WithClient(base))
//	p, err := hyperclovax.New(hyperclovax.WithClient(base), hyperclovax.WithModel("HCX-007"))
//
// The base client owns HTTP transport, auth signing, retries and stream
// parsing; this package only assembles the adapter around it.
package hyperclovax

import (
	"fmt"
	"os"

	"github.com/BaSui01/hyperclovax/llm"
	"github.com/BaSui01/hyperclovax/llm/observability"
	"github.com/BaSui01/hyperclovax/llm/providers"
	"github.com/BaSui01/hyperclovax/llm/providers/clovastudio"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option configures the provider created by [New].
type Option func(*options)

type options struct {
	client  llm.ChatClient
	model   string
	apiKey  string
	baseURL string
	logger  *zap.Logger

	// Observability fields — used by NewTraced only.
	tracer  oteltrace.Tracer
	usage   *observability.UsageTracker
	metrics *observability.Metrics
}

// WithClient sets the injected base client. Required.
func WithClient(c llm.ChatClient) Option {
	return func(o *options) { o.client = c }
}

// WithModel sets the default model used when requests leave Model empty.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithAPIKey sets the config-level API key. Defaults to the
// CLOVASTUDIO_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL routes calls through a private gateway instead of the
// fixed CLOVA Studio endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracer sets the OpenTelemetry tracer used by [NewTraced].
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithUsageTracker attaches token usage accounting to [NewTraced].
func WithUsageTracker(u *observability.UsageTracker) Option {
	return func(o *options) { o.usage = u }
}

// WithMetrics attaches an OpenTelemetry metrics set to [NewTraced].
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a CLOVA Studio provider with minimal configuration.
// At minimum, a base client must be specified via [WithClient].
func New(opts ...Option) (*clovastudio.Provider, error) {
	o := apply(opts)
	return newProvider(o)
}

// NewTraced creates a CLOVA Studio provider wrapped in an OpenTelemetry
// tracing decorator. Without [WithTracer] the decorator passes calls
// through untouched; [WithUsageTracker] accounting and [WithMetrics]
// instruments work either way.
func NewTraced(opts ...Option) (llm.ChatClient, error) {
	o := apply(opts)
	p, err := newProvider(o)
	if err != nil {
		return nil, err
	}

	traced := observability.NewTracedClient(p, clovastudio.ProviderName, o.tracer, o.logger)
	if o.usage != nil {
		traced = traced.WithUsage(o.usage)
	}
	if o.metrics != nil {
		traced = traced.WithMetrics(o.metrics)
	}
	return traced, nil
}

func apply(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.apiKey == "" {
		o.apiKey = os.Getenv("CLOVASTUDIO_API_KEY")
	}
	return o
}

func newProvider(o *options) (*clovastudio.Provider, error) {
	if o.client == nil {
		return nil, fmt.Errorf("base client is required: use WithClient")
	}

	cfg := providers.ClovaStudioConfig{
		BaseProviderConfig: providers.BaseProviderConfig{
			APIKey:  o.apiKey,
			BaseURL: o.baseURL,
			Model:   o.model,
		},
	}
	return clovastudio.New(o.client, cfg, o.logger)
}

package fetch

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/kroma-labs/fetch-go/fetch"

// Config holds the HTTP transport configuration. Use DefaultConfig() as a
// starting point and adjust fields as needed:
//
//	cfg := fetch.DefaultConfig()
//	cfg.Timeout = 5 * time.Second
//	client := fetch.New(fetch.WithConfig(cfg))
type Config struct {
	// Timeout limits the entire request lifecycle: connection, TLS,
	// request write, and response body read. Zero means no timeout.
	//
	// Default: 15s
	Timeout time.Duration

	// MaxIdleConns caps idle keep-alive connections across all hosts.
	//
	// Default: 100
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections per host.
	//
	// Default: 20
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	//
	// Default: 90s
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	//
	// Default: 10s
	TLSHandshakeTimeout time.Duration

	// DialTimeout bounds TCP connection establishment.
	//
	// Default: 5s
	DialTimeout time.Duration

	// KeepAlive is the TCP keep-alive probe interval.
	//
	// Default: 30s
	KeepAlive time.Duration

	// DisableCompression disables the automatic Accept-Encoding: gzip
	// header and transparent decompression.
	//
	// Default: true
	DisableCompression bool

	// ForceHTTP2 forces an HTTP/2 attempt on HTTPS connections.
	//
	// Default: false (negotiated via ALPN)
	ForceHTTP2 bool
}

// DefaultConfig returns a balanced transport configuration suitable for
// most callers.
func DefaultConfig() Config {
	return Config{
		Timeout:             15 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		DisableCompression:  true,
		ForceHTTP2:          false,
	}
}

// internalConfig holds the full client configuration: transport settings,
// defaults applied to every request, and observability wiring.
type internalConfig struct {
	httpConfig Config

	// BaseURL is prepended to relative request URLs.
	BaseURL string

	// DefaultHeaders are merged into every request (request-specific
	// headers win).
	DefaultHeaders http.Header

	// Debug enables zerolog request/response logging.
	Debug bool

	// GenerateCurl populates Result.Debug.Curl on every request.
	GenerateCurl bool

	// EnableTrace captures network timing for every request.
	EnableTrace bool

	// RequestID stamps a fresh X-Request-ID header on every request.
	RequestID bool

	// ServiceName identifies this client in spans and logs.
	ServiceName string

	// Transport, when set, replaces the Config-built http.Transport.
	// Used for test doubles and custom round trippers.
	Transport http.RoundTripper

	// TLSConfig overrides the transport TLS configuration.
	TLSConfig *tls.Config

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// MeterProvider defaults to the global provider.
	MeterProvider metric.MeterProvider

	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *metrics

	// Propagators inject trace context into outgoing headers.
	// Default: W3C TraceContext + Baggage.
	Propagators propagation.TextMapPropagator
}

// newConfig applies options over defaults and initializes the tracer,
// meter, and metric instruments.
func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:     DefaultConfig(),
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)
	cfg.Meter = cfg.MeterProvider.Meter(scope)
	cfg.Metrics, _ = newMetrics(cfg.Meter)

	if cfg.Propagators == nil {
		cfg.Propagators = propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)
	}

	return cfg
}

// buildTransport creates an http.Transport from the configuration.
func (cfg *internalConfig) buildTransport() *http.Transport {
	hc := cfg.httpConfig

	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        hc.MaxIdleConns,
		MaxIdleConnsPerHost: hc.MaxIdleConnsPerHost,
		IdleConnTimeout:     hc.IdleConnTimeout,
		TLSHandshakeTimeout: hc.TLSHandshakeTimeout,
		DisableCompression:  hc.DisableCompression,
		TLSClientConfig:     cfg.TLSConfig,
		ForceAttemptHTTP2:   hc.ForceHTTP2,
	}
}

// baseAttributes returns common attributes for spans and metrics.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 1)
	if cfg.ServiceName != "" {
		attrs = append(attrs, attribute.String("http.client.name", cfg.ServiceName))
	}
	return attrs
}

// Option configures the client.
type Option func(*internalConfig)

// WithConfig sets the HTTP transport configuration.
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig = c
	}
}

// WithBaseURL sets a base URL prepended to relative request URLs.
//
// Example:
//
//	client := fetch.New(fetch.WithBaseURL("https://api.example.com"))
//	res := client.Get(ctx, "/items", nil)
func WithBaseURL(baseURL string) Option {
	return func(cfg *internalConfig) {
		cfg.BaseURL = baseURL
	}
}

// WithDefaultHeaders sets headers merged into every request. Headers
// built from the request options take precedence.
func WithDefaultHeaders(h http.Header) Option {
	return func(cfg *internalConfig) {
		cfg.DefaultHeaders = h
	}
}

// WithDebug enables structured request/response logging.
func WithDebug() Option {
	return func(cfg *internalConfig) {
		cfg.Debug = true
	}
}

// WithGenerateCurl populates Result.Debug.Curl with a reproducible cURL
// command for every request.
func WithGenerateCurl() Option {
	return func(cfg *internalConfig) {
		cfg.GenerateCurl = true
	}
}

// WithTrace captures network timing (DNS, connect, TLS, TTFB) for every
// request. Equivalent to setting Options.EnableTrace per request.
func WithTrace() Option {
	return func(cfg *internalConfig) {
		cfg.EnableTrace = true
	}
}

// WithRequestID stamps a fresh UUID X-Request-ID header on every request.
func WithRequestID() Option {
	return func(cfg *internalConfig) {
		cfg.RequestID = true
	}
}

// WithServiceName sets an identifier for this client, added as the
// "http.client.name" attribute on spans and metrics and to debug logs.
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) {
		cfg.ServiceName = name
	}
}

// WithTransport replaces the Config-built transport with a custom
// http.RoundTripper. The instrumented wrapper still applies.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *internalConfig) {
		cfg.Transport = rt
	}
}

// WithTLSConfig sets a custom TLS configuration on the built transport.
func WithTLSConfig(tlsCfg *tls.Config) Option {
	return func(cfg *internalConfig) {
		cfg.TLSConfig = tlsCfg
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
// If not called, the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
// If not called, the global provider is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) {
		cfg.MeterProvider = mp
	}
}

// WithPropagators sets custom context propagators for trace context
// injection. Default: W3C TraceContext and Baggage.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(cfg *internalConfig) {
		cfg.Propagators = p
	}
}

// Package salesforce reads field metadata from the Salesforce Metadata API
// and resolves the target org from the local state directory.
package salesforce

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
)

const (
	DefaultAPIVersion     = "60.0"
	RequestTimeout        = 60 * time.Second
	HTTPTimeout           = 30 * time.Second
	IdleConnTimeout       = 30 * time.Second
	TLSHandshakeTimeout   = 10 * time.Second
	ResponseHeaderTimeout = 50 * time.Second
	KeepAlive             = 20 * time.Second
	DebugBodyLimit        = 32 * 1024
	UserAgent             = "sfpd"
)

// Client is the HTTP client of one Salesforce org.
type Client struct {
	resty  *resty.Client
	logger log.Logger
}

type clientConfig struct {
	transport http.RoundTripper
	timeout   time.Duration
	verbose   bool
}

type ClientOption func(c *clientConfig)

// WithTransport replaces the base HTTP transport, it is used in tests.
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *clientConfig) {
		c.transport = transport
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithVerbose logs full requests and responses, the session ID is masked.
func WithVerbose(verbose bool) ClientOption {
	return func(c *clientConfig) {
		c.verbose = verbose
	}
}

func NewClient(logger log.Logger, tel telemetry.Telemetry, instanceURL string, opts ...ClientOption) *Client {
	cfg := clientConfig{timeout: RequestTimeout}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.transport == nil {
		cfg.transport = createTransport()
	}

	logger = logger.WithComponent("salesforce")
	r := resty.New()
	r.SetLogger(&restyLogger{logger: logger})
	r.SetBaseURL(strings.TrimRight(instanceURL, "/"))
	r.SetHeader("User-Agent", UserAgent)
	r.SetTimeout(cfg.timeout)
	r.SetRetryCount(0)
	r.SetTransport(otelhttp.NewTransport(
		cfg.transport,
		otelhttp.WithTracerProvider(tel.TracerProvider()),
		otelhttp.WithMeterProvider(tel.MeterProvider()),
	))

	c := &Client{resty: r, logger: logger}
	c.setupLogs(cfg.verbose)
	return c
}

func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

func (c *Client) NewRequest(ctx context.Context) *resty.Request {
	return c.resty.R().SetContext(ctx)
}

func (c *Client) setupLogs(verbose bool) {
	// Debug full request and response if verbose = true
	if verbose {
		c.resty.SetDebug(true)
		c.resty.SetDebugBodyLimit(DebugBodyLimit)
		c.resty.OnRequestLog(func(r *resty.RequestLog) error {
			r.Body = maskSessionID(r.Body)
			return nil
		})
	}

	// Log each request when done
	c.resty.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		c.logger.Debugf(res.Request.Context(), "%s %s | %d | %s", res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
		return nil
	})
}

// createTransport with custom timeouts.
func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   HTTPTimeout,
		KeepAlive: KeepAlive,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
	}
}

// restyLogger forwards resty messages to the logger.
type restyLogger struct {
	logger log.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

package dependencies

import (
	"net/http"

	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
)

type config struct {
	httpTransport http.RoundTripper
	telemetry     telemetry.Telemetry
}

type Option func(*config)

func newConfig(ops []Option) config {
	c := config{}
	for _, o := range ops {
		o(&c)
	}
	if c.telemetry == nil {
		c.telemetry = telemetry.NewNop()
	}
	return c
}

// WithHTTPTransport replaces the transport of all HTTP clients, it is used in tests.
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.httpTransport = transport
	}
}

func WithTelemetry(tel telemetry.Telemetry) Option {
	return func(c *config) {
		c.telemetry = tel
	}
}

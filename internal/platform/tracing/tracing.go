// Package tracing installs the OpenTelemetry tracer provider. Packages take
// their tracer from otel.Tracer, so spans are no-ops until Setup runs with
// tracing enabled.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"smp/internal/platform/config"
)

// ServiceName identifies this process in exported spans.
const ServiceName = "smp-server"

// Provider owns the SDK tracer provider, if one was installed.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Setup installs a global tracer provider exporting to stdout. With tracing
// disabled it installs nothing and returns a Provider whose Shutdown is a no-op.
func Setup(cfg config.Tracing) (*Provider, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit span destination.
func SetupWithWriter(cfg config.Tracing, w io.Writer) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider}, nil
}

// Enabled reports whether an SDK provider was installed.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

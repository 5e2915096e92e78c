package telemetry_test

import (
	"context"
	"testing"

	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/telemetry"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "noop without endpoint"},
		// Non-routable, so nothing is exported.
		{name: "provider with endpoint", endpoint: "http://192.0.2.1:4318"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{
				ServiceName:  "test-service",
				OTLPEndpoint: tt.endpoint,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error: %v", err)
			}
		})
	}
}

func TestNoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), config.TelemetryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

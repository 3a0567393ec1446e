package config

import (
	"testing"

	"github.com/xnaught/PresentMon-sub004/pkg/testutil"
)

func validConfig() *Config {
	return &Config{
		Query: QueryConfig{
			WindowMs:       DefaultWindowMs,
			PollIntervalMs: DefaultPollIntervalMs,
			GPUDeviceID:    DefaultGPUDeviceID,
		},
		TelemetryPeriodMs: DefaultTelemetryPeriodMs,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"empty config", func(c *Config) { *c = Config{} }, true},
		{"zero window", func(c *Config) { c.Query.WindowMs = 0 }, true},
		{"negative offset", func(c *Config) { c.Query.MetricOffsetMs = -1 }, true},
		{"zero poll interval", func(c *Config) { c.Query.PollIntervalMs = 0 }, true},
		{"negative frame capacity", func(c *Config) { c.Query.FrameCapacity = -2 }, true},
		{"telemetry period too large", func(c *Config) { c.TelemetryPeriodMs = MaxTelemetryPeriodMs + 1 }, true},
		{"telemetry period at max", func(c *Config) { c.TelemetryPeriodMs = MaxTelemetryPeriodMs }, false},
		{"relay without key", func(c *Config) { c.Outputs.RelayURL = "wss://relay.example" }, true},
		{"relay with key", func(c *Config) {
			c.Outputs.RelayURL = "wss://relay.example"
			c.Outputs.NostrSecretKey = testutil.TestSK
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

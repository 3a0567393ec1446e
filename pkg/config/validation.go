package config

import "fmt"

func (c *Config) validate() error {
	if c.Query.WindowMs <= 0 {
		return fmt.Errorf("%s must be positive, got %g", KeyWindowMs, c.Query.WindowMs)
	}
	if c.Query.MetricOffsetMs < 0 {
		return fmt.Errorf("%s must not be negative, got %g", KeyMetricOffsetMs, c.Query.MetricOffsetMs)
	}
	if c.Query.PollIntervalMs <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyPollIntervalMs, c.Query.PollIntervalMs)
	}
	if c.Query.FrameCapacity < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyFrameCapacity, c.Query.FrameCapacity)
	}
	if c.TelemetryPeriodMs <= 0 || c.TelemetryPeriodMs > MaxTelemetryPeriodMs {
		return fmt.Errorf("%s must be between 1 and %d, got %d", KeyTelemetryPeriodMs, MaxTelemetryPeriodMs, c.TelemetryPeriodMs)
	}
	if c.Outputs.RelayURL != "" && c.Outputs.NostrSecretKey == "" {
		return fmt.Errorf("%s is required when %s is set", KeyNostrSecretKey, KeyRelayURL)
	}
	return nil
}

package config

import (
	"github.com/xnaught/PresentMon-sub004/pkg/export"
)

type Config struct {
	// Pid is the process to track. Zero selects the calling process.
	Pid               uint32
	Query             QueryConfig
	TelemetryPeriodMs int
	// IntrospectionFile replaces the provider's catalog with one decoded
	// from a file written by DumpIntrospection.
	IntrospectionFile string
	// DumpIntrospection, when set, makes pmquery write the introspection
	// tree to this path instead of polling.
	DumpIntrospection string
	Outputs           OutputConfig
	Watch             bool
	ConfigFile        string
}

type QueryConfig struct {
	WindowMs       float64
	MetricOffsetMs float64
	PollIntervalMs int
	FrameCapacity  int
	GPUDeviceID    uint32
}

type OutputConfig struct {
	MetricsAddr    string
	DgraphAddr     string
	RelayURL       string
	NostrSecretKey string
	NostrKeyPair   *export.KeyPair
}

// Load loads configuration from CLI flags, environment variables and an
// optional YAML file, in that order of precedence.
func Load() (*Config, error) {
	flagSource, showHelp := parseCLIFlags()

	if showHelp {
		printUsage()
		return nil, nil // Return nil to indicate help was shown
	}

	env := &EnvSource{}
	configFile := NewConfigResolver(flagSource, env).ResolveString(KeyConfigFile, "")
	fileSource, err := NewFileSource(configFile)
	if err != nil {
		return nil, err
	}

	return build(NewConfigResolver(flagSource, env, fileSource), fileSource.Used())
}

func build(resolver *ConfigResolver, configFile string) (*Config, error) {
	cfg := &Config{
		Pid: resolver.ResolveUint32(KeyPid, 0),
		Query: QueryConfig{
			WindowMs:       resolver.ResolveFloat(KeyWindowMs, DefaultWindowMs),
			MetricOffsetMs: resolver.ResolveFloat(KeyMetricOffsetMs, DefaultMetricOffsetMs),
			PollIntervalMs: resolver.ResolveInt(KeyPollIntervalMs, DefaultPollIntervalMs),
			FrameCapacity:  resolver.ResolveInt(KeyFrameCapacity, DefaultFrameCapacity),
			GPUDeviceID:    resolver.ResolveUint32(KeyGPUDeviceID, DefaultGPUDeviceID),
		},
		TelemetryPeriodMs: resolver.ResolveInt(KeyTelemetryPeriodMs, DefaultTelemetryPeriodMs),
		IntrospectionFile: resolver.ResolveString(KeyIntrospectionFile, ""),
		DumpIntrospection: resolver.ResolveString(KeyDumpIntrospection, ""),
		Outputs: OutputConfig{
			MetricsAddr:    resolver.ResolveString(KeyMetricsAddr, ""),
			DgraphAddr:     resolver.ResolveString(KeyDgraphAddr, ""),
			RelayURL:       resolver.ResolveString(KeyRelayURL, ""),
			NostrSecretKey: resolver.ResolveString(KeyNostrSecretKey, ""),
		},
		Watch:      resolver.ResolveBool(KeyWatch, false),
		ConfigFile: configFile,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Outputs.NostrSecretKey != "" {
		keyPair, err := export.DeriveKeyPair(cfg.Outputs.NostrSecretKey)
		if err != nil {
			return nil, err
		}
		cfg.Outputs.NostrKeyPair = keyPair
	}

	return cfg, nil
}

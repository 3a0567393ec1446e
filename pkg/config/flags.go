package config

import (
	"flag"
	"fmt"
)

// parseCLIFlags parses command-line flags and returns a FlagSource and help flag
func parseCLIFlags() (*FlagSource, bool) {
	flagSource := NewFlagSource()

	pid := flag.Int(FlagPid, 0, HelpPid)
	windowMs := flag.Float64(FlagWindowMs, 0, HelpWindowMs)
	metricOffsetMs := flag.Float64(FlagMetricOffsetMs, 0, HelpMetricOffsetMs)
	pollIntervalMs := flag.Int(FlagPollIntervalMs, 0, HelpPollIntervalMs)
	frameCapacity := flag.Int(FlagFrameCapacity, 0, HelpFrameCapacity)
	gpuDeviceID := flag.Int(FlagGPUDeviceID, 0, HelpGPUDeviceID)
	telemetryPeriodMs := flag.Int(FlagTelemetryPeriodMs, 0, HelpTelemetryPeriodMs)
	introspectionFile := flag.String(FlagIntrospectionFile, "", HelpIntrospectionFile)
	dumpIntrospection := flag.String(FlagDumpIntrospection, "", HelpDumpIntrospection)
	metricsAddr := flag.String(FlagMetricsAddr, "", HelpMetricsAddr)
	dgraphAddr := flag.String(FlagDgraphAddr, "", HelpDgraphAddr)
	relayURL := flag.String(FlagRelayURL, "", HelpRelayURL)
	nostrSecretKey := flag.String(FlagNostrSecretKey, "", HelpNostrSecretKey)
	watch := flag.Bool(FlagWatch, false, HelpWatch)
	configFile := flag.String(FlagConfigFile, "", HelpConfigFile)
	help := flag.Bool(FlagHelp, false, HelpShowHelp)

	flag.Parse()

	if *help {
		return flagSource, true
	}

	// Store non-zero/non-empty values in flag source
	if *pid != 0 {
		flagSource.Set(KeyPid, *pid)
	}
	if *windowMs != 0 {
		flagSource.Set(KeyWindowMs, *windowMs)
	}
	if *metricOffsetMs != 0 {
		flagSource.Set(KeyMetricOffsetMs, *metricOffsetMs)
	}
	if *pollIntervalMs != 0 {
		flagSource.Set(KeyPollIntervalMs, *pollIntervalMs)
	}
	if *frameCapacity != 0 {
		flagSource.Set(KeyFrameCapacity, *frameCapacity)
	}
	if *gpuDeviceID != 0 {
		flagSource.Set(KeyGPUDeviceID, *gpuDeviceID)
	}
	if *telemetryPeriodMs != 0 {
		flagSource.Set(KeyTelemetryPeriodMs, *telemetryPeriodMs)
	}
	if *introspectionFile != "" {
		flagSource.Set(KeyIntrospectionFile, *introspectionFile)
	}
	if *dumpIntrospection != "" {
		flagSource.Set(KeyDumpIntrospection, *dumpIntrospection)
	}
	if *metricsAddr != "" {
		flagSource.Set(KeyMetricsAddr, *metricsAddr)
	}
	if *dgraphAddr != "" {
		flagSource.Set(KeyDgraphAddr, *dgraphAddr)
	}
	if *relayURL != "" {
		flagSource.Set(KeyRelayURL, *relayURL)
	}
	if *nostrSecretKey != "" {
		flagSource.Set(KeyNostrSecretKey, *nostrSecretKey)
	}
	if *watch {
		flagSource.Set(KeyWatch, true)
	}
	if *configFile != "" {
		flagSource.Set(KeyConfigFile, *configFile)
	}

	return flagSource, false
}

// printUsage prints the usage message
func printUsage() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Printf("%s\n", HelpUsage)
	fmt.Printf("  %s\n", UsageFormat)
	fmt.Println()
	fmt.Printf("%s\n", HelpOptions)
	fmt.Printf("  --%s int                  %s\n", FlagPid, HelpPid)
	fmt.Printf("  --%s float          %s (default: %.0f)\n", FlagWindowMs, HelpWindowMs, DefaultWindowMs)
	fmt.Printf("  --%s float   %s (default: %.0f)\n", FlagMetricOffsetMs, HelpMetricOffsetMs, DefaultMetricOffsetMs)
	fmt.Printf("  --%s int     %s (default: %d)\n", FlagPollIntervalMs, HelpPollIntervalMs, DefaultPollIntervalMs)
	fmt.Printf("  --%s int       %s (default: %d)\n", FlagFrameCapacity, HelpFrameCapacity, DefaultFrameCapacity)
	fmt.Printf("  --%s int        %s (default: %d)\n", FlagGPUDeviceID, HelpGPUDeviceID, DefaultGPUDeviceID)
	fmt.Printf("  --%s int  %s (default: %d)\n", FlagTelemetryPeriodMs, HelpTelemetryPeriodMs, DefaultTelemetryPeriodMs)
	fmt.Printf("  --%s string  %s\n", FlagIntrospectionFile, HelpIntrospectionFile)
	fmt.Printf("  --%s string  %s\n", FlagDumpIntrospection, HelpDumpIntrospection)
	fmt.Printf("  --%s string      %s\n", FlagMetricsAddr, HelpMetricsAddr)
	fmt.Printf("  --%s string       %s\n", FlagDgraphAddr, HelpDgraphAddr)
	fmt.Printf("  --%s string         %s\n", FlagRelayURL, HelpRelayURL)
	fmt.Printf("  --%s string  %s\n", FlagNostrSecretKey, HelpNostrSecretKey)
	fmt.Printf("  --%s                     %s\n", FlagWatch, HelpWatch)
	fmt.Printf("  --%s string           %s\n", FlagConfigFile, HelpConfigFile)
	fmt.Printf("  --%s                      %s\n", FlagHelp, HelpShowHelp)
	fmt.Println()
	fmt.Printf("%s\n", HelpEnvironmentVars)
	fmt.Printf("  %-24s %s\n", KeyPid, EnvDescPid)
	fmt.Printf("  %-24s %s\n", KeyWindowMs, EnvDescWindowMs)
	fmt.Printf("  %-24s %s\n", KeyMetricOffsetMs, EnvDescMetricOffsetMs)
	fmt.Printf("  %-24s %s\n", KeyPollIntervalMs, EnvDescPollIntervalMs)
	fmt.Printf("  %-24s %s\n", KeyFrameCapacity, EnvDescFrameCapacity)
	fmt.Printf("  %-24s %s\n", KeyGPUDeviceID, EnvDescGPUDeviceID)
	fmt.Printf("  %-24s %s\n", KeyTelemetryPeriodMs, EnvDescTelemetryPeriodMs)
	fmt.Printf("  %-24s %s\n", KeyIntrospectionFile, EnvDescIntrospectionFile)
	fmt.Printf("  %-24s %s\n", KeyDumpIntrospection, EnvDescDumpIntrospection)
	fmt.Printf("  %-24s %s\n", KeyMetricsAddr, EnvDescMetricsAddr)
	fmt.Printf("  %-24s %s\n", KeyDgraphAddr, EnvDescDgraphAddr)
	fmt.Printf("  %-24s %s\n", KeyRelayURL, EnvDescRelayURL)
	fmt.Printf("  %-24s %s\n", KeyNostrSecretKey, EnvDescNostrSecretKey)
	fmt.Printf("  %-24s %s\n", KeyWatch, EnvDescWatch)
	fmt.Printf("  %-24s %s\n", KeyConfigFile, EnvDescConfigFile)
	fmt.Println()
	fmt.Printf("%s\n", HelpNote)
}

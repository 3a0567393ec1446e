package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ConfigSource represents a source of configuration values
type ConfigSource interface {
	GetString(key string) (string, bool)
	GetInt(key string) (int, bool)
	GetFloat(key string) (float64, bool)
	GetBool(key string) (bool, bool)
}

// EnvSource implements ConfigSource for environment variables
type EnvSource struct{}

func (e *EnvSource) GetString(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

func (e *EnvSource) GetInt(key string) (int, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i, true
	}
	return 0, false
}

func (e *EnvSource) GetFloat(key string) (float64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f, true
	}
	return 0, false
}

func (e *EnvSource) GetBool(key string) (bool, bool) {
	value := os.Getenv(key)
	if value == "" {
		return false, false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b, true
	}
	return false, false
}

// FlagSource implements ConfigSource for command-line flags
type FlagSource struct {
	values map[string]interface{}
}

func NewFlagSource() *FlagSource {
	return &FlagSource{values: make(map[string]interface{})}
}

func (f *FlagSource) Set(key string, value interface{}) {
	f.values[key] = value
}

func (f *FlagSource) GetString(key string) (string, bool) {
	if value, exists := f.values[key]; exists {
		if str, ok := value.(string); ok && str != "" {
			return str, true
		}
	}
	return "", false
}

func (f *FlagSource) GetInt(key string) (int, bool) {
	if value, exists := f.values[key]; exists {
		if i, ok := value.(int); ok {
			return i, true
		}
	}
	return 0, false
}

func (f *FlagSource) GetFloat(key string) (float64, bool) {
	if value, exists := f.values[key]; exists {
		if fl, ok := value.(float64); ok {
			return fl, true
		}
	}
	return 0, false
}

func (f *FlagSource) GetBool(key string) (bool, bool) {
	if value, exists := f.values[key]; exists {
		if b, ok := value.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// FileSource implements ConfigSource for a YAML config file. Keys are looked
// up by their file name, e.g. PM_WINDOW_MS is read from window_ms.
type FileSource struct {
	v *viper.Viper
}

// NewFileSource reads path, or searches the default locations for
// pmquery.yaml when path is empty. A missing file in the default locations
// is not an error; a missing explicit path is.
func NewFileSource(path string) (*FileSource, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".pmquery"))
		}
		v.AddConfigPath("/etc/pmquery/")
	}

	v.SetDefault(fileKey(KeyWindowMs), DefaultWindowMs)
	v.SetDefault(fileKey(KeyMetricOffsetMs), DefaultMetricOffsetMs)
	v.SetDefault(fileKey(KeyPollIntervalMs), DefaultPollIntervalMs)
	v.SetDefault(fileKey(KeyFrameCapacity), DefaultFrameCapacity)
	v.SetDefault(fileKey(KeyGPUDeviceID), DefaultGPUDeviceID)
	v.SetDefault(fileKey(KeyTelemetryPeriodMs), DefaultTelemetryPeriodMs)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return &FileSource{v: v}, nil
}

// Used returns the path of the file that was read, or "" if none was found.
func (f *FileSource) Used() string {
	return f.v.ConfigFileUsed()
}

func (f *FileSource) GetString(key string) (string, bool) {
	if !f.v.IsSet(fileKey(key)) {
		return "", false
	}
	str, err := cast.ToStringE(f.v.Get(fileKey(key)))
	return str, err == nil && str != ""
}

func (f *FileSource) GetInt(key string) (int, bool) {
	if !f.v.IsSet(fileKey(key)) {
		return 0, false
	}
	i, err := cast.ToIntE(f.v.Get(fileKey(key)))
	return i, err == nil
}

func (f *FileSource) GetFloat(key string) (float64, bool) {
	if !f.v.IsSet(fileKey(key)) {
		return 0, false
	}
	fl, err := cast.ToFloat64E(f.v.Get(fileKey(key)))
	return fl, err == nil
}

func (f *FileSource) GetBool(key string) (bool, bool) {
	if !f.v.IsSet(fileKey(key)) {
		return false, false
	}
	b, err := cast.ToBoolE(f.v.Get(fileKey(key)))
	return b, err == nil
}

func fileKey(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, "PM_"))
}

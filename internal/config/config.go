// Package config loads coretools configuration.
//
// Precedence (lowest to highest):
//  1. Built-in defaults (Direct3D 11 markers, DirectX SDK vendor layout)
//  2. YAML file given by --config or $CORETOOLS_CONFIG
//  3. CORETOOLS_* environment variables
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	cerrors "github.com/Aman-CERP/coretools/internal/errors"
)

// Environment variables consumed by Load.
const (
	EnvConfigPath   = "CORETOOLS_CONFIG"
	EnvLogLevel     = "CORETOOLS_LOG_LEVEL"
	EnvVendorPrefix = "CORETOOLS_VENDOR_PREFIX"
	EnvModulePath   = "CORETOOLS_MODULE"
)

// Config represents the complete coretools configuration.
type Config struct {
	SDK      SDKConfig    `yaml:"sdk" json:"sdk"`
	Native   NativeConfig `yaml:"native" json:"native"`
	LogLevel string       `yaml:"log_level" json:"log_level"`
}

// SDKConfig configures SDK probing.
type SDKConfig struct {
	// MarkerHeader must exist in an include directory for it to count.
	MarkerHeader string `yaml:"marker_header" json:"marker_header"`
	// MarkerLibrary must exist in a library directory for it to count.
	MarkerLibrary string `yaml:"marker_library" json:"marker_library"`
	// LibraryExt is appended to required library names.
	LibraryExt string `yaml:"library_ext" json:"library_ext"`
	// VendorPrefix selects vendor SDK directories under Program Files.
	VendorPrefix string `yaml:"vendor_prefix" json:"vendor_prefix"`

	ProgramFilesEnv    string `yaml:"program_files_env" json:"program_files_env"`
	ProgramFilesX86Env string `yaml:"program_files_x86_env" json:"program_files_x86_env"`
	VendorRootEnv      string `yaml:"vendor_root_env" json:"vendor_root_env"`
}

// NativeConfig configures the native core module.
type NativeConfig struct {
	// ModulePath overrides the conventional module location. Empty means default.
	ModulePath string `yaml:"module_path" json:"module_path"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		SDK: SDKConfig{
			MarkerHeader:       "d3d11.h",
			MarkerLibrary:      "d3d11.lib",
			LibraryExt:         ".lib",
			VendorPrefix:       "Microsoft DirectX SDK",
			ProgramFilesEnv:    "ProgramFiles",
			ProgramFilesX86Env: "ProgramFiles(x86)",
			VendorRootEnv:      "DXSDK_DIR",
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides. An empty path falls back to $CORETOOLS_CONFIG;
// if both are empty only defaults and env apply. getenv may be nil.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := NewConfig()

	if path == "" {
		path = getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, cerrors.New(cerrors.ErrCodeConfigInvalid, "invalid configuration: "+err.Error(), err)
	}

	return cfg, nil
}

// loadYAML reads path and merges its non-empty values over c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cerrors.New(cerrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to read config %s", path), err).
			WithDetail("path", path)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cerrors.New(cerrors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse config %s", path), err).
			WithDetail("path", path)
	}

	c.mergeWith(&fileCfg)
	return nil
}

// mergeWith copies the non-empty fields of other into c.
func (c *Config) mergeWith(other *Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&c.SDK.MarkerHeader, other.SDK.MarkerHeader)
	setIf(&c.SDK.MarkerLibrary, other.SDK.MarkerLibrary)
	setIf(&c.SDK.LibraryExt, other.SDK.LibraryExt)
	setIf(&c.SDK.VendorPrefix, other.SDK.VendorPrefix)
	setIf(&c.SDK.ProgramFilesEnv, other.SDK.ProgramFilesEnv)
	setIf(&c.SDK.ProgramFilesX86Env, other.SDK.ProgramFilesX86Env)
	setIf(&c.SDK.VendorRootEnv, other.SDK.VendorRootEnv)
	setIf(&c.Native.ModulePath, other.Native.ModulePath)
	setIf(&c.LogLevel, other.LogLevel)
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvVendorPrefix); v != "" {
		c.SDK.VendorPrefix = v
	}
	if v := getenv(EnvModulePath); v != "" {
		c.Native.ModulePath = v
	}
}

// Validate checks the configuration for values the locator cannot use.
func (c *Config) Validate() error {
	if c.SDK.MarkerHeader == "" {
		return fmt.Errorf("sdk.marker_header must not be empty")
	}
	if c.SDK.MarkerLibrary == "" {
		return fmt.Errorf("sdk.marker_library must not be empty")
	}
	for name, v := range map[string]string{
		"sdk.marker_header":  c.SDK.MarkerHeader,
		"sdk.marker_library": c.SDK.MarkerLibrary,
	} {
		if strings.ContainsAny(v, `/\`) {
			return fmt.Errorf("%s must be a file name, got %s", name, v)
		}
	}

	if c.SDK.LibraryExt != "" && !strings.HasPrefix(c.SDK.LibraryExt, ".") {
		return fmt.Errorf("sdk.library_ext must start with '.', got %s", c.SDK.LibraryExt)
	}

	if c.SDK.VendorPrefix == "" {
		return fmt.Errorf("sdk.vendor_prefix must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	return nil
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

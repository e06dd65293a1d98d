// Package config loads sandshell's startup configuration. The sandbox core
// itself reads nothing from disk at call time; this only feeds the
// sandbox.Options knob set once, when the process starts.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sandshell/sandshell/internal/sandbox"
)

// SandboxConfig is the file form of the sandbox execution knobs.
type SandboxConfig struct {
	TimeoutSeconds   int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	DropCapabilities bool     `mapstructure:"drop_capabilities" yaml:"drop_capabilities"`
	ForwardEnv       []string `mapstructure:"forward_env" yaml:"forward_env"`
	BwrapPath        string   `mapstructure:"bwrap_path" yaml:"bwrap_path,omitempty"`
}

type Config struct {
	Sandbox SandboxConfig `mapstructure:"sandbox" yaml:"sandbox"`
}

// Load reads sandshell.yaml from the working directory or ~/.sandshell.
// A missing file is not an error: the tool must run on defaults alone.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("sandshell")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.sandshell")

	v.SetDefault("sandbox.timeout_seconds", int(sandbox.DefaultTimeout.Seconds()))
	v.SetDefault("sandbox.drop_capabilities", true)
	v.SetDefault("sandbox.forward_env", sandbox.DefaultForwardEnv())
	v.SetDefault("sandbox.bwrap_path", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Options converts the file form into executor options.
func (c *Config) Options() sandbox.Options {
	return sandbox.Options{
		Timeout:          time.Duration(c.Sandbox.TimeoutSeconds) * time.Second,
		DropCapabilities: c.Sandbox.DropCapabilities,
		ForwardEnv:       c.Sandbox.ForwardEnv,
		BwrapPath:        c.Sandbox.BwrapPath,
	}
}

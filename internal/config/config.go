// Package config resolves smartfill settings. Source priority (highest to
// lowest):
//  1. Environment variables (S3_BUCKET, STEP_FUNCTION_ARN, AWS_REGION,
//     SMARTFILL_POLL_INTERVAL, SMARTFILL_PARAM_PREFIX)
//  2. SSM Parameter Store under the configured prefix (bucket and state
//     machine ARN only)
//  3. Config file (~/.config/smartfill/config.yaml)
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"smartfill/internal/integrations/paramstore"
	"smartfill/internal/poller"
)

// Config holds everything the CLI needs to reach the deployed pipeline.
type Config struct {
	Bucket          string
	StateMachineARN string
	Region          string
	ParamPrefix     string
	PollInterval    time.Duration
}

// fileConfig is the YAML shape of the config file.
type fileConfig struct {
	Bucket          string `yaml:"bucket"`
	StateMachineARN string `yaml:"state_machine_arn"`
	Region          string `yaml:"region"`
	ParamPrefix     string `yaml:"param_prefix"`
	PollInterval    string `yaml:"poll_interval"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "smartfill", "config.yaml"), nil
}

// Load resolves the configuration from file and environment. A missing config
// file is fine; a present but unreadable one is an error.
func Load(path string) (Config, error) {
	cfg := Config{PollInterval: poller.DefaultInterval}

	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		applyString(&cfg.Bucket, fc.Bucket)
		applyString(&cfg.StateMachineARN, fc.StateMachineARN)
		applyString(&cfg.Region, fc.Region)
		applyString(&cfg.ParamPrefix, fc.ParamPrefix)
		if fc.PollInterval != "" {
			d, err := time.ParseDuration(fc.PollInterval)
			if err != nil {
				return Config{}, fmt.Errorf("config: parse poll_interval: %w", err)
			}
			cfg.PollInterval = d
		}
	}

	applyString(&cfg.Bucket, os.Getenv("S3_BUCKET"))
	applyString(&cfg.StateMachineARN, os.Getenv("STEP_FUNCTION_ARN"))
	applyString(&cfg.Region, os.Getenv("AWS_REGION"))
	applyString(&cfg.ParamPrefix, os.Getenv("SMARTFILL_PARAM_PREFIX"))
	if v := strings.TrimSpace(os.Getenv("SMARTFILL_POLL_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse SMARTFILL_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}

// ResolveFromParamStore fills the bucket and state machine ARN from SSM when
// a parameter prefix is configured and the values are still missing.
func (c *Config) ResolveFromParamStore(ctx context.Context, ps paramstore.Getter) error {
	prefix := strings.TrimRight(strings.TrimSpace(c.ParamPrefix), "/")
	if prefix == "" || ps == nil {
		return nil
	}
	if c.Bucket == "" {
		v, err := ps.GetParameter(ctx, prefix+"/bucket")
		if err != nil {
			return fmt.Errorf("config: resolve bucket: %w", err)
		}
		c.Bucket = v
	}
	if c.StateMachineARN == "" {
		v, err := ps.GetParameter(ctx, prefix+"/state-machine-arn")
		if err != nil {
			return fmt.Errorf("config: resolve state machine ARN: %w", err)
		}
		c.StateMachineARN = v
	}
	return nil
}

// Validate checks that the settings a submission needs are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("config: bucket is required (S3_BUCKET)")
	}
	if strings.TrimSpace(c.StateMachineARN) == "" {
		return errors.New("config: state machine ARN is required (STEP_FUNCTION_ARN)")
	}
	if c.PollInterval <= 0 {
		return errors.New("config: poll interval must be positive")
	}
	return nil
}

func readFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return fc, nil
}

// applyString overwrites dst when src is non-blank, giving later sources
// precedence over earlier ones.
func applyString(dst *string, src string) {
	if v := strings.TrimSpace(src); v != "" {
		*dst = v
	}
}

// Copyright (c) 2024, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package config holds the configuration of the wifi-per tool, loadable from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-wifi-per/errmodel"
	"github.com/openthread/ot-wifi-per/logger"
	"github.com/openthread/ot-wifi-per/percache"
	. "github.com/openthread/ot-wifi-per/types"
)

const (
	DefaultModelName       = "yans"
	DefaultChannelWidth    = 20
	DefaultSnrResolutionDb = 0.0 // no SNR rounding in the cache
)

// CacheConfig configures the result cache in front of the error rate model.
type CacheConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Size            int     `yaml:"size"`
	SnrResolutionDb DbValue `yaml:"snr-resolution"`
}

type Config struct {
	Model         string                    `yaml:"model"`
	ModelParams   errmodel.ErrorModelParams `yaml:"params"`
	ChannelWidth  MHz                       `yaml:"channel-width"` // default width of CLI queries
	Cache         CacheConfig               `yaml:"cache"`
	Seed          int64                     `yaml:"seed"` // 0: time-based
	LogLevel      string                    `yaml:"log-level"`
	LogFile       string                    `yaml:"log-file"`
	MetricsListen string                    `yaml:"metrics-listen"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:        DefaultModelName,
		ModelParams:  *errmodel.NewErrorModelParams(),
		ChannelWidth: DefaultChannelWidth,
		Cache: CacheConfig{
			Enabled:         true,
			Size:            percache.DefaultSize,
			SnrResolutionDb: DefaultSnrResolutionDb,
		},
		Seed:     0,
		LogLevel: logger.GetLevelString(logger.DefaultLevel),
	}
}

// LoadConfigFile reads a YAML configuration file. Keys missing from the file keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file")
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration on top of the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() error {
	if err := cfg.ModelParams.Validate(); err != nil {
		return errors.Wrapf(err, "params")
	}
	if _, err := errmodel.Create(cfg.Model, &cfg.ModelParams); err != nil {
		return err
	}
	if cfg.ChannelWidth == 0 {
		return errors.Errorf("channel-width must be > 0")
	}
	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errors.Errorf("cache size must be > 0")
	}
	if cfg.Cache.SnrResolutionDb < 0 {
		return errors.Errorf("cache snr-resolution must be >= 0")
	}
	if _, err := logger.ParseLevelString(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// Dump returns the configuration as YAML.
func (cfg *Config) Dump() (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrapf(err, "marshal config")
	}
	return string(data), nil
}

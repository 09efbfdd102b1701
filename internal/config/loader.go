// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix: data.health → LATENTFA_DATA_HEALTH.
const envPrefix = "LATENTFA"

// keys lists every setting so environment variables resolve without a file.
var keys = []string{
	"data.health", "data.behavioral", "data.health_columns", "data.survey_pattern", "data.composite",
	"model.max_k", "model.criterion", "model.tolerance", "model.max_iter", "model.noise_floor", "model.workers",
	"report.top_n", "report.format", "report.plot",
	"log.level", "log.format", "log.output_paths",
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"health":      "data.health",
	"behavioral":  "data.behavioral",
	"max-k":       "model.max_k",
	"criterion":   "model.criterion",
	"tolerance":   "model.tolerance",
	"max-iter":    "model.max_iter",
	"noise-floor": "model.noise_floor",
	"workers":     "model.workers",
	"top-n":       "report.top_n",
	"format":      "report.format",
	"plot":        "report.plot",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", k, err)
		}
	}
	return v, nil
}

// Load reads the YAML file at path (skipped when empty), merges LATENTFA_*
// environment variables and the changed flags of fs (may be nil), applies
// defaults and validates.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}
	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}
	return unmarshalAndFinalize(v)
}

// bindFlags attaches the flags of fs that the user actually set; unset flags
// must not shadow file or environment values with their zero defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		key, ok := FlagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("config: bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

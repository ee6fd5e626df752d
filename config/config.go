package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: EVS_EXTRACT__THRESHOLD=0.2.
const EnvPrefix = "EVS_"

type Config struct {
	Logging    LoggingConfig  `json:"logging"`
	Extract    ExtractConfig  `json:"extract"`
	Monitor    MonitorConfig  `json:"monitor"`
	SumoConfig SumoConfig     `json:"sumo_config"`
	Chargers   ChargersConfig `json:"chargers"`
	Convert    ConvertConfig  `json:"convert"`
	Metrics    metrics.Config `json:"metrics"`
	MQTT       mqtt.Config    `json:"mqtt"`
}

// Load reads the optional file at path, applies environment overrides and
// defaults, then validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.Extract.SetDefaults()
	c.Monitor.SetDefaults()
	c.SumoConfig.SetDefaults()
	c.Chargers.SetDefaults()
	c.Convert.SetDefaults()
	if c.MQTT.Enabled() {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section and reports all problems at once, in
// section order.
func (c Config) Validate() error {
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"logging", c.Logging},
		{"extract", c.Extract},
		{"monitor", c.Monitor},
		{"chargers", c.Chargers},
		{"mqtt", c.MQTT},
	}
	var errs []error
	for _, s := range sections {
		if err := s.v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

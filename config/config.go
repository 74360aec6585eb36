// Package config - Engine and CLI configuration loaded from YAML or JSON.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-scene/depth"
	"github.com/nvr-ai/go-scene/describe"
	"github.com/nvr-ai/go-scene/scene"
)

// Config holds the settings for one engine instance.
type Config struct {
	// Locale selects the output language and label table ("pt-BR" or "en").
	Locale string `json:"locale" yaml:"locale"`

	// Policy is what to do with detections whose distance or zone cannot be
	// computed: "skip" or "fail".
	Policy string `json:"policy" yaml:"policy"`

	// DepthScale converts depth-image gray levels to meters.
	DepthScale float64 `json:"depth_scale" yaml:"depth_scale"`

	// IrregularPlurals extends the locale's plural table, singular -> plural.
	IrregularPlurals map[string]string `json:"irregular_plurals" yaml:"irregular_plurals"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Locale:     "pt-BR",
		Policy:     string(scene.PolicySkip),
		DepthScale: depth.DefaultScale,
	}
}

// Load reads a configuration file on top of Default. Files ending in .json
// are decoded as JSON, anything else as YAML.
//
// Arguments:
//   - path: Path to the configuration file.
//
// Returns:
//   - Config: The merged, validated configuration.
//   - error: If the file cannot be read, parsed or validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := describe.LocaleByName(c.Locale); err != nil {
		return errors.Wrap(err, "locale")
	}
	if _, err := scene.ParsePolicy(c.Policy); err != nil {
		return errors.Wrap(err, "policy")
	}
	if c.DepthScale <= 0 {
		return errors.Errorf("depth_scale must be positive, got %f", c.DepthScale)
	}
	for singular, plural := range c.IrregularPlurals {
		if singular == "" || plural == "" {
			return errors.Errorf("irregular_plurals: empty entry %q -> %q", singular, plural)
		}
	}
	return nil
}

// Options converts the configuration into engine options.
func (c Config) Options() (scene.Options, error) {
	if err := c.Validate(); err != nil {
		return scene.Options{}, err
	}
	locale, _ := describe.LocaleByName(c.Locale)
	if len(c.IrregularPlurals) > 0 {
		locale.Inflector = locale.Inflector.WithIrregulars(c.IrregularPlurals)
	}
	policy, _ := scene.ParsePolicy(c.Policy)
	return scene.Options{Locale: locale, Policy: policy}, nil
}

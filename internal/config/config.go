// Package config loads manifest CLI configuration from a YAML file and
// MANIFEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/tsawler/manifest"
	"github.com/tsawler/manifest/classify"
	"github.com/tsawler/manifest/csvdoc"
	"github.com/tsawler/manifest/fields"
	"github.com/tsawler/manifest/internal/logging"
	"github.com/tsawler/manifest/normalize"
	"github.com/tsawler/manifest/tables"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "MANIFEST_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Config is the complete CLI configuration.
type Config struct {
	Classifier ClassifierConfig `koanf:"classifier"`
	Table      TableConfig      `koanf:"table"`
	Fields     FieldsConfig     `koanf:"fields"`
	Input      InputConfig      `koanf:"input"`
	Log        LogConfig        `koanf:"log"`
	Batch      BatchConfig      `koanf:"batch"`
}

// ClassifierConfig controls row classification.
type ClassifierConfig struct {
	Threshold float64 `koanf:"threshold"`
}

// TableConfig controls table reconstruction.
type TableConfig struct {
	PackageKeywords []string `koanf:"package_keywords"`
	CurrencyMarkers []string `koanf:"currency_markers"`
}

// FieldsConfig selects and tunes the field extractors. Enabled wins over
// Preset when both are set.
type FieldsConfig struct {
	Enabled          []string `koanf:"enabled"`
	Preset           string   `koanf:"preset"`
	ConsignerKeyword string   `koanf:"consigner_keyword"`
	EORIPrefix       string   `koanf:"eori_prefix"`
}

// InputConfig controls document loading.
type InputConfig struct {
	Encoding   string `koanf:"encoding"`
	SkipHeader bool   `koanf:"skip_header"`
	Sheet      int    `koanf:"sheet"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BatchConfig controls multi-file runs.
type BatchConfig struct {
	Concurrency int `koanf:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	fc := fields.DefaultConfig()
	return &Config{
		Classifier: ClassifierConfig{Threshold: classify.DefaultThreshold},
		Fields: FieldsConfig{
			Preset:           fields.PresetFull,
			ConsignerKeyword: fc.ConsignerKeyword,
			EORIPrefix:       fc.EORIPrefix,
		},
		Input: InputConfig{Encoding: "utf-8"},
		Log:   LogConfig{Level: "info", Format: logging.FormatConsole},
		Batch: BatchConfig{Concurrency: 4},
	}
}

// Load reads configuration from the YAML file at path, then overrides it with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (MANIFEST_CLASSIFIER_THRESHOLD, etc.)
//  2. YAML config file
//  3. Hardcoded defaults
//
// An empty path skips the file. Environment variables map to keys by
// dropping the prefix and splitting on the first underscore:
//
//	MANIFEST_CLASSIFIER_THRESHOLD   -> classifier.threshold
//	MANIFEST_TABLE_PACKAGE_KEYWORDS -> table.package_keywords (comma separated)
//	MANIFEST_INPUT_SKIP_HEADER      -> input.skip_header
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Scalars keep their defaults unless a source sets them.
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// listKeys are the keys whose environment values are comma separated lists.
var listKeys = map[string]bool{
	"table.package_keywords": true,
	"table.currency_markers": true,
	"fields.enabled":         true,
}

// envValue maps an environment variable to its key, splitting list values
// on commas. Blank list items are dropped.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// envKey maps MANIFEST_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, found := strings.Cut(lower, "_")
	if !found {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// applyDefaults fills list settings left empty. Lists are not pre-populated
// before unmarshaling so a shorter configured list replaces the default.
func applyDefaults(cfg *Config) {
	if len(cfg.Table.PackageKeywords) == 0 {
		cfg.Table.PackageKeywords = append([]string(nil), tables.DefaultPackageKeywords...)
	}
	if len(cfg.Table.CurrencyMarkers) == 0 {
		cfg.Table.CurrencyMarkers = append([]string(nil), normalize.DefaultMarkers...)
	}
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error

	if err := (classify.Config{Threshold: c.Classifier.Threshold}).Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Fields.Enabled) > 0 {
		if _, err := fields.New(fields.DefaultConfig(), c.Fields.Enabled...); err != nil {
			errs = append(errs, fmt.Errorf("fields.enabled: %w", err))
		}
	} else if _, err := fields.Preset(c.Fields.Preset); err != nil {
		errs = append(errs, fmt.Errorf("fields.preset: %w", err))
	}
	if c.Fields.ConsignerKeyword == "" {
		errs = append(errs, errors.New("fields.consigner_keyword: must not be empty"))
	}
	if c.Fields.EORIPrefix == "" {
		errs = append(errs, errors.New("fields.eori_prefix: must not be empty"))
	}
	if _, err := csvdoc.LookupEncoding(c.Input.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("input.encoding: %w", err))
	}
	if c.Input.Sheet < 0 {
		errs = append(errs, fmt.Errorf("input.sheet: %d is negative", c.Input.Sheet))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("log.format: %q is not %s or %s", c.Log.Format, logging.FormatJSON, logging.FormatConsole))
	}
	if c.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency: %d is negative", c.Batch.Concurrency))
	}

	return errors.Join(errs...)
}

// Apply configures e with every extraction setting of c.
func (c *Config) Apply(e *manifest.Extractor) *manifest.Extractor {
	e = e.Threshold(c.Classifier.Threshold).
		PackageKeywords(c.Table.PackageKeywords...).
		CurrencyMarkers(c.Table.CurrencyMarkers...).
		ConsignerKeyword(c.Fields.ConsignerKeyword).
		EORIPrefix(c.Fields.EORIPrefix).
		Encoding(c.Input.Encoding).
		Sheet(c.Input.Sheet)

	if len(c.Fields.Enabled) > 0 {
		e = e.Fields(c.Fields.Enabled...)
	} else {
		e = e.Preset(c.Fields.Preset)
	}
	if c.Input.SkipHeader {
		e = e.SkipHeader()
	}
	return e
}

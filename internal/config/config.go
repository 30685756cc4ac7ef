package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/nestrep/internal/models"
)

// Key case names accepted by naming.key_case
const (
	KeyCaseNone       = "none"
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for nestrep
type Config struct {
	RootType string        `yaml:"root_type" toml:"root_type"`
	Naming   NamingConfig  `yaml:"naming" toml:"naming"`
	Scalars  ScalarsConfig `yaml:"scalars" toml:"scalars"`
	Format   FormatConfig  `yaml:"format" toml:"format"`
	Log      LogConfig     `yaml:"log" toml:"log"`
}

// NamingConfig controls how JSON object keys become dictionary keys
type NamingConfig struct {
	KeyCase     string            `yaml:"key_case" toml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings" toml:"key_mappings"`
}

// ScalarsConfig controls scalar conversion when exporting to JSON
type ScalarsConfig struct {
	InferTypes     bool `yaml:"infer_types" toml:"infer_types"`
	HardNullAsNull bool `yaml:"hard_null_as_null" toml:"hard_null_as_null"`
}

// FormatConfig controls the inspect output
type FormatConfig struct {
	Indent string `yaml:"indent" toml:"indent"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		RootType: models.TypeList.String(),
		Naming: NamingConfig{
			KeyCase:     KeyCaseNone,
			KeyMappings: make(map[string]string),
		},
		Scalars: ScalarsConfig{
			InferTypes:     true,
			HardNullAsNull: true,
		},
		Format: FormatConfig{
			Indent: "  ",
		},
		Log: LogConfig{
			Level:       "warn",
			Development: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file, or TOML when the file
// name ends in .toml
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".nestrep.yml", ".nestrep.yaml", "nestrep.yml", "nestrep.yaml", "nestrep.toml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if _, ok := models.ParseCollectionType(c.RootType); !ok {
		return fmt.Errorf("root_type %q is not a collection type", c.RootType)
	}
	switch c.Naming.KeyCase {
	case "", KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return fmt.Errorf("naming.key_case %q must be one of none, snake, camel, lower_camel, kebab", c.Naming.KeyCase)
	}
	return nil
}

// RootCollectionType returns the configured type for array roots
func (c *Config) RootCollectionType() models.CollectionType {
	t, ok := models.ParseCollectionType(c.RootType)
	if !ok {
		return models.TypeList
	}
	return t
}

// KeyFor returns the dictionary key for a JSON object key, applying
// mappings first and then the configured case
func (c *Config) KeyFor(jsonKey string) string {
	if mapped, exists := c.Naming.KeyMappings[jsonKey]; exists {
		return mapped
	}

	switch c.Naming.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(jsonKey)
	case KeyCaseCamel:
		return strcase.ToCamel(jsonKey)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(jsonKey)
	case KeyCaseKebab:
		return strcase.ToKebab(jsonKey)
	default:
		return jsonKey
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty CLI
// values leave the file or default value in place.
func LoadConfigWithCLI(configPath, cliRootType, cliKeyCase string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliRootType != "" {
		cfg.RootType = cliRootType
	}
	if cliKeyCase != "" {
		cfg.Naming.KeyCase = cliKeyCase
	}
	if cliDebug {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

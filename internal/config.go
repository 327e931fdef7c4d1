package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// View styles for listing expenses
const (
	ViewPlain = "plain"
	ViewTable = "table"
	ViewJSON  = "json"
)

var viewStyles = []string{ViewPlain, ViewTable, ViewJSON}

type Config struct {
	// DataFile is the expense file path. A leading ~/ expands to the home directory.
	DataFile string `yaml:"data_file,omitempty"`

	// View selects how expense lists are printed: plain, table or json
	View string `yaml:"view,omitempty"`

	// Currency is an ISO code used to decorate amounts in the table view.
	// "auto" derives it from the system locale.
	Currency string `yaml:"currency,omitempty"`
}

// DefaultConfigPath returns the default config file path (~/.expense-tracker/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".expense-tracker", "config.yaml")
}

// NewDefaultConfig returns the config used when no config file exists
func NewDefaultConfig() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		View:     ViewPlain,
	}
}

// LoadConfig reads a YAML config. Unset fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if cfg.View == "" {
		cfg.View = ViewPlain
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads path if it exists and falls back to defaults otherwise
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return NewDefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewDefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Validate checks field values that the YAML decoder cannot
func (c *Config) Validate() error {
	var problems []string

	view := strings.ToLower(c.View)
	valid := false
	for _, v := range viewStyles {
		if view == v {
			valid = true
			break
		}
	}
	if !valid {
		problems = append(problems, fmt.Sprintf("invalid view '%s': must be one of %v", c.View, viewStyles))
	}
	c.View = view

	if strings.TrimSpace(c.DataFile) == "" {
		problems = append(problems, "data file path cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// DataPath returns DataFile with a leading ~/ expanded
func (c *Config) DataPath() string {
	return expandHome(c.DataFile)
}

// ResolveCurrency returns the display currency for the table view
func (c *Config) ResolveCurrency() Currency {
	if strings.EqualFold(c.Currency, "auto") {
		return DetectSystemCurrency()
	}
	return GetCurrency(c.Currency)
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Package config loads and saves servocombo settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "servocombo.json"

// Defaults for a fresh configuration.
const (
	DefaultPort        = "/dev/ttyUSB0"
	DefaultBaud        = 9600
	DefaultComboFile   = "action.txt"
	DefaultCommandFile = "servo_commands.txt"
	DefaultAckTimeout  = Duration(time.Second)
)

// ErrNotFound is returned when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// Config holds the servocombo configuration
type Config struct {
	Port        string   `json:"port" yaml:"port"`
	Baud        int      `json:"baud" yaml:"baud"`
	ComboFile   string   `json:"combo_file" yaml:"combo_file"`
	CommandFile string   `json:"command_file" yaml:"command_file"`
	AckTimeout  Duration `json:"ack_timeout,omitempty" yaml:"ack_timeout,omitempty"`
	Strict      bool     `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		Baud:        DefaultBaud,
		ComboFile:   DefaultComboFile,
		CommandFile: DefaultCommandFile,
		AckTimeout:  DefaultAckTimeout,
	}
}

// applyDefaults fills zero fields
func (c *Config) applyDefaults() {
	d := Default()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.Baud <= 0 {
		c.Baud = d.Baud
	}
	if c.ComboFile == "" {
		c.ComboFile = d.ComboFile
	}
	if c.CommandFile == "" {
		c.CommandFile = d.CommandFile
	}
	if c.AckTimeout <= 0 {
		c.AckTimeout = d.AckTimeout
	}
}

// LoadConfigFrom loads configuration from a specific file. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfigFrom(path)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the given config file exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

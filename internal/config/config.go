// Package config holds the YAML configuration model for the clsctl tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Line is one piece of text placed on the display.
type Line struct {
	// Row is the display row (0-2).
	Row int `yaml:"row"`
	// Col is the starting column (0-39).
	Col int `yaml:"col"`
	// Text is the content; it is truncated at the 40-character line end.
	Text string `yaml:"text"`
}

// Char is one user-defined character.
type Char struct {
	// Slot is the character slot in the working table (0-7).
	Slot int `yaml:"slot"`
	// Rows holds the eight 5-bit pixel rows, top first.
	Rows []int `yaml:"rows,flow"`
}

// Config is the top-level clsctl configuration.
type Config struct {
	// Port is the SPI port name (e.g. "SPI0.0"). Empty selects the first
	// available port.
	Port string `yaml:"port"`

	// ClockHz is the SPI clock in Hz. The PmodCLS accepts at most 625000.
	ClockHz int64 `yaml:"clock_hz"`

	// Backlight turns the backlight on together with the display.
	Backlight bool `yaml:"backlight"`

	// Wrap16 selects the 16-character wrap mode instead of 40.
	Wrap16 bool `yaml:"wrap_16"`

	// Lines is the text to show.
	Lines []Line `yaml:"lines"`

	// Chars are user-defined characters programmed before the lines are
	// written.
	Chars []Char `yaml:"chars"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:      "",
		ClockHz:   625000,
		Backlight: true,
		Wrap16:    true,
		Lines: []Line{
			{Row: 0, Col: 0, Text: "PmodCLS ready"},
		},
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.ClockHz <= 0 {
		c.ClockHz = 625000
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	if c.Chars == nil {
		c.Chars = []Char{}
	}
}

// Validate reports the first structural problem. Operand ranges proper are
// the driver's job; this only catches what YAML cannot express.
func (c *Config) Validate() error {
	for i, ch := range c.Chars {
		if len(ch.Rows) != 8 {
			return fmt.Errorf("config: char %d has %d rows, want 8", i, len(ch.Rows))
		}
		for j, r := range ch.Rows {
			if r < 0 || r > 0xFF {
				return fmt.Errorf("config: char %d row %d out of byte range", i, j)
			}
		}
	}
	return nil
}

// Load loads configuration from the given YAML path. A missing file is not
// an error: the defaults are returned so first runs work without setup.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

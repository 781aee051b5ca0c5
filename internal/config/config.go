// Package config loads optional driver defaults from a YAML file, the same
// "plain struct + Defaults method" shape the teacher uses for its window
// settings.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for any driver flag the user didn't set explicitly.
type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	BlockSize  int     `yaml:"block_size"`
	GainDB     float64 `yaml:"gain_db"`
	BPM        int64   `yaml:"bpm"`
	Play       bool    `yaml:"play"`
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.BlockSize <= 0 {
		c.BlockSize = 441 // 10ms at 44100Hz
	}
}

// Load reads a YAML config file and fills in defaults for anything it
// doesn't set.
func Load(path string) (*Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.Defaults()
	return &c, nil
}

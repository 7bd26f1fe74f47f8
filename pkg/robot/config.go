package robot

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "goliath.json"

// Config holds the robot configuration
type Config struct {
	Arm      ArmConfig      `json:"arm"`
	Playback PlaybackConfig `json:"playback"`
}

// ArmConfig holds configuration for the arm connection
type ArmConfig struct {
	Port        string      `json:"port"`
	Calibration Calibration `json:"calibration,omitempty"`
}

// PlaybackConfig holds the external parameter set for trajectory playback:
// rate, loop mode, and the column-to-joint mapping.
type PlaybackConfig struct {
	Hz          float64           `json:"hz,omitempty"`           // rows per second, default 2.0
	Loop        bool              `json:"loop,omitempty"`         // restart at exhaustion
	JointPrefix string            `json:"joint_prefix,omitempty"` // prepended to every joint name
	Columns     map[string]string `json:"columns,omitempty"`      // joint name -> table column
}

// IsCalibrated returns true if the arm has calibration data
func (a *ArmConfig) IsCalibrated() bool {
	return len(a.Calibration) > 0
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

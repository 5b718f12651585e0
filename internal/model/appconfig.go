package model

import "time"

// AppConfig holds application-wide preferences and default settings.
// Fields carry both json (config file written by the project package) and
// mapstructure tags (read back through viper by the CLI).
type AppConfig struct {
	DefaultAlgorithm    string        `json:"default_algorithm" mapstructure:"default_algorithm"`
	DefaultPlateHeight  int           `json:"default_plate_height" mapstructure:"default_plate_height"`
	DefaultPlateWidth   int           `json:"default_plate_width" mapstructure:"default_plate_width"`
	DefaultPlateCost    float64       `json:"default_plate_cost" mapstructure:"default_plate_cost"`
	DefaultEnergyFactor float64       `json:"default_energy_factor" mapstructure:"default_energy_factor"`
	DefaultTimeLimit    time.Duration `json:"default_time_limit" mapstructure:"default_time_limit"`
	DefaultGCodeProfile string        `json:"default_gcode_profile" mapstructure:"default_gcode_profile"`

	RecentFiles []string `json:"recent_files" mapstructure:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:    string(defaults.Algorithm),
		DefaultPlateHeight:  defaults.PlateHeight,
		DefaultPlateWidth:   defaults.PlateWidth,
		DefaultPlateCost:    defaults.PlateCost,
		DefaultEnergyFactor: defaults.EnergyFactor,
		DefaultTimeLimit:    defaults.TimeLimit,
		DefaultGCodeProfile: defaults.Machine.GCodeProfile,
		RecentFiles:         []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values are left untouched so a partial config file keeps the built-in defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if a := Algorithm(c.DefaultAlgorithm); a.Valid() {
		s.Algorithm = a
	}
	if c.DefaultPlateHeight > 0 {
		s.PlateHeight = c.DefaultPlateHeight
	}
	if c.DefaultPlateWidth > 0 {
		s.PlateWidth = c.DefaultPlateWidth
	}
	if c.DefaultPlateCost > 0 {
		s.PlateCost = c.DefaultPlateCost
	}
	if c.DefaultEnergyFactor > 0 {
		s.EnergyFactor = c.DefaultEnergyFactor
	}
	if c.DefaultTimeLimit > 0 {
		s.TimeLimit = c.DefaultTimeLimit
	}
	if c.DefaultGCodeProfile != "" {
		s.Machine.GCodeProfile = c.DefaultGCodeProfile
	}
}

// AddRecentFile moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentFile(path string, limit int) {
	out := []string{path}
	for _, p := range c.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.RecentFiles = out
}

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PlateCut/internal/model"
)

// DefaultProfilesPath returns the default file for custom G-code profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles writes custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.GCodeProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d in %s has no name", i+1, path)
		}
	}
	return profiles, nil
}

// ImportProfile reads a single shared profile and adds it to the custom
// profiles at path, replacing any profile with the same name.
func ImportProfile(path, sharedPath string) (model.GCodeProfile, error) {
	data, err := os.ReadFile(sharedPath)
	if err != nil {
		return model.GCodeProfile{}, err
	}

	var profile model.GCodeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.GCodeProfile{}, fmt.Errorf("parsing %s: %w", sharedPath, err)
	}
	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return model.GCodeProfile{}, err
	}
	replaced := false
	for i := range profiles {
		if profiles[i].Name == profile.Name {
			profiles[i] = profile
			replaced = true
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}
	return profile, SaveCustomProfiles(path, profiles)
}

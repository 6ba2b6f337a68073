package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/scontain/sconectl/internal/model"
)

// Settings is the optional YAML settings file. Every field is the file tier
// of the Setting with the same key.
//
// Example:
//
//	repo: registry.example.com/sconectl
//	version: "5.9.0"
//	cas_config: /srv/cas
//	nopull: true
type Settings struct {
	CASConfig  string `yaml:"cas_config,omitempty"`
	Repo       string `yaml:"repo,omitempty"`
	Version    string `yaml:"version,omitempty"`
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	NoPull     bool   `yaml:"nopull,omitempty"`
	DryRun     bool   `yaml:"dryrun,omitempty"`
	Verbose    bool   `yaml:"verbose,omitempty"`
}

// Lookup returns the string value stored under key.
func (s Settings) Lookup(key string) (string, bool) {
	switch key {
	case SettingCASConfig.Key:
		return s.CASConfig, s.CASConfig != ""
	case SettingRepo.Key:
		return s.Repo, s.Repo != ""
	case SettingVersion.Key:
		return s.Version, s.Version != ""
	case SettingKubeconfig.Key:
		return s.Kubeconfig, s.Kubeconfig != ""
	default:
		return "", false
	}
}

// Enabled returns the boolean value stored under key.
func (s Settings) Enabled(key string) bool {
	switch key {
	case SettingNoPull.Key:
		return s.NoPull
	case SettingDryRun.Key:
		return s.DryRun
	case SettingVerbose.Key:
		return s.Verbose
	default:
		return false
	}
}

// SettingsPath returns the settings file location for the given $HOME.
func SettingsPath(home string) string {
	return filepath.Join(home, StateDirName, SettingsFileName)
}

// LoadSettings reads the settings file at path. A missing or empty file
// yields zero Settings. Unknown keys are rejected so typos do not silently
// fall through to the defaults.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, model.UsageError(fmt.Sprintf("failed to read settings file %s", path), err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, model.UsageError(fmt.Sprintf("failed to parse settings file %s", path), err)
	}
	return s, nil
}

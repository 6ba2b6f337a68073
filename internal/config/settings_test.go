package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSettings_Missing verifies that an absent file is not an error.
func TestLoadSettings_Missing(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

// TestLoadSettings_Valid verifies that every supported key is decoded.
func TestLoadSettings_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	content := `repo: registry.example.com/sconectl
version: "5.9.0"
cas_config: /srv/cas
kubeconfig: /etc/kube/config
nopull: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "registry.example.com/sconectl", s.Repo)
	assert.Equal(t, "5.9.0", s.Version)
	assert.Equal(t, "/srv/cas", s.CASConfig)
	assert.Equal(t, "/etc/kube/config", s.Kubeconfig)
	assert.True(t, s.NoPull)
	assert.True(t, s.Enabled(SettingNoPull.Key))
	assert.False(t, s.Enabled(SettingDryRun.Key))

	v, ok := s.Lookup(SettingKubeconfig.Key)
	assert.True(t, ok)
	assert.Equal(t, "/etc/kube/config", v)
}

// TestLoadSettings_Empty verifies that an empty file decodes to zero values.
func TestLoadSettings_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

// TestLoadSettings_UnknownKey verifies that typos are rejected.
func TestLoadSettings_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("reop: typo\n"), 0o644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings file")
}

// TestSettingsPath verifies the file lives inside the state directory.
func TestSettingsPath(t *testing.T) {
	assert.Equal(t, "/home/u/.scone/sconectl.yaml", SettingsPath("/home/u"))
}

package docker

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// clientConfig is the subset of the docker client configuration
// (~/.docker/config.json) that the launcher cares about.
type clientConfig struct {
	// CredsStore names an external credential helper (e.g. "desktop",
	// "osxkeychain"). Credential helpers live on the host and are not
	// reachable from inside the toolchain container, so a non-empty value
	// usually breaks registry access there.
	CredsStore string `json:"credsStore"`
}

// CredentialCheck is the outcome of inspecting the docker client
// configuration. It never fails the run; it only produces warnings.
type CredentialCheck struct {
	// ConfigDir is the inspected directory (~/.docker).
	ConfigDir string

	// DirMissing is true when ConfigDir does not exist.
	DirMissing bool

	// ReadErr is set when config.json exists but cannot be read, or does
	// not exist inside an existing ConfigDir.
	ReadErr error

	// ParseErr is set when config.json is not valid JSON(C).
	ParseErr error

	// CredsStore is the non-empty credential store, if any.
	CredsStore string
}

// Warnings returns the advisory messages for this check, in a stable order.
func (c CredentialCheck) Warnings() []string {
	var out []string
	switch {
	case c.DirMissing:
		out = append(out, fmt.Sprintf(
			"%s does not exist; run a docker command first, or create it manually when using podman", c.ConfigDir))
	case c.ReadErr != nil, c.ParseErr != nil:
		out = append(out,
			"in case you are using docker, please ensure that field 'credsStore' in 'config.json' is empty")
	case c.CredsStore != "":
		out = append(out, fmt.Sprintf(
			"command execution will most likely fail: set field 'credsStore' (currently %q) in %s to \"\"",
			c.CredsStore, filepath.Join(c.ConfigDir, "config.json")))
	}
	return out
}

// CheckCredentialStore inspects <dir>/config.json. Comments and trailing
// commas are tolerated, since the file is hand-edited often enough.
func CheckCredentialStore(dir string) CredentialCheck {
	check := CredentialCheck{ConfigDir: dir}

	if _, err := os.Stat(dir); err != nil {
		check.DirMissing = errors.Is(err, os.ErrNotExist)
		if !check.DirMissing {
			check.ReadErr = err
		}
		return check
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		check.ReadErr = err
		return check
	}

	var cfg clientConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		check.ParseErr = err
		return check
	}
	check.CredsStore = cfg.CredsStore
	return check
}

package config

import (
	"fmt"
	"os"

	"github.com/scontain/sconectl/internal/model"
)

// Environment is the read-only view of process environment variables used by
// every resolver. Tests substitute MapEnvironment for OSEnvironment.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is an Environment backed by a map.
type MapEnvironment map[string]string

// LookupEnv implements Environment.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Getenv returns the value of key, or "" when unset.
func Getenv(env Environment, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}

// Home returns $HOME. A missing or empty HOME is a prerequisite error,
// since every host-state mount is derived from it.
func Home(env Environment) (string, error) {
	home := Getenv(env, EnvHome)
	if home == "" {
		return "", model.WrapCLIError(model.ExitUsageError,
			"environment variable HOME not defined", model.ErrPrerequisite)
	}
	return home, nil
}

// HostHome returns the home directory as seen by the container engine.
// When the launcher itself runs inside a container, HOST_HOME names the
// host's home so bind-mount sources resolve on the host; otherwise it is
// $HOME.
func HostHome(env Environment) (string, error) {
	if v := Getenv(env, EnvHostHome); v != "" {
		return v, nil
	}
	return Home(env)
}

// WorkDir returns the working directory to bind into the container and
// whether it came from HOST_WD. Without HOST_WD the launcher's own working
// directory is used.
func WorkDir(env Environment) (string, bool, error) {
	if v := Getenv(env, EnvHostWorkDir); v != "" {
		return v, true, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", false, model.WrapCLIError(model.ExitUsageError,
			"failed to get current directory", fmt.Errorf("%w: %v", model.ErrPrerequisite, err))
	}
	return wd, false, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scontain/sconectl/internal/model"
)

// ExtractFlag removes every occurrence of flag from args, in both the
// "flag value" and "flag=value" forms, and returns the value of the last
// occurrence. The input slice is not modified; rest is a new slice holding
// the remaining tokens in their original order.
//
// A flag without a following value, or with an empty one, is a usage error.
func ExtractFlag(args []string, flag string) (value string, found bool, rest []string, err error) {
	rest = make([]string, 0, len(args))
	prefix := flag + "="

	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case tok == flag:
			if i+1 >= len(args) || args[i+1] == "" {
				return "", false, nil, model.UsageError(
					fmt.Sprintf("no value provided for %q", flag), model.ErrMissingFlagValue)
			}
			value, found = args[i+1], true
			i++
		case strings.HasPrefix(tok, prefix):
			value, found = strings.TrimPrefix(tok, prefix), true
			if value == "" {
				return "", false, nil, model.UsageError(
					fmt.Sprintf("no value provided for %q", flag), model.ErrMissingFlagValue)
			}
		default:
			rest = append(rest, tok)
		}
	}
	return value, found, rest, nil
}

// ResolveCAS extracts --cas-config from args and resolves the CAS config
// directory with the flag > SCONECTL_CAS_CONFIG > settings file precedence.
//
// When no tier supplies a directory the default host directory
// ($HOST_HOME/.cas) is mounted instead and nothing is created. When one does,
// it must be absolute; a relative path is a usage error reported before any
// filesystem mutation. The returned args never contain the flag.
//
// ResolveCAS does not touch the filesystem; call ProvisionCAS afterwards.
func ResolveCAS(args []string, env Environment, file Settings, hostHome string) (model.CasConfig, []string, error) {
	flagValue, _, rest, err := ExtractFlag(args, FlagCASConfig)
	if err != nil {
		return model.CasConfig{}, nil, err
	}

	r := NewResolver(env, map[string]string{SettingCASConfig.Key: flagValue}, file)
	v := r.Resolve(SettingCASConfig)
	if !v.IsSet() {
		return model.CasConfig{
			Mount: model.BindMount(filepath.Join(hostHome, CASDirName), ContainerCASDir),
		}, rest, nil
	}

	if !filepath.IsAbs(v.Value) {
		return model.CasConfig{}, nil, model.UsageError(
			fmt.Sprintf("invalid CAS config directory %q (from %s)", v.Value, v.Source),
			model.ErrRelativeCASPath)
	}

	dir := filepath.Clean(v.Value)
	return model.CasConfig{
		Directory: dir,
		Source:    string(v.Source),
		Mount:     model.BindMount(dir, ContainerCASDir),
	}, rest, nil
}

// ProvisionCAS creates the requested CAS directory if it does not exist.
// It is a no-op for the default mount and for an existing directory, so
// calling it twice never fails on the second call.
func ProvisionCAS(cas model.CasConfig) error {
	if !cas.IsSet() {
		return nil
	}
	if err := EnsureDir(cas.Directory); err != nil {
		return model.WrapCLIError(model.ExitUsageError,
			fmt.Sprintf("error creating local directory for %s %s", FlagCASConfig, cas.Directory), err)
	}
	return nil
}

// EnsureDir creates dir (and missing parents) unless it already exists.
// An existing non-directory at that path is an error.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s exists and is not a directory", model.ErrPrerequisite, dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", model.ErrPrerequisite, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", model.ErrPrerequisite, err)
	}
	return nil
}

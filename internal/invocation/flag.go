package invocation

import (
	"github.com/docker/docker/api/types/mount"

	"github.com/scontain/sconectl/internal/model"
)

// FlagKind distinguishes the flag records of an Invocation.
type FlagKind int

const (
	// FlagOption is a bare option such as --rm.
	FlagOption FlagKind = iota
	// FlagEnv exports an environment variable (-e NAME=VALUE).
	FlagEnv
	// FlagMount binds a host path (-v SOURCE:TARGET).
	FlagMount
	// FlagWorkdir sets the in-container working directory (-w DIR).
	FlagWorkdir
)

// Flag is one typed "docker run" flag.
type Flag struct {
	Kind  FlagKind
	Name  string // option text for FlagOption, variable name for FlagEnv
	Value string // variable value for FlagEnv, directory for FlagWorkdir
	Mount mount.Mount
}

// Option returns a bare option flag.
func Option(name string) Flag {
	return Flag{Kind: FlagOption, Name: name}
}

// Env returns an environment export flag.
func Env(name, value string) Flag {
	return Flag{Kind: FlagEnv, Name: name, Value: value}
}

// Bind returns a bind-mount flag.
func Bind(m mount.Mount) Flag {
	return Flag{Kind: FlagMount, Mount: m}
}

// Workdir returns a working-directory flag.
func Workdir(dir string) Flag {
	return Flag{Kind: FlagWorkdir, Value: dir}
}

// Tokens renders the flag as unquoted command-line tokens.
func (f Flag) Tokens() []string {
	switch f.Kind {
	case FlagEnv:
		return []string{"-e", f.Name + "=" + f.Value}
	case FlagMount:
		return []string{"-v", model.MountSpec(f.Mount)}
	case FlagWorkdir:
		return []string{"-w", f.Value}
	default:
		return []string{f.Name}
	}
}

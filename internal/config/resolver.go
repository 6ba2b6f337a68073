package config

// Source names the tier a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
	SourceNone    Source = ""
)

// Setting describes one configurable value.
type Setting struct {
	// Key identifies the setting in the flag tier and the settings file.
	Key string

	// EnvVar is the environment variable consulted for the env tier.
	EnvVar string

	// Default is used when no tier supplies a value. Empty means the
	// setting stays unset.
	Default string
}

// Value is the outcome of resolving a Setting.
type Value struct {
	Value  string
	Source Source
}

// IsSet reports whether any tier, including the default, supplied a value.
func (v Value) IsSet() bool {
	return v.Source != SourceNone
}

// Resolver applies the flag > env > file > default precedence to every
// Setting. It holds no mutable state after construction.
type Resolver struct {
	flags map[string]string
	env   Environment
	file  Settings
}

// NewResolver creates a Resolver. flags maps Setting.Key to the value given
// on the command line; a nil map means no flag supplied anything.
func NewResolver(env Environment, flags map[string]string, file Settings) *Resolver {
	return &Resolver{flags: flags, env: env, file: file}
}

// Resolve returns the value of s from the highest tier that supplies a
// non-empty value.
func (r *Resolver) Resolve(s Setting) Value {
	if v := r.flags[s.Key]; v != "" {
		return Value{Value: v, Source: SourceFlag}
	}
	if s.EnvVar != "" {
		if v := Getenv(r.env, s.EnvVar); v != "" {
			return Value{Value: v, Source: SourceEnv}
		}
	}
	if v, ok := r.file.Lookup(s.Key); ok && v != "" {
		return Value{Value: v, Source: SourceFile}
	}
	if s.Default != "" {
		return Value{Value: s.Default, Source: SourceDefault}
	}
	return Value{}
}

// String is shorthand for Resolve(s).Value.
func (r *Resolver) String(s Setting) string {
	return r.Resolve(s).Value
}

// Defined reports whether s is switched on. Presence is what counts in the
// environment tier (SCONECTL_NOPULL= with an empty value still counts), and
// the file tier accepts a boolean.
func (r *Resolver) Defined(s Setting) bool {
	if _, ok := r.flags[s.Key]; ok {
		return true
	}
	if s.EnvVar != "" {
		if _, ok := r.env.LookupEnv(s.EnvVar); ok {
			return true
		}
	}
	return r.file.Enabled(s.Key)
}

// ImageRef returns the fully qualified image reference
// "<repo>/sconecli:<version>".
func (r *Resolver) ImageRef() string {
	return r.String(SettingRepo) + "/" + ImageName + ":" + r.String(SettingVersion)
}

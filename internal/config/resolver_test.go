package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolver_Precedence verifies flag > env > file > default for one key.
func TestResolver_Precedence(t *testing.T) {
	s := Setting{Key: "repo", EnvVar: EnvRepo, Default: DefaultRepo}

	tests := []struct {
		name   string
		flags  map[string]string
		env    MapEnvironment
		file   Settings
		want   string
		source Source
	}{
		{
			name:   "default only",
			env:    MapEnvironment{},
			want:   DefaultRepo,
			source: SourceDefault,
		},
		{
			name:   "file beats default",
			env:    MapEnvironment{},
			file:   Settings{Repo: "file.example/r"},
			want:   "file.example/r",
			source: SourceFile,
		},
		{
			name:   "env beats file",
			env:    MapEnvironment{EnvRepo: "env.example/r"},
			file:   Settings{Repo: "file.example/r"},
			want:   "env.example/r",
			source: SourceEnv,
		},
		{
			name:   "flag beats env",
			flags:  map[string]string{"repo": "flag.example/r"},
			env:    MapEnvironment{EnvRepo: "env.example/r"},
			file:   Settings{Repo: "file.example/r"},
			want:   "flag.example/r",
			source: SourceFlag,
		},
		{
			name:   "empty env value falls through",
			env:    MapEnvironment{EnvRepo: ""},
			want:   DefaultRepo,
			source: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewResolver(tt.env, tt.flags, tt.file).Resolve(s)
			assert.Equal(t, tt.want, v.Value)
			assert.Equal(t, tt.source, v.Source)
			assert.True(t, v.IsSet())
		})
	}
}

// TestResolver_Unset verifies that a setting without default stays unset.
func TestResolver_Unset(t *testing.T) {
	v := NewResolver(MapEnvironment{}, nil, Settings{}).Resolve(SettingCASConfig)
	assert.False(t, v.IsSet())
	assert.Empty(t, v.Value)
}

// TestResolver_Defined verifies presence semantics used by SCONECTL_NOPULL.
func TestResolver_Defined(t *testing.T) {
	assert.False(t, NewResolver(MapEnvironment{}, nil, Settings{}).Defined(SettingNoPull))
	assert.True(t, NewResolver(MapEnvironment{EnvNoPull: ""}, nil, Settings{}).Defined(SettingNoPull),
		"an empty but defined variable still counts")
	assert.True(t, NewResolver(MapEnvironment{}, nil, Settings{NoPull: true}).Defined(SettingNoPull))
}

// TestResolver_ImageRef verifies the image reference composition.
func TestResolver_ImageRef(t *testing.T) {
	r := NewResolver(MapEnvironment{}, nil, Settings{})
	assert.Equal(t, "registry.scontain.com/sconectl/sconecli:latest", r.ImageRef())

	r = NewResolver(MapEnvironment{EnvRepo: "localhost:5000/me", EnvVersion: "5.9.0"}, nil, Settings{})
	assert.Equal(t, "localhost:5000/me/sconecli:5.9.0", r.ImageRef())
}

// TestHostHome verifies the HOST_HOME > HOME fallback and the HOME check.
func TestHostHome(t *testing.T) {
	h, err := HostHome(MapEnvironment{EnvHome: "/home/u"})
	assert.NoError(t, err)
	assert.Equal(t, "/home/u", h)

	h, err = HostHome(MapEnvironment{EnvHome: "/root", EnvHostHome: "/Users/me"})
	assert.NoError(t, err)
	assert.Equal(t, "/Users/me", h)

	_, err = Home(MapEnvironment{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HOME not defined")
}

// TestWorkDir verifies that HOST_WD wins over the process working directory.
func TestWorkDir(t *testing.T) {
	wd, fromHost, err := WorkDir(MapEnvironment{EnvHostWorkDir: "/host/project"})
	assert.NoError(t, err)
	assert.True(t, fromHost)
	assert.Equal(t, "/host/project", wd)

	wd, fromHost, err = WorkDir(MapEnvironment{})
	assert.NoError(t, err)
	assert.False(t, fromHost)
	assert.NotEmpty(t, wd)
}

package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scontain/sconectl/internal/model"
)

// TestClassifyEndpoint walks every variant, including the degraded cases
// that fall back to the default socket.
func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		present    bool
		wantKind   model.EndpointKind
		wantSocket string
		wantHost   string
	}{
		{
			name:       "absent",
			wantKind:   model.EndpointDefault,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "defined but empty",
			raw:        "",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "podman unix socket",
			raw:        "unix:///var/run/podman.sock",
			present:    true,
			wantKind:   model.EndpointUnixSocket,
			wantSocket: "/var/run/podman.sock",
			wantHost:   "unix:///var/run/podman.sock",
		},
		{
			name:     "tcp endpoint",
			raw:      "tcp://192.168.1.10:2376",
			present:  true,
			wantKind: model.EndpointTCP,
			wantHost: "tcp://192.168.1.10:2376",
		},
		{
			name:     "tcp hostname",
			raw:      "tcp://docker.internal:2375",
			present:  true,
			wantKind: model.EndpointTCP,
			wantHost: "tcp://docker.internal:2375",
		},
		{
			name:     "bare ipv4",
			raw:      "10.0.0.5",
			present:  true,
			wantKind: model.EndpointRawAddress,
			wantHost: "tcp://10.0.0.5",
		},
		{
			name:     "bare ipv4 with port",
			raw:      "172.17.0.1:2375",
			present:  true,
			wantKind: model.EndpointRawAddress,
			wantHost: "tcp://172.17.0.1:2375",
		},
		{
			name:       "ssh scheme",
			raw:        "ssh://user@host",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "plain socket path",
			raw:        "/var/run/docker.sock",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "unix scheme without path",
			raw:        "unix://",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "unix scheme with relative path",
			raw:        "unix://docker.sock",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "tcp scheme without host",
			raw:        "tcp://",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
		{
			name:       "ipv6 is not a raw address",
			raw:        "::1",
			present:    true,
			wantKind:   model.EndpointUnrecognized,
			wantSocket: "/var/run/docker.sock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ClassifyEndpoint(tt.raw, tt.present)
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantSocket, e.SocketPath)
			assert.Equal(t, tt.wantHost, e.Host)
			if tt.present && tt.raw != "" {
				assert.Equal(t, tt.raw, e.Raw)
			}
		})
	}
}

// TestClassifyEndpoint_TotalAndStable checks that every input maps to a
// valid kind and that feeding the exported value back in does not change
// what gets mounted or exported.
func TestClassifyEndpoint_TotalAndStable(t *testing.T) {
	inputs := []string{
		"", " ", "unix:///a b/c.sock", "unix://", "tcp://h", "tcp://1.2.3.4:99",
		"1.2.3.4", "1.2.3.4:5", "300.1.1.1", "npipe:////./pipe/docker_engine",
		"fd://", "localhost", "localhost:2375", "tcp:/broken", "UNIX:///x",
	}

	for _, in := range inputs {
		first := ClassifyEndpoint(in, true)
		assert.True(t, first.Kind.IsValid(), "input %q", in)

		second := ClassifyEndpoint(first.Host, first.ExportsHost())
		assert.Equal(t, first.Host, second.Host, "input %q", in)
		assert.Equal(t, first.SocketPath, second.SocketPath, "input %q", in)

		// Reclassifying twice reaches a fixed point.
		third := ClassifyEndpoint(second.Host, second.ExportsHost())
		assert.Equal(t, second.Kind, third.Kind, "input %q", in)
	}
}

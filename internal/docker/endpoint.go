package docker

import (
	"net/netip"
	"path/filepath"
	"strings"

	"github.com/docker/docker/client"

	"github.com/scontain/sconectl/internal/model"
)

const (
	// UnixScheme is the recognized unix-socket prefix.
	UnixScheme = "unix://"

	// TCPScheme is the recognized TCP prefix. Raw addresses are normalized
	// by prepending it.
	TCPScheme = "tcp://"
)

// DefaultSocketPath is the platform's default local engine socket, taken
// from the Docker SDK's default host ("unix:///var/run/docker.sock").
var DefaultSocketPath = strings.TrimPrefix(client.DefaultDockerHost, UnixScheme)

// ClassifyEndpoint turns the DOCKER_HOST value into a HostEndpoint. present
// is false when the variable is not defined. A defined but empty value is
// Unrecognized, so it is reported like any other unusable value.
//
// The order of checks is:
//  1. absent                     -> Default (mount the default socket)
//  2. "unix://<abs path>"        -> UnixSocket (mount path, export unchanged)
//  3. "tcp://<host[:port]>"      -> TCP (export unchanged, no mount)
//  4. bare IPv4 or IPv4:port     -> RawAddress (export "tcp://" + value)
//  5. anything else              -> Unrecognized (mount the default socket)
//
// Schemes are disjoint from bare addresses, so the relative order of 3 and 4
// only matters for values that carry no scheme at all.
//
// Every input maps to exactly one kind. Classifying the exported Host of a
// result again yields the same mount and export.
func ClassifyEndpoint(raw string, present bool) model.HostEndpoint {
	if !present {
		return model.HostEndpoint{
			Kind:       model.EndpointDefault,
			SocketPath: DefaultSocketPath,
		}
	}

	switch {
	case strings.HasPrefix(raw, UnixScheme):
		// ParseHostURL puts the socket path into Host for the unix scheme.
		u, err := client.ParseHostURL(raw)
		if err == nil && filepath.IsAbs(u.Host) {
			return model.HostEndpoint{
				Kind:       model.EndpointUnixSocket,
				Raw:        raw,
				SocketPath: u.Host,
				Host:       raw,
			}
		}

	case strings.HasPrefix(raw, TCPScheme):
		u, err := client.ParseHostURL(raw)
		if err == nil && u.Host != "" {
			return model.HostEndpoint{
				Kind: model.EndpointTCP,
				Raw:  raw,
				Host: raw,
			}
		}

	case isRawIPv4(raw):
		return model.HostEndpoint{
			Kind: model.EndpointRawAddress,
			Raw:  raw,
			Host: TCPScheme + raw,
		}
	}

	return model.HostEndpoint{
		Kind:       model.EndpointUnrecognized,
		Raw:        raw,
		SocketPath: DefaultSocketPath,
	}
}

// isRawIPv4 reports whether s is a bare IPv4 address or IPv4 address:port.
func isRawIPv4(s string) bool {
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.Is4()
	}
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Is4()
	}
	return false
}

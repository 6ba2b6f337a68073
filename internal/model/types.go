// Package model defines the domain types for the sconectl launcher.
//
// These types are transient: they are created at the start of a single run,
// passed between the probe, the config resolver, the argument extractor and
// the invocation builder, and discarded at process exit.
package model

import (
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/mount"
)

// EndpointKind classifies the value of the engine endpoint override
// (DOCKER_HOST). Exactly one kind applies to every input string.
type EndpointKind string

const (
	// EndpointDefault is used only when the override variable is absent.
	// The platform's default local socket is bind-mounted into the container.
	EndpointDefault EndpointKind = "default"

	// EndpointUnixSocket is a "unix://" endpoint. The socket path is
	// bind-mounted at the same path and the variable is exported unchanged.
	EndpointUnixSocket EndpointKind = "unix-socket"

	// EndpointTCP is a "tcp://" endpoint. The engine is remote, so only the
	// variable is exported; nothing is mounted.
	EndpointTCP EndpointKind = "tcp"

	// EndpointRawAddress is a bare IPv4 address or address:port. It is
	// normalized by prefixing the TCP scheme before export.
	EndpointRawAddress EndpointKind = "raw-address"

	// EndpointUnrecognized is any other value. The launcher degrades to the
	// default socket mount and warns.
	EndpointUnrecognized EndpointKind = "unrecognized"
)

// String returns the string representation of EndpointKind.
func (k EndpointKind) String() string {
	return string(k)
}

// IsValid checks whether the EndpointKind is one of the predefined kinds.
func (k EndpointKind) IsValid() bool {
	switch k {
	case EndpointDefault, EndpointUnixSocket, EndpointTCP, EndpointRawAddress, EndpointUnrecognized:
		return true
	default:
		return false
	}
}

// HostEndpoint is the classified container engine endpoint.
type HostEndpoint struct {
	// Kind is the active variant.
	Kind EndpointKind `json:"kind"`

	// Raw is the override value exactly as found in the environment.
	// Empty for EndpointDefault.
	Raw string `json:"raw,omitempty"`

	// SocketPath is the host socket that must be bind-mounted into the
	// container at the same path. Empty when the engine is reached over TCP.
	SocketPath string `json:"socketPath,omitempty"`

	// Host is the value exported as DOCKER_HOST inside the container.
	// Empty when nothing is exported.
	Host string `json:"host,omitempty"`
}

// MountsSocket reports whether the endpoint requires a socket bind-mount.
func (e HostEndpoint) MountsSocket() bool {
	return e.SocketPath != ""
}

// ExportsHost reports whether DOCKER_HOST must be exported into the container.
func (e HostEndpoint) ExportsHost() bool {
	return e.Host != ""
}

// SocketMount returns the bind mount for the endpoint socket. The second
// return value is false for remote endpoints.
func (e HostEndpoint) SocketMount() (mount.Mount, bool) {
	if !e.MountsSocket() {
		return mount.Mount{}, false
	}
	return BindMount(e.SocketPath, e.SocketPath), true
}

// String returns a short human-readable description for log output.
func (e HostEndpoint) String() string {
	switch {
	case e.ExportsHost() && e.MountsSocket():
		return fmt.Sprintf("%s (%s, socket %s)", e.Kind, e.Host, e.SocketPath)
	case e.ExportsHost():
		return fmt.Sprintf("%s (%s)", e.Kind, e.Host)
	default:
		return fmt.Sprintf("%s (socket %s)", e.Kind, e.SocketPath)
	}
}

// CasConfig describes where the CAS configuration directory comes from and
// how it is mounted into the container.
//
// Invariant: when Directory is non-empty it is an absolute path, and after
// provisioning it exists on disk.
type CasConfig struct {
	// Directory is the resolved absolute directory, or empty when neither the
	// --cas-config flag nor the environment supplied one.
	Directory string `json:"directory,omitempty"`

	// Source names the tier that supplied Directory ("flag", "env", "file").
	// Empty when Directory is empty.
	Source string `json:"source,omitempty"`

	// Mount binds either Directory or the default host directory to the
	// in-container CAS path.
	Mount mount.Mount `json:"mount"`
}

// IsSet reports whether a dedicated CAS directory was requested.
func (c CasConfig) IsSet() bool {
	return c.Directory != ""
}

// MountSpec returns the textual "source:target" directive.
func (c CasConfig) MountSpec() string {
	return MountSpec(c.Mount)
}

// KubeMount describes the kubeconfig bind mount. Path is empty when no
// kubeconfig was found, in which case nothing is mounted.
type KubeMount struct {
	// Path is the host kubeconfig file.
	Path string `json:"path,omitempty"`

	// Mount binds Path to the in-container kubeconfig location.
	Mount mount.Mount `json:"mount"`
}

// Present reports whether a kubeconfig mount should be added.
func (k KubeMount) Present() bool {
	return k.Path != ""
}

// MountSpec returns the textual directive, or an empty string when no
// kubeconfig is mounted.
func (k KubeMount) MountSpec() string {
	if !k.Present() {
		return ""
	}
	return MountSpec(k.Mount)
}

// ArgumentSet is the partition of the raw argument vector.
//
// Invariant: Consumed and PassThrough together hold every input token exactly
// once, and PassThrough keeps the caller's order.
type ArgumentSet struct {
	// Help is set when the first token asked for launcher help.
	Help bool

	// Version is set when the first token asked for the launcher version.
	Version bool

	// Quiet disables the progress indicator.
	Quiet bool

	// Verbose lowers the log level to debug.
	Verbose bool

	// Consumed lists the launcher tokens in the order they were found.
	Consumed []string

	// PassThrough lists the tokens forwarded to the containerized tool.
	PassThrough []string
}

// Command returns the first pass-through token, which names the command the
// user asked the containerized tool to run. It is empty when there is none.
func (a ArgumentSet) Command() string {
	if len(a.PassThrough) == 0 {
		return ""
	}
	return a.PassThrough[0]
}

// ExecutionResult is what the execution driver reports for one child process.
type ExecutionResult struct {
	// ExitCode is the child's exit status. -1 means the process did not
	// terminate normally (signal or start failure).
	ExitCode int `json:"exitCode"`

	// Stdout holds captured standard output. Empty when the streams were
	// inherited from the launcher.
	Stdout string `json:"stdout,omitempty"`

	// Stderr holds captured standard error. Empty when the streams were
	// inherited from the launcher.
	Stderr string `json:"stderr,omitempty"`
}

// Succeeded reports whether the child exited with status 0.
func (r ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// BindMount returns a read-write bind mount from source to target.
func BindMount(source, target string) mount.Mount {
	return mount.Mount{
		Type:   mount.TypeBind,
		Source: source,
		Target: target,
	}
}

// MountSpec renders a mount as the "source:target[:ro]" directive understood
// by "docker run -v".
func MountSpec(m mount.Mount) string {
	var b strings.Builder
	b.WriteString(m.Source)
	b.WriteByte(':')
	b.WriteString(m.Target)
	if m.ReadOnly {
		b.WriteString(":ro")
	}
	return b.String()
}

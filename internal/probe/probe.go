package probe

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scontain/sconectl/internal/config"
	"github.com/scontain/sconectl/internal/docker"
	"github.com/scontain/sconectl/internal/model"
)

// DefaultRequiredCommands are the executables that must be on PATH.
var DefaultRequiredCommands = []string{"sh", "docker"}

// Host is the probed host state.
type Host struct {
	// Home is $HOME as seen by the launcher.
	Home string

	// HostHome is the home directory as seen by the engine (HOST_HOME or
	// Home). Mount sources are derived from it.
	HostHome string

	// WorkDir is the working directory to bind into the container.
	WorkDir string

	// WorkDirFromHost is true when WorkDir came from HOST_WD.
	WorkDirFromHost bool

	// StateDir is the local state directory, guaranteed to exist.
	StateDir string

	// Endpoint is the classified DOCKER_HOST.
	Endpoint model.HostEndpoint

	// Kube is the kubeconfig mount, possibly absent.
	Kube model.KubeMount

	// Credentials is the docker client configuration check.
	Credentials docker.CredentialCheck
}

// Option configures a Prober.
type Option func(*Prober)

// WithLookPath replaces exec.LookPath, for tests.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(p *Prober) { p.lookPath = fn }
}

// WithRequiredCommands replaces DefaultRequiredCommands.
func WithRequiredCommands(cmds ...string) Option {
	return func(p *Prober) { p.required = cmds }
}

// Prober collects Host state.
type Prober struct {
	env      config.Environment
	resolver *config.Resolver
	logger   *log.Logger
	lookPath func(string) (string, error)
	required []string
}

// New creates a Prober. The resolver supplies the kubeconfig setting so the
// settings file tier applies to it as well.
func New(env config.Environment, resolver *config.Resolver, logger *log.Logger, opts ...Option) *Prober {
	p := &Prober{
		env:      env,
		resolver: resolver,
		logger:   logger,
		lookPath: exec.LookPath,
		required: DefaultRequiredCommands,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe runs every check in order and returns the host state. Only
// prerequisite failures are returned as errors.
func (p *Prober) Probe() (*Host, error) {
	// Step 1: Required executables.
	if err := p.checkCommands(); err != nil {
		return nil, err
	}

	// Step 2: Home directories and working directory.
	home, err := config.Home(p.env)
	if err != nil {
		return nil, err
	}
	hostHome, err := config.HostHome(p.env)
	if err != nil {
		return nil, err
	}
	wd, wdFromHost, err := config.WorkDir(p.env)
	if err != nil {
		return nil, err
	}

	h := &Host{
		Home:            home,
		HostHome:        hostHome,
		WorkDir:         wd,
		WorkDirFromHost: wdFromHost,
		StateDir:        filepath.Join(home, config.StateDirName),
	}

	// Step 3: The state directory is bind-mounted later, so it must exist.
	if err := config.EnsureDir(h.StateDir); err != nil {
		return nil, model.WrapCLIError(model.ExitUsageError,
			fmt.Sprintf("error creating local directory %s", h.StateDir), err)
	}

	// Step 4: Engine endpoint.
	raw, present := p.env.LookupEnv(config.EnvDockerHost)
	h.Endpoint = ClassifyAndReport(raw, present, p.logger)

	// Step 5: Kubeconfig.
	h.Kube = p.resolveKubeconfig(home, hostHome)

	// Step 6: Credential store.
	h.Credentials = docker.CheckCredentialStore(filepath.Join(home, config.DockerConfigDirName))
	for _, w := range h.Credentials.Warnings() {
		p.logger.Warn(w)
	}

	return h, nil
}

func (p *Prober) checkCommands() error {
	for _, name := range p.required {
		if _, err := p.lookPath(name); err != nil {
			return model.WrapCLIError(model.ExitUsageError,
				fmt.Sprintf("command %q is not installed; please install it", name),
				fmt.Errorf("%w: %v", model.ErrPrerequisite, err))
		}
	}
	return nil
}

// ClassifyAndReport classifies the endpoint and logs the outcome. An
// unrecognized value degrades to the default socket with a warning.
func ClassifyAndReport(raw string, present bool, logger *log.Logger) model.HostEndpoint {
	e := docker.ClassifyEndpoint(raw, present)
	switch e.Kind {
	case model.EndpointUnrecognized:
		logger.Warn("docker socket with unknown schema detected, falling back to the default socket",
			config.EnvDockerHost, raw, "socket", e.SocketPath)
	case model.EndpointTCP, model.EndpointRawAddress:
		logger.Info("docker socket with TCP schema detected", config.EnvDockerHost, e.Host)
	default:
		logger.Debug("docker endpoint", "endpoint", e.String())
	}
	return e
}

// resolveKubeconfig picks KUBECONFIG (or the settings file), falling back to
// $HOME/.kube/config. Only an existing file is mounted. The default file is
// checked under home but mounted from hostHome, since the engine resolves
// bind sources on the host.
func (p *Prober) resolveKubeconfig(home, hostHome string) model.KubeMount {
	v := p.resolver.Resolve(config.SettingKubeconfig)

	path := v.Value
	source := path
	if !v.IsSet() {
		path = filepath.Join(home, ".kube", "config")
		source = filepath.Join(hostHome, ".kube", "config")
	} else if strings.ContainsRune(path, os.PathListSeparator) {
		// Only a single kubeconfig file can be mounted.
		first := strings.Split(path, string(os.PathListSeparator))[0]
		p.logger.Warn("only a single kubeconfig file is supported, using the first entry",
			config.EnvKubeconfig, path, "using", first)
		path, source = first, first
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if v.IsSet() {
			p.logger.Warn("kubeconfig not found, not mounting it", "path", path, "source", v.Source)
		} else {
			p.logger.Debug("no kubeconfig found", "path", path)
		}
		return model.KubeMount{}
	}

	return model.KubeMount{
		Path:  source,
		Mount: model.BindMount(source, config.ContainerKubeconfig),
	}
}

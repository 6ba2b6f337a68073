package invocation

import (
	"fmt"
	"path/filepath"

	"github.com/scontain/sconectl/internal/config"
	"github.com/scontain/sconectl/internal/model"
)

// DefaultEngine is the container engine CLI used for pull and run.
const DefaultEngine = "docker"

// Inputs is everything Build combines into an Invocation.
type Inputs struct {
	// Engine is the engine CLI binary. Empty means DefaultEngine.
	Engine string

	// Endpoint is the classified DOCKER_HOST.
	Endpoint model.HostEndpoint

	// CAS is the resolved CAS config mount.
	CAS model.CasConfig

	// Kube is the kubeconfig mount; nothing is added when absent.
	Kube model.KubeMount

	// Repo is the image repository root, exported so the tool pulls its
	// own images from the same place.
	Repo string

	// HostHome is the home directory as seen by the engine host.
	HostHome string

	// WorkDir is the directory bound into the container.
	WorkDir string

	// WorkDirFromHost is true when WorkDir came from HOST_WD. The directory
	// is then bound at the same path; otherwise at /wd.
	WorkDirFromHost bool

	// Image is the full image reference.
	Image string

	// TTY allocates a pseudo terminal (-t). Standard input is always kept
	// open (-i) so the tool can prompt.
	TTY bool

	// Args are the pass-through tokens, forwarded verbatim.
	Args []string
}

// Invocation is the fully assembled command. It is immutable once built;
// accessors return copies.
type Invocation struct {
	engine string
	flags  []Flag
	image  string
	args   []string
}

// Build assembles an Invocation in the fixed flag order documented on the
// package.
func Build(in Inputs) (*Invocation, error) {
	if in.Image == "" {
		return nil, model.UsageError("no image reference", fmt.Errorf("image must not be empty"))
	}
	if len(in.Args) == 0 {
		return nil, model.UsageError(model.ErrNoCommand.Error(), model.ErrNoCommand)
	}
	if in.HostHome == "" || in.WorkDir == "" {
		return nil, model.WrapCLIError(model.ExitUsageError,
			"host home and working directory must be resolved", model.ErrPrerequisite)
	}

	engine := in.Engine
	if engine == "" {
		engine = DefaultEngine
	}

	flags := make([]Flag, 0, 16)

	// 1. Run options.
	flags = append(flags, Option("--rm"), Option("-i"))
	if in.TTY {
		flags = append(flags, Option("-t"))
	}

	// 2. Engine endpoint.
	if in.Endpoint.ExportsHost() {
		flags = append(flags, Env(config.EnvDockerHost, in.Endpoint.Host))
	}
	if m, ok := in.Endpoint.SocketMount(); ok {
		flags = append(flags, Bind(m))
	}

	// 3. CAS config.
	flags = append(flags, Bind(in.CAS.Mount))

	// 4. Kubeconfig.
	if in.Kube.Present() {
		flags = append(flags, Bind(in.Kube.Mount))
	}

	// 5. Repository and host path context.
	if in.Repo != "" {
		flags = append(flags, Env(config.EnvRepo, in.Repo))
	}
	flags = append(flags,
		Env(config.EnvHostHome, in.HostHome),
		Env(config.EnvHostWorkDir, in.WorkDir),
	)

	// 6. Standard host-state mounts.
	flags = append(flags,
		Bind(model.BindMount(filepath.Join(in.HostHome, config.DockerConfigDirName), config.ContainerDockerDir)),
		Bind(model.BindMount(filepath.Join(in.HostHome, config.StateDirName), config.ContainerStateDir)),
	)

	// 7. Working directory.
	target := config.ContainerWorkDir
	if in.WorkDirFromHost {
		target = in.WorkDir
	}
	flags = append(flags, Bind(model.BindMount(in.WorkDir, target)), Workdir(target))

	return &Invocation{
		engine: engine,
		flags:  flags,
		image:  in.Image,
		args:   append([]string(nil), in.Args...),
	}, nil
}

// Flags returns a copy of the flag records in order.
func (inv *Invocation) Flags() []Flag {
	return append([]Flag(nil), inv.flags...)
}

// Image returns the image reference.
func (inv *Invocation) Image() string {
	return inv.image
}

// Args returns a copy of the pass-through tokens.
func (inv *Invocation) Args() []string {
	return append([]string(nil), inv.args...)
}

// Command returns the first pass-through token.
func (inv *Invocation) Command() string {
	return inv.args[0]
}

// RunTokens returns the unquoted tokens of the run command.
func (inv *Invocation) RunTokens() []string {
	tokens := []string{inv.engine, "run"}
	for _, f := range inv.flags {
		tokens = append(tokens, f.Tokens()...)
	}
	tokens = append(tokens, inv.image)
	return append(tokens, inv.args...)
}

// PullTokens returns the unquoted tokens of the pull command.
func (inv *Invocation) PullTokens() []string {
	return []string{inv.engine, "pull", inv.image}
}

// RunCommand serializes the run command for "sh -c".
func (inv *Invocation) RunCommand() (string, error) {
	return Join(inv.RunTokens())
}

// PullCommand serializes the pull command for "sh -c".
func (inv *Invocation) PullCommand() (string, error) {
	return Join(inv.PullTokens())
}

// String returns the run command, or a marker when it cannot be quoted.
func (inv *Invocation) String() string {
	s, err := inv.RunCommand()
	if err != nil {
		return fmt.Sprintf("<unquotable invocation: %v>", err)
	}
	return s
}

// Package cli implements the cobra root command for sconectl.
//
// sconectl has no subcommands of its own: everything after the launcher
// flags is forwarded to the containerized tool, so cobra's flag parsing is
// disabled and the argument vector is handed to the args package untouched.
// This file defines the root command and the exit code mapping; launch.go
// holds the run pipeline.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/scontain/sconectl/internal/config"
	"github.com/scontain/sconectl/internal/model"
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Option configures the launcher behind the root command. Options exist so
// tests can run the whole pipeline without touching the real environment.
type Option func(*launcher)

// WithEnvironment replaces the process environment.
func WithEnvironment(env config.Environment) Option {
	return func(l *launcher) { l.env = env }
}

// WithLookPath replaces exec.LookPath for the prerequisite check.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(l *launcher) { l.lookPath = fn }
}

// WithEngine replaces the container engine CLI ("docker").
func WithEngine(engine string) Option {
	return func(l *launcher) { l.engine = engine }
}

// WithStdio replaces the standard streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *launcher) {
		l.stdin, l.stdout, l.stderr = stdin, stdout, stderr
	}
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand(opts ...Option) *cobra.Command {
	l := newLauncher(opts...)

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "sconectl [--quiet|--verbose] [--cas-config DIR] COMMAND [ARG...]",
		Short: "Run the SCONE toolchain inside a container",
		Long: `sconectl runs the SCONE command line tools from a container image.

It inspects the local docker setup (DOCKER_HOST, ~/.docker/config.json,
KUBECONFIG) and mounts what the tools need into the container, then
forwards COMMAND and its arguments unchanged.

Environment:
  DOCKER_HOST          engine endpoint (unix:// or tcp://)
  SCONECTL_CAS_CONFIG  CAS config directory (absolute path, --cas-config wins)
  SCONECTL_REPO        image repository (default ` + config.DefaultRepo + `)
  SCONECTL_VERSION     image tag (default ` + config.DefaultVersion + `)
  SCONECTL_NOPULL      skip pulling the image when defined
  SCONECTL_DRYRUN      print the docker commands instead of running them
  SCONECTL_VERBOSE     log debug output
  KUBECONFIG           kubeconfig file (default ~/.kube/config)
  HOST_HOME, HOST_WD   host paths when sconectl itself runs in a container`,

		// Example lists the two most common forms.
		Example: `  sconectl apply -f service.yaml
  sconectl --cas-config /srv/cas apply -f service.yaml`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		SilenceErrors: true,

		// DisableFlagParsing hands every token to RunE. Flags after the
		// command belong to the containerized tool.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,

		// Version is displayed when --version is the first token.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return l.run(cmd, args)
		},
	}

	// The flags are declared for the help output only; parsing is disabled
	// and the args package recognizes them. Declaring help and version here
	// also stops cobra from adding its own -v shorthand.
	flags := rootCmd.Flags()
	flags.BoolP("help", "h", false, "Show this help (first argument only)")
	flags.Bool("version", false, "Show the version (first argument only)")
	flags.Bool("quiet", false, "Do not show progress while pulling (leading only)")
	flags.Bool("verbose", false, "Log debug output (leading only)")
	flags.String("cas-config", "", "Absolute CAS config directory, overrides "+config.EnvCASConfig)

	rootCmd.SetIn(l.stdin)
	rootCmd.SetOut(l.stdout)
	rootCmd.SetErr(l.stderr)

	return rootCmd
}

// Run executes the root command and returns the exit code. Errors are
// printed here and nowhere else.
func Run(ctx context.Context, rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return model.ExitCodeOf(err)
}

// Execute runs the root command and exits the process with its exit code.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(int(Run(context.Background(), rootCmd)))
}

// Colours shared by the logger and the error printer.
var (
	warnColor  = lipgloss.Color("214")
	errorColor = lipgloss.Color("196")

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
)

// printError writes "Error: <message>[: <underlying>]" to w.
func printError(w io.Writer, err error) {
	prefix := errorStyle.Render("Error:")

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) && cliErr.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", prefix, cliErr.Message, cliErr.Err)
		return
	}
	if cliErr != nil {
		fmt.Fprintf(w, "%s %s\n", prefix, cliErr.Message)
		return
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

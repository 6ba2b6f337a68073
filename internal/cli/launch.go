package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/scontain/sconectl/internal/args"
	"github.com/scontain/sconectl/internal/config"
	"github.com/scontain/sconectl/internal/docker"
	"github.com/scontain/sconectl/internal/invocation"
	"github.com/scontain/sconectl/internal/model"
	"github.com/scontain/sconectl/internal/probe"
)

// launcher carries the injectable process state for one run.
type launcher struct {
	env      config.Environment
	lookPath func(string) (string, error)
	engine   string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func newLauncher(opts ...Option) *launcher {
	l := &launcher{
		env:      config.OSEnvironment{},
		lookPath: exec.LookPath,
		engine:   invocation.DefaultEngine,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// run is the whole pipeline: extract arguments, resolve configuration,
// probe the host, build the invocation, and execute it. Every failure is
// returned; nothing here exits the process.
func (l *launcher) run(cmd *cobra.Command, argv []string) error {
	// Step 1: Launcher flags. Help and version short-circuit before any
	// environment access.
	set := args.Partition(argv)
	if set.Help {
		return cmd.Help()
	}
	if set.Version {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", cmd.Name(), cmd.Version)
		return nil
	}

	// Step 2: Settings file and resolver.
	home, err := config.Home(l.env)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(config.SettingsPath(home))
	if err != nil {
		return err
	}
	flagValues := map[string]string{}
	if set.Verbose {
		flagValues[config.SettingVerbose.Key] = "true"
	}
	resolver := config.NewResolver(l.env, flagValues, settings)

	logger := newLogger(l.stderr, resolver.Defined(config.SettingVerbose))
	logger.Debug("launcher flags", "consumed", set.Consumed, "settings", config.SettingsPath(home))

	// Step 3: CAS config. Validation happens before anything is created.
	hostHome, err := config.HostHome(l.env)
	if err != nil {
		return err
	}
	cas, rest, err := config.ResolveCAS(set.PassThrough, l.env, settings, hostHome)
	if err != nil {
		return err
	}
	if err := args.RequireCommand(rest); err != nil {
		return err
	}

	// Step 4: Host state.
	prober := probe.New(l.env, resolver, logger,
		probe.WithLookPath(l.lookPath),
		probe.WithRequiredCommands("sh", l.engine),
	)
	host, err := prober.Probe()
	if err != nil {
		return err
	}
	if err := config.ProvisionCAS(cas); err != nil {
		return err
	}
	logger.Debug("resolved host",
		"endpoint", host.Endpoint.String(),
		"cas", cas.MountSpec(),
		"kubeconfig", host.Kube.Path,
		"workdir", host.WorkDir)

	// Step 5: Invocation.
	_, stdinTTY := term.GetFdInfo(l.stdin)
	inv, err := invocation.Build(invocation.Inputs{
		Engine:          l.engine,
		Endpoint:        host.Endpoint,
		CAS:             cas,
		Kube:            host.Kube,
		Repo:            resolver.String(config.SettingRepo),
		HostHome:        host.HostHome,
		WorkDir:         host.WorkDir,
		WorkDirFromHost: host.WorkDirFromHost,
		Image:           resolver.ImageRef(),
		TTY:             stdinTTY,
		Args:            rest,
	})
	if err != nil {
		return err
	}
	logger.Debug("assembled invocation", "image", inv.Image(), "command", inv.Command())

	skipPull := resolver.Defined(config.SettingNoPull)
	if resolver.Defined(config.SettingDryRun) {
		return l.printDryRun(inv, skipPull)
	}

	// Step 6: Execution.
	driver := docker.NewDriver(logger,
		docker.WithStdio(l.stdin, l.stdout, l.stderr),
		docker.WithSkipPull(skipPull),
		docker.WithProgress(l.progressWriter(set.Quiet)),
	)
	_, err = driver.Execute(cmd.Context(), inv)
	return err
}

// printDryRun writes the commands that would run, one per line.
func (l *launcher) printDryRun(inv *invocation.Invocation, skipPull bool) error {
	if !skipPull {
		pull, err := inv.PullCommand()
		if err != nil {
			return model.UsageError("failed to assemble pull command", err)
		}
		fmt.Fprintln(l.stdout, pull)
	}
	run, err := inv.RunCommand()
	if err != nil {
		return model.UsageError("failed to assemble command", err)
	}
	fmt.Fprintln(l.stdout, run)
	return nil
}

// progressWriter returns stderr when a spinner should be drawn on it.
func (l *launcher) progressWriter(quiet bool) io.Writer {
	if quiet {
		return nil
	}
	if _, isTerm := term.GetFdInfo(l.stderr); !isTerm {
		return nil
	}
	return l.stderr
}

// newLogger creates the stderr logger. Warnings are always shown; verbose
// lowers the level to debug.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "sconectl",
		Level:  level,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(warnColor)
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(errorColor)
	logger.SetStyles(styles)
	return logger
}

package config

// Environment variable names consumed by the launcher.
const (
	EnvDockerHost  = "DOCKER_HOST"
	EnvCASConfig   = "SCONECTL_CAS_CONFIG"
	EnvKubeconfig  = "KUBECONFIG"
	EnvRepo        = "SCONECTL_REPO"
	EnvVersion     = "SCONECTL_VERSION"
	EnvNoPull      = "SCONECTL_NOPULL"
	EnvDryRun      = "SCONECTL_DRYRUN"
	EnvVerbose     = "SCONECTL_VERBOSE"
	EnvHome        = "HOME"
	EnvHostHome    = "HOST_HOME"
	EnvHostWorkDir = "HOST_WD"
)

// Launcher flags.
const (
	// FlagCASConfig overrides SCONECTL_CAS_CONFIG. It may appear anywhere in
	// the argument vector and is never forwarded.
	FlagCASConfig = "--cas-config"
)

// Image coordinates.
const (
	DefaultRepo    = "registry.scontain.com/sconectl"
	DefaultVersion = "latest"
	ImageName      = "sconecli"
)

// Host and in-container paths.
const (
	// StateDirName is the local state directory under $HOME. It must exist
	// before the run because it is bind-mounted into the container.
	StateDirName = ".scone"

	// SettingsFileName is the optional settings file inside the state dir.
	SettingsFileName = "sconectl.yaml"

	// CASDirName is the default CAS config directory under the host home.
	CASDirName = ".cas"

	// DockerConfigDirName holds the docker client configuration under $HOME.
	DockerConfigDirName = ".docker"

	// DockerConfigFileName is the docker client configuration file.
	DockerConfigFileName = "config.json"

	ContainerHome       = "/root"
	ContainerCASDir     = "/root/.cas"
	ContainerDockerDir  = "/root/.docker"
	ContainerStateDir   = "/root/.scone"
	ContainerKubeconfig = "/root/.kube/config"
	ContainerWorkDir    = "/wd"
)

// Settings known to the Resolver. Key is the settings-file key and also the
// key of the flag tier.
var (
	SettingCASConfig  = Setting{Key: "cas_config", EnvVar: EnvCASConfig}
	SettingRepo       = Setting{Key: "repo", EnvVar: EnvRepo, Default: DefaultRepo}
	SettingVersion    = Setting{Key: "version", EnvVar: EnvVersion, Default: DefaultVersion}
	SettingKubeconfig = Setting{Key: "kubeconfig", EnvVar: EnvKubeconfig}
	SettingNoPull     = Setting{Key: "nopull", EnvVar: EnvNoPull}
	SettingDryRun     = Setting{Key: "dryrun", EnvVar: EnvDryRun}
	SettingVerbose    = Setting{Key: "verbose", EnvVar: EnvVerbose}
)

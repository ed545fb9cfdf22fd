package domain

// State is a step of the build/reuse workflow.
type State string

const (
	// StateInit computes the fingerprint.
	StateInit State = "init"
	// StateLogin authenticates against the registry.
	StateLogin State = "login"
	// StateProbing pulls the fingerprint tag to find out whether it exists.
	StateProbing State = "probing"
	// StateReusing skips the build because the image already exists.
	StateReusing State = "reusing"
	// StateBuilding builds and tags a fresh image.
	StateBuilding State = "building"
	// StatePushingTags pushes the fingerprint tag and every declared tag.
	StatePushingTags State = "pushing_tags"
	// StateRunningPostCommands runs the configured post-build commands.
	StateRunningPostCommands State = "running_post_commands"
	// StateDone is the successful terminal state.
	StateDone State = "done"
	// StateFailed is the terminal state reached on any unhandled error.
	StateFailed State = "failed"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Path is the branch taken after probing.
type Path string

const (
	// PathReuse is taken when the image already exists in the registry.
	PathReuse Path = "reuse"
	// PathBuild is taken when the image has to be built.
	PathBuild Path = "build"
)

// Report summarizes a workflow run.
type Report struct {
	Fingerprint string
	Tag         string
	Image       string
	Path        Path
	States      []State
	Commands    int
}

// Plan lists every command a run would issue, fully resolved.
// Credentials are redacted.
type Plan struct {
	Repository   string     `yaml:"repository"`
	Fingerprint  string     `yaml:"fingerprint"`
	Tag          string     `yaml:"tag"`
	Login        []string   `yaml:"login,omitempty"`
	Probe        []string   `yaml:"probe"`
	Build        []string   `yaml:"build"`
	Push         [][]string `yaml:"push,omitempty"`
	PostCommands [][]string `yaml:"post_commands,omitempty"`
}

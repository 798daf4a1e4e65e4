package viewdocs

// Mode describes what a Target serves.
type Mode string

// Mode constants for Target.
const (
	ModeDirectory Mode = "directory"
	ModeFile      Mode = "file"
)

// DefaultFile is the document served at "/" in directory mode.
const DefaultFile = "README.md"

// Target is the validated result of resolving the command-line path.
type Target struct {
	// Root is the absolute directory that all served paths are relative to.
	// In file mode it is the parent directory of the file.
	Root string `json:"root"`

	Mode Mode `json:"mode"`

	// DefaultFile is the slash-separated path, relative to Root, served at "/".
	DefaultFile string `json:"defaultFile"`
}

// Validate returns an error if the target contains invalid fields.
func (t *Target) Validate() error {
	if t.Root == "" {
		return Errorf(EINVALID, "target root required")
	}
	if t.DefaultFile == "" {
		return Errorf(EINVALID, "target default file required")
	}
	switch t.Mode {
	case ModeDirectory, ModeFile:
	default:
		return Errorf(EINVALID, "invalid target mode %q", t.Mode)
	}
	return nil
}

package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Path to a .fantomas.toml configuration file (overrides discovery)." type:"existingfile"`
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Verify that a source file parses and formats cleanly."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging source files."`
	Format FormatCmd `cmd:"" help:"Format a source file, preserving comments and directives."`
	Watch  WatchCmd  `cmd:"" help:"Watch source files and reformat them on change."`
}

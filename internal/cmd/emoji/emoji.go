// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by the commands.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation or a missing credential.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "✗"

	// Optional marks an unset optional setting.
	Optional = "-"
)

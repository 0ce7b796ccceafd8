// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants for status columns and summary lines.
const (
	// Success marks a passing check or a written output.
	Success = "✓"

	// Error marks a failed check or an output that was not written.
	Error = "✗"

	// Warning marks a non-fatal issue.
	Warning = "!"
)

// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status indicators in tables and messages.
const (
	// Success marks a matched name or a clean audit.
	Success = "✓"

	// Error marks a missing implementation or a failed operation.
	Error = "✗"

	// Warning marks a duplicated name.
	Warning = "!"

	// Info marks informational notes such as hints.
	Info = "i"

	// Unknown marks an unrecognized status.
	Unknown = "?"
)

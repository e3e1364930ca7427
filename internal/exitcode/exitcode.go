// Package exitcode defines exit codes for the CLI.
package exitcode

// Process exit codes. Scripts rely on these values.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error: bad args, empty title, unknown task.
	UserError = 1

	// AuthError indicates a missing or rejected credential.
	AuthError = 2

	// BackendError indicates a remote task service or network failure.
	BackendError = 3
)

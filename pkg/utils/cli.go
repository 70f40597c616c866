package utils

import (
	"errors"

	"github.com/spf13/cobra"
)

// Process exit statuses shared by the commands.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks a command line mistake: a bad flag or a wrong number of
// arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// CheckArgs wraps a cobra argument validator so its failures are usage
// errors.
func CheckArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// FlagError is a cobra flag error handler that reports usage errors.
func FlagError(cmd *cobra.Command, err error) error {
	return &UsageError{Err: err}
}

// ExitCode maps the error returned by a command to its exit status.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

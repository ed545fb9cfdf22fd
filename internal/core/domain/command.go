package domain

import (
	"fmt"
	"strings"
)

// ExecPolicy decides how a command's exit code is classified.
type ExecPolicy struct {
	// ExpectedCode is the exit code treated as success.
	ExpectedCode int
	// NoRaise returns mismatching exit codes as data instead of a CommandError.
	NoRaise bool
	// CombineOutput appends stderr to the captured stdout.
	CombineOutput bool
	// Secrets are argument values masked wherever the command line is logged or reported.
	Secrets []string
}

// Redacted replaces secret values in logged and reported command lines.
const Redacted = "******"

// RaisePolicy fails on any nonzero exit code.
func RaisePolicy() ExecPolicy {
	return ExecPolicy{}
}

// NoRaisePolicy reports nonzero exit codes through the result only.
func NoRaisePolicy() ExecPolicy {
	return ExecPolicy{NoRaise: true}
}

// CommandResult is the outcome of a single command invocation.
type CommandResult struct {
	// Args is the command line with secrets replaced by Redacted.
	Args         []string
	ExitCode     int
	ExpectedCode int
	Stdout       string
	Stderr       string
}

// Succeeded reports whether the exit code matched the expected one.
func (r *CommandResult) Succeeded() bool {
	return r.ExitCode == r.ExpectedCode
}

// CommandError reports an exit code mismatch under the raising policy.
type CommandError struct {
	Command  string
	ExitCode int
	Expected int
	Message  string
}

// NewCommandError builds a CommandError from a failed result.
// The message is the last non-empty line of stdout, then stderr, then the bare exit status.
func NewCommandError(r *CommandResult) *CommandError {
	msg := LastLine(r.Stdout)
	if msg == "" {
		msg = LastLine(r.Stderr)
	}
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", r.ExitCode)
	}
	return &CommandError{
		Command:  strings.Join(r.Args, " "),
		ExitCode: r.ExitCode,
		Expected: r.ExpectedCode,
		Message:  msg,
	}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, e.Message)
}

// Unwrap lets errors.Is match ErrCommandFailed.
func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// Redact returns a copy of argv with every argument equal to a non-empty secret
// replaced by Redacted.
func Redact(argv, secrets []string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = arg
		for _, secret := range secrets {
			if secret != "" && arg == secret {
				out[i] = Redacted
				break
			}
		}
	}
	return out
}

// TrimQuotes strips one layer of matching enclosing quotes.
func TrimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// SplitCommand turns a command line into arguments: enclosing quotes are stripped,
// then the line is split on whitespace and empty tokens are dropped.
func SplitCommand(line string) []string {
	return strings.Fields(TrimQuotes(strings.TrimSpace(line)))
}

// LastLine returns the last non-blank line of s, trimmed.
func LastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

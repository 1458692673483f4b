// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package errors provides structured error handling for the codeimpact CLI.
//
// It defines UserError, a type that carries structured error information —
// what went wrong, why, and how to fix it — plus a matching ErrorJSON for
// --json mode, and the exit-code taxonomy spec §7 describes: only the fatal
// error kinds (input/solution not found, malformed input, circular
// dependency, timeout with no fallback, internal bug) ever reach FatalError.
// Every other error kind spec §7 lists (malformed manifest line, individual
// file parse failure, unresolved call site, timeout with fallback,
// cancellation) is logged and absorbed inside the core; it never becomes a
// UserError.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories, per SPEC_FULL.md §2.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration errors (missing/invalid
	// .codeimpact/project.yaml).
	ExitConfig = 1

	// ExitInput indicates invalid input: a malformed solution/project
	// manifest that could not be parsed at all, or a diff that isn't
	// readable input (distinct from the individual malformed-line warnings
	// spec §7 says must never be fatal).
	ExitInput = 4

	// ExitNotFound indicates a requested solution, project, file, or method
	// could not be located.
	ExitNotFound = 6

	// ExitCircularDependency indicates spec §4.1's project dependency cycle
	// check failed; the cycle members are carried in Cause.
	ExitCircularDependency = 7

	// ExitTimeout indicates the workspace/project-load watchdog (spec §5:
	// 15s per-project, 30s per-solution) expired with no fallback available.
	// A timeout that does fall back to the lightweight manifest parser is
	// never fatal and never reaches this exit code.
	ExitTimeout = 8

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	// Exit code 10 signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: What went wrong (user-facing error description)
//   - Cause: Why it happened (diagnostic information)
//   - Fix: How to fix it (actionable suggestion)
//
// UserError also carries an exit code for consistent CLI exit behavior
// and optionally wraps an underlying error for error chain compatibility.
type UserError struct {
	Message  string
	Cause    string
	Fix      string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error unwrapping for compatibility with errors.Is/As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load codeimpact configuration",
//	    "The config file .codeimpact/project.yaml could not be parsed",
//	    "Check the YAML syntax in .codeimpact/project.yaml",
//	    nil,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewInputError creates an input validation error with exit code ExitInput.
// Use this for a solution/project manifest or diff that could not be parsed
// as input at all — not for the individual malformed-line warnings spec §7
// says must never be fatal.
//
// Example:
//
//	return NewInputError(
//	    "Cannot parse diff",
//	    "Input is not a unified diff or git diff output",
//	    "Pass the output of `git diff` or a unified-diff file",
//	)
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewNotFoundError creates a resource-not-found error with exit code
// ExitNotFound.
//
// Example:
//
//	return NewNotFoundError(
//	    "Solution not found",
//	    "No .sln file at the given path",
//	    "Check the path or pass a .csproj file directly",
//	)
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNotFound}
}

// NewCircularDependencyError creates an error for spec §4.1's project
// dependency cycle detection, with exit code ExitCircularDependency. cause
// should name the cycle members in order.
func NewCircularDependencyError(cause string) *UserError {
	return &UserError{
		Message:  "Circular project dependency detected",
		Cause:    cause,
		Fix:      "Break the cycle by removing or inverting one of the listed project references",
		ExitCode: ExitCircularDependency,
	}
}

// NewTimeoutError creates a timeout error with exit code ExitTimeout. Only
// use this when no fallback path exists; spec §5/§7's watchdog timeouts
// normally degrade to the lightweight manifest parser instead of raising.
func NewTimeoutError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitTimeout, Err: err}
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display. Empty
// Cause or Fix fields are omitted from the output.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{Error: e.Message, Cause: e.Cause, Fix: e.Fix, ExitCode: e.ExitCode}
}

// FatalError prints the error and exits with the appropriate code. It
// never returns.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(os.Stderr)
			enc.SetIndent("", "  ")
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(os.Stderr, ue.Format(false))
		}
		os.Exit(ue.ExitCode)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitInternal)
}

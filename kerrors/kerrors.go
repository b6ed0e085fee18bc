// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package kerrors defines the error taxonomy shared by every layer of the
// Kemeny consensus engine: the ballot parser, the CLI surface, the solvers,
// and the job/worker layer. Kinds are distinguished with errors.Is against
// the sentinel values below; callers that need the structured fields use
// errors.As against the corresponding type.
package kerrors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinels used with errors.Is to classify an error without unwrapping its
// structured payload.
var (
	ErrParse            = errors.New("ballot parse error")
	ErrTieUnsupported   = errors.New("tie marker unsupported")
	ErrFileNotFound     = errors.New("file not found")
	ErrArgumentsRequired = errors.New("arguments required")
	ErrBadConversion    = errors.New("bad conversion")
	ErrTimeout          = errors.New("timeout")
	ErrRamOut           = errors.New("free memory exhausted")
	ErrBackendFailure   = errors.New("external backend failure")
	ErrInternal         = errors.New("internal invariant violated")
)

// ParseError reports a malformed ballot line.
type ParseError struct {
	Line   int
	Column int
	Kind   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Kind)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError wraps a ParseError with the ErrParse sentinel so callers can
// use errors.Is(err, ErrParse) regardless of whether they hold a *ParseError.
func NewParseError(line, column int, kind string) error {
	return errors.Mark(&ParseError{Line: line, Column: column, Kind: kind}, ErrParse)
}

// TieUnsupported reports the `^` tie marker reserved by the ballot format.
type TieUnsupported struct {
	Line int
}

func (e *TieUnsupported) Error() string {
	return fmt.Sprintf("line %d: tie marker '^' is not supported", e.Line)
}

func (e *TieUnsupported) Unwrap() error { return ErrTieUnsupported }

func NewTieUnsupported(line int) error {
	return errors.Mark(&TieUnsupported{Line: line}, ErrTieUnsupported)
}

// FileNotFound reports a missing input file.
type FileNotFound struct {
	Path string
}

func (e *FileNotFound) Error() string { return fmt.Sprintf("file not found: %s", e.Path) }
func (e *FileNotFound) Unwrap() error { return ErrFileNotFound }

func NewFileNotFound(path string) error {
	return errors.Mark(&FileNotFound{Path: path}, ErrFileNotFound)
}

// ArgumentsRequired reports a missing or inconsistent CLI argument set.
type ArgumentsRequired struct {
	Message string
}

func (e *ArgumentsRequired) Error() string { return e.Message }
func (e *ArgumentsRequired) Unwrap() error { return ErrArgumentsRequired }

func NewArgumentsRequired(message string) error {
	return errors.Mark(&ArgumentsRequired{Message: message}, ErrArgumentsRequired)
}

// BadConversion reports a failed numeric parse of a CLI flag or config value.
type BadConversion struct {
	From string
	To   string
}

func (e *BadConversion) Error() string {
	return fmt.Sprintf("cannot convert %q to %s", e.From, e.To)
}
func (e *BadConversion) Unwrap() error { return ErrBadConversion }

func NewBadConversion(from, to string) error {
	return errors.Mark(&BadConversion{From: from, To: to}, ErrBadConversion)
}

// BackendFailure reports a non-zero exit or unparseable output from an
// external MIP backend subprocess.
type BackendFailure struct {
	Backend  string
	ExitCode int
	Stderr   string
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("backend %s exited %d: %s", e.Backend, e.ExitCode, e.Stderr)
}
func (e *BackendFailure) Unwrap() error { return ErrBackendFailure }

func NewBackendFailure(backend string, exitCode int, stderr string) error {
	return errors.Mark(&BackendFailure{Backend: backend, ExitCode: exitCode, Stderr: stderr}, ErrBackendFailure)
}

// Internal reports an invariant violation that should never fire in
// practice (an L/D inconsistency, a DP table miss). Recovered by the
// worker rather than crashing the process; logged at error level.
type Internal struct {
	Invariant string
}

func (e *Internal) Error() string { return fmt.Sprintf("internal invariant violated: %s", e.Invariant) }
func (e *Internal) Unwrap() error { return ErrInternal }

func NewInternal(invariant string) error {
	return errors.Mark(&Internal{Invariant: invariant}, ErrInternal)
}

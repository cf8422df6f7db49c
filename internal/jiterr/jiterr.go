// Package jiterr defines the error kinds surfaced across the repository
// engine, per the propagation policy of the core: errors are raised at
// the point of detection and carry enough context for the CLI boundary
// to render a single-line message and a non-zero exit code.
package jiterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an engine error so callers (chiefly the CLI) can
// render it or branch on it without string matching.
type Kind int

const (
	// RepoDirty means a gate predicate failed: branch/checkout/merge
	// refuse to proceed while the working tree has uncommitted changes.
	RepoDirty Kind = iota
	// NotFound means a ref, commit digest, or branch does not exist.
	NotFound
	// IoFailure means an underlying filesystem read/write failed.
	IoFailure
	// CodecFailure means decompression failed or a hash could not be
	// computed.
	CodecFailure
	// InvalidName means a branch name didn't match the allowed pattern.
	InvalidName
	// UnrelatedHistories means a merge was attempted with no common
	// ancestor.
	UnrelatedHistories
	// NothingToCommit is informational, not fatal.
	NothingToCommit
	// NothingToMerge is informational, not fatal.
	NothingToMerge
)

func (k Kind) String() string {
	switch k {
	case RepoDirty:
		return "RepoDirty"
	case NotFound:
		return "NotFound"
	case IoFailure:
		return "IoFailure"
	case CodecFailure:
		return "CodecFailure"
	case InvalidName:
		return "InvalidName"
	case UnrelatedHistories:
		return "UnrelatedHistories"
	case NothingToCommit:
		return "NothingToCommit"
	case NothingToMerge:
		return "NothingToMerge"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every exported repo
// operation. It wraps an underlying cause (if any) via pkg/errors so
// the cause carries a stack trace up to the CLI boundary; Error()
// renders only the messages.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.err)
	}
	return e.Msg
}

// Unwrap lets errors.Is / errors.As reach the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// New builds a Kind-tagged error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind and message to an existing error, preserving it
// as the cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	if cause == nil {
		return New(kind, msg)
	}
	return &Error{Kind: kind, Msg: msg, err: errors.WithStack(cause)}
}

// Wrapf is Wrap with fmt.Sprintf-style formatting.
func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return Wrap(kind, cause, fmt.Sprintf(format, args...))
}

// Is reports whether err is a *Error of the given Kind, unwrapping as
// needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

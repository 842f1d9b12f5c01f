// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr defines the error taxonomy shared by the pipeline stages.
// Only input and output-write errors are fatal to a render; style and asset
// problems are recovered where they happen and never reach the caller.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrParse        = errors.New("parse failed")
	ErrOutputWrite  = errors.New("output write failed")
	ErrAssetMissing = errors.New("background asset unavailable")
)

// InputError reports an absent or malformed request payload.
type InputError struct {
	Source  string // request file path or "stdin"
	Message string
	Err     error
}

func (e *InputError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Source != "" {
		return fmt.Sprintf("invalid request from %s: %s", e.Source, msg)
	}
	return fmt.Sprintf("invalid request: %s", msg)
}

func (e *InputError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is lets errors.Is(err, ErrInvalidInput) match even when Err is set.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// ParseError reports text that cannot be parsed at all.
type ParseError struct {
	Source  string
	Message string
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to parse %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("failed to parse text: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// OutputWriteError reports a deck that could not be written to its destination.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrOutputWrite) match.
func (e *OutputWriteError) Is(target error) bool { return target == ErrOutputWrite }

// AssetFallback records why a background image was replaced by a
// synthesized one. It is logged, never returned from a render.
type AssetFallback struct {
	Path   string
	Reason string
	Err    error
}

func (e *AssetFallback) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("background %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("background %q: %s", e.Path, e.Reason)
}

func (e *AssetFallback) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrAssetMissing
}

// Is lets errors.Is(err, ErrAssetMissing) match.
func (e *AssetFallback) Is(target error) bool { return target == ErrAssetMissing }

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"errors"
	"fmt"

	"github.com/dblohm7/wingoes"
)

var (
	// ErrInvalidState is returned when an operation is attempted while the
	// dialog, page or control is in a state that does not permit it: binding
	// conflicts, live updates while no dialog window exists, recursive Show,
	// mutating a page or collection that is currently bound.
	ErrInvalidState = errors.New("invalid state")

	// ErrArgumentOutOfRange is returned for values outside the range accepted
	// by the native task dialog, such as progress bar bounds beyond 16 bits.
	ErrArgumentOutOfRange = errors.New("argument out of range")
)

// NativeError is returned when the native task dialog call fails.
type NativeError struct {
	// Op is the native function that failed.
	Op string
	// Err is the error derived from the function's HRESULT.
	Err error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NativeError) Unwrap() error {
	return e.Err
}

func errorFromHRESULT(op string, hr wingoes.HRESULT) error {
	return &NativeError{Op: op, Err: wingoes.ErrorFromHRESULT(hr)}
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func outOfRange(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrArgumentOutOfRange, fmt.Sprintf(format, args...))
}

/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package errors is a github.com/pkg/errors compatible API for native errors,
// plus the error kinds surfaced by a reconciliation.
package errors

import (
	"github.com/pkg/errors"
)

// New returns an error that formats as the given text. Each call to New
// returns a distinct error value even if the text is identical.
func New(text string) error { return errors.New(text) }

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error.
func Errorf(format string, a ...any) error { return errors.Errorf(format, a...) }

// Wrap an error with the supplied message. Returns nil if err is nil.
func Wrap(err error, message string) error { return errors.Wrap(err, message) }

// Wrapf wraps an error with the supplied format specifier. Returns nil if err
// is nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target, and if so, sets
// target to that error value and returns true.
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error { return errors.Unwrap(err) }

// Cause returns the underlying cause of the error, if possible.
func Cause(err error) error { return errors.Cause(err) }

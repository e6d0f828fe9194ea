/*
 * errors.go, part of defcorr.
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * defcorr is developed at the Universidad de Santiago de Chile
 * (USACH), on top of goChem.
 *
 */

package defcorr

import (
	"errors"
	"fmt"
	"strings"
)

// The error kinds of defcorr. Every Error returned by the library unwraps to
// one of these, so they can be tested for with errors.Is.
var (
	// ErrGeometry is a degenerate or non-invertible lattice or dielectric tensor.
	ErrGeometry = errors.New("defcorr: geometry error")
	// ErrConvergence means a summation did not stabilize before its hard cap.
	ErrConvergence = errors.New("defcorr: summation did not converge")
	// ErrGammaSearchExhausted means no convergence parameter was found in the allowed range.
	ErrGammaSearchExhausted = errors.New("defcorr: gamma search exhausted")
	// ErrNumericalInstability is a non-negligible imaginary residue in a reciprocal sum.
	ErrNumericalInstability = errors.New("defcorr: numerical instability")
	// ErrDefectNotFound means the bulk and defect structures could not be matched to a single defect.
	ErrDefectNotFound = errors.New("defcorr: defect not found")
	// ErrInsufficientSampling means no site lies outside the Wigner-Seitz sampling radius.
	ErrInsufficientSampling = errors.New("defcorr: insufficient sampling")
	// ErrInputShape is a mismatch between the shape of supplied data and the declared one.
	ErrInputShape = errors.New("defcorr: input shape mismatch")
)

// CError is the error type of the defcorr library. It carries a kind (one of the
// Err* variables) and a decoration: the list of functions the error went through.
type CError struct {
	message  string
	kind     error
	deco     []string
	critical bool
}

// NewError returns a critical *CError of the given kind, created in the function caller.
func NewError(kind error, caller, format string, args ...interface{}) *CError {
	return &CError{message: fmt.Sprintf(format, args...), kind: kind, deco: []string{caller}, critical: true}
}

// Error returns a string with an error message.
func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("%v: %s", err.kind, err.message)
	}
	return fmt.Sprintf("%v: %s (%s)", err.kind, err.message, strings.Join(err.deco, " <- "))
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty dec only returns the current decoration.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical or it can be ignored.
func (err *CError) Critical() bool { return err.critical }

// Unwrap returns the kind of the error.
func (err *CError) Unwrap() error { return err.kind }

// ErrDecorate decorates err with the caller's name before returning it.
// Errors that don't implement Error are wrapped with the caller's name instead.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}

/*
 * options.go, part of defcorr.
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

package madelung

import (
	"io"
	"log"
	"runtime"
)

// Options contains the parameters of the lattice sums. The zero value is not
// useful, use DefaultOptions.
type Options struct {
	encut         float64 //largest energy cutoff for the reciprocal sums, in eV
	tolerance     float64 //convergence tolerance for all sums, in eV
	maxShell      int     //real-space shells are added while N < maxShell
	maxGammaTries int     //how many times gamma can be increased
	maxGamma      float64 //gamma can't go above this, in 1/Bohr
	startGamma    float64 //initial guess for gamma. 0 means 5/V^(1/3)
	gamma         float64 //if >0, gamma is not searched for, this value is used.
	imagTolerance float64 //if >0, a grid with a larger imaginary residue is an error.
	cpus          int
	logger        *log.Logger
}

// DefaultOptions returns the usual parameters: 520 eV cutoff, 1e-4 eV tolerance,
// 40 real-space shells and 15 gamma escalations, using all logical CPUs and
// no logging.
func DefaultOptions() *Options {
	O := new(Options)
	O.encut = 520
	O.tolerance = 0.0001
	O.maxShell = 40
	O.maxGammaTries = 15
	O.maxGamma = 50
	O.cpus = runtime.NumCPU()
	O.logger = discard
	return O
}

// Encut returns the maximum energy cutoff (eV) allowed for the reciprocal sums,
// and sets it to a new value, if given.
func (O *Options) Encut(e ...float64) float64 {
	if len(e) > 0 && e[0] > 0 {
		O.encut = e[0]
	}
	return O.encut
}

// Tolerance returns the convergence tolerance, in eV, and sets it to a new value, if given.
func (O *Options) Tolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] > 0 {
		O.tolerance = t[0]
	}
	return O.tolerance
}

// MaxShell returns the real-space shell cap and sets it to a new value, if given.
func (O *Options) MaxShell(n ...int) int {
	if len(n) > 0 && n[0] > 2 {
		O.maxShell = n[0]
	}
	return O.maxShell
}

// MaxGammaTries returns the number of times gamma can be increased before giving up,
// and sets it to a new value, if given.
func (O *Options) MaxGammaTries(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.maxGammaTries = n[0]
	}
	return O.maxGammaTries
}

// MaxGamma returns the largest acceptable gamma, in 1/Bohr, and sets it to a new value, if given.
func (O *Options) MaxGamma(g ...float64) float64 {
	if len(g) > 0 && g[0] > 0 {
		O.maxGamma = g[0]
	}
	return O.maxGamma
}

// StartGamma returns the initial gamma for the search, in 1/Bohr, and sets it to
// a new value, if given. A value of 0 means that the search starts from 5/V^(1/3).
func (O *Options) StartGamma(g ...float64) float64 {
	if len(g) > 0 && g[0] >= 0 {
		O.startGamma = g[0]
	}
	return O.startGamma
}

// Gamma returns the fixed gamma, in 1/Bohr, and sets it to a new value, if given.
// If the fixed gamma is larger than 0, NewBulk uses it without any search.
func (O *Options) Gamma(g ...float64) float64 {
	if len(g) > 0 && g[0] >= 0 {
		O.gamma = g[0]
	}
	return O.gamma
}

// ImagTolerance returns the largest imaginary residue (in Hartree) accepted
// in the reciprocal grid, and sets it to a new value, if given. 0 means that
// the residue is only reported.
func (O *Options) ImagTolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] >= 0 {
		O.imagTolerance = t[0]
	}
	return O.imagTolerance
}

// Cpus returns the number of gorutines to be used,
// and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

// discard is the logger of options without one.
var discard = log.New(io.Discard, "", 0)

// Logger returns the logger used to report progress, and sets it to a new value, if given.
// It never returns nil: without a logger, messages are discarded.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	if len(l) > 0 {
		O.logger = l[0]
	}
	if O.logger == nil {
		return discard
	}
	return O.logger
}

func orDefault(O *Options) *Options {
	if O == nil {
		return DefaultOptions()
	}
	return O
}

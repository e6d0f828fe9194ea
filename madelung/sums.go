/*
 * sums.go, part of defcorr.
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
	"math"
	"math/cmplx"

	"github.com/rmera/defcorr"
	v3 "github.com/rmera/defcorr/v3"
)

// Sum is the result of a convergence loop. A sum that didn't converge is not an
// error by itself, the caller decides what to do with it.
type Sum struct {
	Value     float64
	Steps     int //number of shells (or cutoffs) evaluated
	Converged bool
}

// RealSum returns the real-space part of the anisotropic Ewald potential, in Hartree,
// created at the point r (cartesian, in A, relative to the charge) by a charge q and
// all its periodic images, screened by diel:
//
//	q * sum_R erfc(gamma*sqrt(d.diel^-1.d))/sqrt(det(diel)*d.diel^-1.d),  d = R-r
//
// If r is the origin, the R=0 term is left out. The lattice vectors R are added by
// shells. Shells are added while N < maxShell, and the sum is converged when
// two successive shells differ by less than tol (in eV). At least 4 shells are
// always evaluated.
func RealSum(lat *defcorr.Lattice, diel *defcorr.Dielectric, r [3]float64, q, gamma, tol float64, maxShell int) Sum {
	a := lat.Bohr()
	rb := [3]float64{r[0] * defcorr.A2Bohr, r[1] * defcorr.A2Bohr, r[2] * defcorr.A2Bohr}
	origin := v3.Dot(rb, rb) < 1e-16
	pre := 1 / math.Sqrt(diel.Det())
	term := func(i, j, k int) float64 {
		if origin && i == 0 && j == 0 && k == 0 {
			return 0
		}
		var d [3]float64
		for c := 0; c < 3; c++ {
			d[c] = float64(i)*a[0][c] + float64(j)*a[1][c] + float64(k)*a[2][c] - rb[c]
		}
		loc := diel.InvQuad(d)
		return pre * math.Erfc(gamma*math.Sqrt(loc)) / math.Sqrt(loc)
	}
	tol = tol * defcorr.EV2Hart
	var sum, prev float64
	steps := 0
	for N := 0; N < maxShell; N++ {
		sum += shell(N, term)
		if N < 2 {
			continue //the first result is the whole N=2 cube.
		}
		steps++
		if steps > 3 && math.Abs(math.Abs(q*sum)-math.Abs(q*prev)) < tol {
			return Sum{Value: q * sum, Steps: steps, Converged: true}
		}
		prev = sum
	}
	return Sum{Value: q * sum, Steps: steps, Converged: false}
}

// shell adds f over the lattice points with max(|i|,|j|,|k|) = N.
func shell(N int, f func(i, j, k int) float64) float64 {
	if N == 0 {
		return f(0, 0, 0)
	}
	var s float64
	for i := -N; i <= N; i++ {
		for j := -N; j <= N; j++ {
			if i == -N || i == N || j == -N || j == N {
				for k := -N; k <= N; k++ {
					s += f(i, j, k)
				}
				continue
			}
			s += f(i, j, -N) + f(i, j, N)
		}
	}
	return s
}

// GCut returns the largest reciprocal vector norm, in 1/Bohr, included for the
// energy cutoff encut (in eV).
func GCut(encut float64) float64 {
	return math.Sqrt(encut/defcorr.InvA2EV) * defcorr.A2Bohr
}

// RecipVectors returns all the reciprocal lattice vectors G of lat, in 1/Bohr,
// with 0 < |G| < GCut(encut).
func RecipVectors(lat *defcorr.Lattice, encut float64) [][3]float64 {
	ret := make([][3]float64, 0, 100)
	eachRecip(lat, encut, func(g [3]float64) {
		ret = append(ret, g)
	})
	return ret
}

func eachRecip(lat *defcorr.Lattice, encut float64, f func(g [3]float64)) {
	b := lat.ReciprocalBohr()
	a := lat.Bohr()
	gcut := GCut(encut)
	//the multiple of b_i in G is G.a_i/2pi, so |G| < gcut bounds it by gcut*|a_i|/2pi.
	var max [3]int
	for i := range a {
		max[i] = int(math.Ceil(gcut * math.Sqrt(v3.Dot(a[i], a[i])) / (2 * math.Pi)))
	}
	for i := -max[0]; i <= max[0]; i++ {
		for j := -max[1]; j <= max[1]; j++ {
			for k := -max[2]; k <= max[2]; k++ {
				var g [3]float64
				for c := 0; c < 3; c++ {
					g[c] = float64(i)*b[0][c] + float64(j)*b[1][c] + float64(k)*b[2][c]
				}
				n := math.Sqrt(v3.Dot(g, g))
				if n > 0 && n < gcut {
					f(g)
				}
			}
		}
	}
}

// RecipSum returns the reciprocal-space part of the Ewald potential for a unit charge,
// in Hartree, at the point r (cartesian, A), summing explicitly over all the
// reciprocal vectors within the cutoff encut (eV):
//
//	4pi/V sum_G exp(-G.diel.G/4gamma^2) exp(-iG.r) / G.diel.G
//
// The imaginary part of the result should be negligible, and is returned as a diagnostic.
func RecipSum(lat *defcorr.Lattice, diel *defcorr.Dielectric, gamma, encut float64, r [3]float64) complex128 {
	rb := [3]float64{r[0] * defcorr.A2Bohr, r[1] * defcorr.A2Bohr, r[2] * defcorr.A2Bohr}
	g4 := 4 * gamma * gamma
	var sum complex128
	eachRecip(lat, encut, func(g [3]float64) {
		gdg := diel.Quad(g)
		sum += complex(math.Exp(-gdg/g4)/gdg, 0) * cmplx.Exp(complex(0, -v3.Dot(g, rb)))
	})
	return sum * complex(4*math.Pi/lat.BohrVolume(), 0)
}

// selfTerm is the interaction of the charge q with the neutralizing background, in Hartree.
func selfTerm(lat *defcorr.Lattice, q, gamma float64) float64 {
	return q * math.Pi / (lat.BohrVolume() * gamma * gamma)
}

// surfaceTerm is the interaction of the Gaussian-screened charge q with itself, in Hartree.
func surfaceTerm(diel *defcorr.Dielectric, q, gamma float64) float64 {
	return 2 * gamma * q / math.Sqrt(math.Pi*diel.Det())
}

/*
 * gamma.go, part of defcorr.
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

	"github.com/rmera/defcorr"
)

const (
	startEncut = 20.0 //eV
	stepEncut  = 10.0
	minRecip   = 1.0 //a gamma is accepted only if its reciprocal sum is at least this large, in eV
	gammaStep  = 1.5
)

// GammaSearch contains the result of a search for the Ewald parameter.
type GammaSearch struct {
	Gamma       float64 //in 1/Bohr
	Encut       float64 //cutoff (eV) at which the reciprocal sum converged for Gamma
	RecipSum    float64 //the converged reciprocal sum at the origin, in eV
	Escalations int     //how many times gamma had to be increased
}

// FindGamma returns the Ewald convergence parameter, in 1/Bohr, for the lattice
// lat and the dielectric tensor diel.
func FindGamma(lat *defcorr.Lattice, diel *defcorr.Dielectric, opts *Options) (float64, error) {
	s, err := SearchGamma(lat, diel, opts)
	if err != nil {
		return 0, defcorr.ErrDecorate(err, "FindGamma")
	}
	return s.Gamma, nil
}

// SearchGamma looks for a gamma for which the reciprocal sum at the origin converges
// below opts.Encut and is not negligibly small (at least 1 eV). The search starts
// at opts.StartGamma or, if that is not set, at 5/V^(1/3), with V in Bohr^3.
// gamma is multiplied by 1.5 each time its reciprocal sum is too small. The
// first gamma that needs no increase is returned, so starting a search from a
// returned gamma gives back the same value.
func SearchGamma(lat *defcorr.Lattice, diel *defcorr.Dielectric, opts *Options) (GammaSearch, error) {
	O := orDefault(opts)
	logger := O.Logger()
	gamma := O.StartGamma()
	if gamma <= 0 {
		gamma = 5 / math.Cbrt(lat.BohrVolume())
	}
	ret := GammaSearch{}
	for {
		if gamma > O.MaxGamma() {
			return ret, defcorr.NewError(defcorr.ErrGammaSearchExhausted, "SearchGamma", "gamma %.4f above the limit %.1f", gamma, O.MaxGamma())
		}
		s, encut, residue := convergeRecip(lat, diel, gamma, O)
		if !s.Converged {
			return ret, defcorr.NewError(defcorr.ErrConvergence, "SearchGamma", "reciprocal sum for gamma %.4f not converged at %.0f eV (largest allowed cutoff %.0f eV)", gamma, encut, O.Encut())
		}
		if residue*defcorr.Hart2EV > O.Tolerance() {
			return ret, defcorr.NewError(defcorr.ErrNumericalInstability, "SearchGamma", "imaginary residue %.3g eV in the reciprocal sum for gamma %.4f", residue*defcorr.Hart2EV, gamma)
		}
		sum := math.Abs(s.Value) * defcorr.Hart2EV
		logger.Printf("gamma %.6f: reciprocal sum %.6f eV converged at %.0f eV", gamma, s.Value*defcorr.Hart2EV, encut)
		if sum >= minRecip {
			ret.Gamma = gamma
			ret.Encut = encut
			ret.RecipSum = s.Value * defcorr.Hart2EV
			return ret, nil
		}
		if ret.Escalations >= O.MaxGammaTries() {
			return ret, defcorr.NewError(defcorr.ErrGammaSearchExhausted, "SearchGamma", "no acceptable gamma after %d increases, last one %.4f", ret.Escalations, gamma)
		}
		ret.Escalations++
		gamma *= gammaStep
		logger.Printf("reciprocal sum too small, increasing gamma to %.6f", gamma)
	}
}

// convergeRecip increases the energy cutoff until two successive reciprocal sums at
// the origin agree within the tolerance. It returns the sum, the last cutoff used
// and the imaginary residue of the last sum, in Hartree.
func convergeRecip(lat *defcorr.Lattice, diel *defcorr.Dielectric, gamma float64, O *Options) (Sum, float64, float64) {
	tol := O.Tolerance() * defcorr.EV2Hart
	origin := [3]float64{}
	encut := startEncut
	prev := RecipSum(lat, diel, gamma, encut, origin)
	encut += stepEncut
	cur := RecipSum(lat, diel, gamma, encut, origin)
	steps := 2
	for math.Abs(math.Abs(real(cur))-math.Abs(real(prev))) > tol {
		if encut+stepEncut > O.Encut() {
			return Sum{Value: real(cur), Steps: steps}, encut, math.Abs(imag(cur))
		}
		encut += stepEncut
		prev = cur
		cur = RecipSum(lat, diel, gamma, encut, origin)
		steps++
	}
	return Sum{Value: real(cur), Steps: steps, Converged: true}, encut, math.Abs(imag(cur))
}

/*
 * energy.go, part of defcorr.
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
	"github.com/rmera/defcorr"
)

// PCEnergy returns the point-charge correction energy, in eV, of a charge q
// (in units of the electron charge) in the lattice lat, screened by diel:
// the electrostatic energy of the charge with its periodic images and the
// neutralizing background, with the sign that corrects the defect formation energy.
// grid must have been built for the same lattice, dielectric and gamma.
func PCEnergy(lat *defcorr.Lattice, grid *Grid, diel *defcorr.Dielectric, q, gamma float64, opts *Options) (float64, error) {
	O := orDefault(opts)
	r := RealSum(lat, diel, [3]float64{}, q, gamma, O.Tolerance(), O.MaxShell())
	if !r.Converged {
		return 0, defcorr.NewError(defcorr.ErrConvergence, "PCEnergy", "real-space sum not converged after %d shells", r.Steps)
	}
	recip := q * grid.Origin()
	self := selfTerm(lat, q, gamma)
	surf := surfaceTerm(diel, q, gamma)
	O.Logger().Printf("point charge energy terms (Hartree): real %.6f reciprocal %.6f self %.6f surface %.6f", r.Value, recip, self, surf)
	return -q * 0.5 * defcorr.Hart2EV * (r.Value + recip - self - surf), nil
}

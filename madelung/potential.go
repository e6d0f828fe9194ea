/*
 * potential.go, part of defcorr.
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

// PotentialAt returns the potential, in V, created at the point r (cartesian, in A,
// relative to the charge) by a charge q, all its periodic images and the neutralizing
// background, screened by diel. The reciprocal part is read from grid at the grid
// point closest to r. r can't be the charge position or one of its images.
func PotentialAt(lat *defcorr.Lattice, grid *Grid, diel *defcorr.Dielectric, r [3]float64, q, gamma float64, opts *Options) (float64, error) {
	O := orDefault(opts)
	m := lat.MinImageFrac(r)
	if math.Sqrt(m[0]*m[0]+m[1]*m[1]+m[2]*m[2]) < 1e-6 {
		return 0, defcorr.NewError(defcorr.ErrGeometry, "PotentialAt", "the potential is undefined at the position of the charge %v", r)
	}
	rs := RealSum(lat, diel, r, q, gamma, O.Tolerance(), O.MaxShell())
	if !rs.Converged {
		return 0, defcorr.NewError(defcorr.ErrConvergence, "PotentialAt", "real-space sum at %v not converged after %d shells", r, rs.Steps)
	}
	recip := q * grid.AtCart(lat, r)
	return defcorr.Hart2EV * (rs.Value + recip - selfTerm(lat, q, gamma)), nil
}

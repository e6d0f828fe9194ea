/*
 * bulk.go, part of defcorr.
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

// Bulk contains everything about the host crystal that the correction needs and
// that does not depend on the defect: the lattice, the dielectric tensor, the Ewald
// parameter and the reciprocal potential grid. It is computed once and can then
// be shared by the corrections of several defects and charge states on the same host.
type Bulk struct {
	lat   *defcorr.Lattice
	diel  *defcorr.Dielectric
	gamma float64
	grid  *Grid
	opts  *Options
}

// NewBulk finds gamma (unless opts has a fixed one) and builds the reciprocal
// grid with dims points along each lattice vector. dims should be the dimensions
// of the grid of the potential data used for the alignment.
func NewBulk(lat *defcorr.Lattice, diel *defcorr.Dielectric, dims [3]int, opts *Options) (*Bulk, error) {
	O := orDefault(opts)
	if lat == nil || diel == nil {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "NewBulk", "nil lattice or dielectric tensor")
	}
	B := &Bulk{lat: lat, diel: diel, opts: O}
	var err error
	B.gamma = O.Gamma()
	if B.gamma <= 0 {
		B.gamma, err = FindGamma(lat, diel, O)
		if err != nil {
			return nil, defcorr.ErrDecorate(err, "NewBulk")
		}
	}
	O.Logger().Printf("using gamma = %.6f 1/Bohr", B.gamma)
	B.grid, err = BuildGrid(lat, diel, B.gamma, dims, O)
	if err != nil {
		return nil, defcorr.ErrDecorate(err, "NewBulk")
	}
	return B, nil
}

// Lattice returns the lattice of the host.
func (B *Bulk) Lattice() *defcorr.Lattice { return B.lat }

// Dielectric returns the dielectric tensor of the host.
func (B *Bulk) Dielectric() *defcorr.Dielectric { return B.diel }

// Gamma returns the Ewald parameter, in 1/Bohr.
func (B *Bulk) Gamma() float64 { return B.gamma }

// Grid returns the reciprocal potential grid.
func (B *Bulk) Grid() *Grid { return B.grid }

// Options returns the options the bulk was built with.
func (B *Bulk) Options() *Options { return B.opts }

// PCEnergy returns the point-charge correction, in eV, for a defect of charge q.
func (B *Bulk) PCEnergy(q float64) (float64, error) {
	e, err := PCEnergy(B.lat, B.grid, B.diel, q, B.gamma, B.opts)
	return e, defcorr.ErrDecorate(err, "Bulk.PCEnergy")
}

// PotentialAt returns the potential, in V, of a charge q and its images at the
// displacement r, in A, from the charge.
func (B *Bulk) PotentialAt(r [3]float64, q float64) (float64, error) {
	v, err := PotentialAt(B.lat, B.grid, B.diel, r, q, B.gamma, B.opts)
	return v, defcorr.ErrDecorate(err, "Bulk.PotentialAt")
}

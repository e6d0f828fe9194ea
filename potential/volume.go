/*
 * volume.go, part of defcorr.
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

package potential

import (
	"github.com/rmera/defcorr"
)

// Volume is a scalar field (an electrostatic potential, in V) sampled on a regular
// grid over the cell of a structure. Point (i,j,k) has fractional coordinates
// (i/N1, j/N2, k/N3). Data is stored with the first index running fastest, as
// in VASP volumetric files.
type Volume struct {
	Structure *defcorr.Structure
	Dims      [3]int
	Data      []float64
}

// NewVolume returns a Volume, checking that the data matches the dimensions.
func NewVolume(s *defcorr.Structure, dims [3]int, data []float64) (*Volume, error) {
	if s == nil {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "NewVolume", "nil structure")
	}
	n := dims[0] * dims[1] * dims[2]
	if dims[0] < 1 || dims[1] < 1 || dims[2] < 1 || n != len(data) {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "NewVolume", "%d values for a %dx%dx%d grid", len(data), dims[0], dims[1], dims[2])
	}
	return &Volume{Structure: s, Dims: dims, Data: data}, nil
}

// At returns the value at the grid point (i,j,k). The indexes must be in range.
func (V *Volume) At(i, j, k int) float64 {
	return V.Data[i+V.Dims[0]*(j+V.Dims[1]*k)]
}

// Len returns the number of grid points.
func (V *Volume) Len() int {
	return len(V.Data)
}

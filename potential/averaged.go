/*
 * averaged.go, part of defcorr.
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

// Averaged holds site potentials already averaged by the program that computed
// them, such as the "average (electrostatic) potential at core" of VASP.
type Averaged struct {
	Values []float64
	Dims   [3]int             //dimensions of the grid the averages were taken on
	Radii  map[string]float64 //sampling radius per species, if known
}

// SitePotentials returns the stored values. It fails if their number differs from
// the number of sites in s.
func (A *Averaged) SitePotentials(s *defcorr.Structure) (*defcorr.SitePotentials, error) {
	if s == nil || len(A.Values) != s.Len() {
		n := 0
		if s != nil {
			n = s.Len()
		}
		return nil, defcorr.NewError(defcorr.ErrInputShape, "Averaged.SitePotentials", "%d potentials for %d sites", len(A.Values), n)
	}
	ret := &defcorr.SitePotentials{Values: make([]float64, len(A.Values)), Dims: A.Dims, Radii: A.Radii}
	copy(ret.Values, A.Values)
	return ret, nil
}

/*
 * volumetric.go, part of defcorr.
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
	"gonum.org/v1/gonum/stat"
)

// DefaultRadius is the radius, in A, of the sphere averaged around sites of species
// without an explicit radius.
const DefaultRadius = 1.0

// Volumetric obtains site potentials by averaging a volumetric potential over all
// the grid points within a sphere around each site. The radius of the sphere
// depends on the species of the site.
type Volumetric struct {
	vol   *Volume
	radii map[string]float64
}

// NewVolumetric returns a Volumetric source for vol. radii gives the sphere radius
// for each species, in A. Species not in radii (or a nil map) use DefaultRadius.
func NewVolumetric(vol *Volume, radii map[string]float64) (*Volumetric, error) {
	if vol == nil {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "NewVolumetric", "nil volume")
	}
	if n := vol.Dims[0] * vol.Dims[1] * vol.Dims[2]; n != len(vol.Data) || n == 0 {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "NewVolumetric", "%d values for a %v grid", len(vol.Data), vol.Dims)
	}
	r := make(map[string]float64, len(radii))
	for k, v := range radii {
		r[k] = v
	}
	return &Volumetric{vol: vol, radii: r}, nil
}

// Radius returns the sampling radius for the species sp.
func (V *Volumetric) Radius(sp string) float64 {
	if r, ok := V.radii[sp]; ok {
		return r
	}
	return DefaultRadius
}

// Dims returns the dimensions of the underlying grid.
func (V *Volumetric) Dims() [3]int {
	return V.vol.Dims
}

// SitePotentials returns the potential averaged around each site of s. s is
// expected to be the structure the volume was computed for. If the volume
// has its own structure, both must have the same number of sites.
func (V *Volumetric) SitePotentials(s *defcorr.Structure) (*defcorr.SitePotentials, error) {
	if s == nil {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "Volumetric.SitePotentials", "nil structure")
	}
	lat := s.Lattice
	if V.vol.Structure != nil {
		if V.vol.Structure.Len() != s.Len() {
			return nil, defcorr.NewError(defcorr.ErrInputShape, "Volumetric.SitePotentials", "volume for %d sites, structure with %d", V.vol.Structure.Len(), s.Len())
		}
		lat = V.vol.Structure.Lattice
	}
	ret := &defcorr.SitePotentials{Values: make([]float64, s.Len()), Dims: V.vol.Dims, Radii: make(map[string]float64)}
	samples := make([]float64, 0, 64)
	for i := 0; i < s.Len(); i++ {
		sp := s.Symbol(i)
		rad := V.Radius(sp)
		ret.Radii[sp] = rad
		samples = samples[:0]
		for _, p := range lat.GridSphere(s.Frac(i), V.vol.Dims, rad) {
			samples = append(samples, V.vol.At(p[0], p[1], p[2]))
		}
		ret.Values[i] = stat.Mean(samples, nil)
	}
	return ret, nil
}

/*
 * interfaces.go, part of defcorr.
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

// Atomer is the basic interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i.
	//Should panic if out of range.
	Atom(i int) *Atom

	Len() int
}

// PotentialSource supplies the electrostatic potential at each site of a structure.
// The potential may come from a volumetric grid, averaged around each site, or
// from values already averaged by the program that produced them.
type PotentialSource interface {
	SitePotentials(s *Structure) (*SitePotentials, error)
}

// SitePotentials holds one electrostatic potential (in V) per site of a structure,
// in the same order as the structure's sites, plus the grid dimensions used to sample them.
type SitePotentials struct {
	Values []float64
	Dims   [3]int
	Radii  map[string]float64 //sampling radius per species, in A. May be nil.
}

//Errors

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the "decoration" slice resulting from the current call. An empty string only returns the current value.
	Critical() bool
}

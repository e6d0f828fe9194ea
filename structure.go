/*
 * structure.go, part of defcorr.
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

import (
	"fmt"

	v3 "github.com/rmera/defcorr/v3"
	"golang.org/x/exp/slices"
)

// Atom contains the information of one site of a structure, except for the
// coordinates, which will be in a matrix.
type Atom struct {
	Name   string
	Id     int
	Symbol string
	Charge float64 //oxidation state, if known.
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

// Structure is a periodic crystal structure: a lattice, and a set of atoms with
// cartesian coordinates, in A. The coordinates of atom i are the ith vector of Coords.
type Structure struct {
	Atoms   []*Atom
	Coords  *v3.Matrix
	Lattice *Lattice
}

// NewStructure returns a structure with the given lattice, with one atom of each
// symbol in symbols, with cartesian coordinates coords.
func NewStructure(lat *Lattice, symbols []string, coords *v3.Matrix) (*Structure, error) {
	if lat == nil || coords == nil {
		return nil, NewError(ErrInputShape, "NewStructure", "nil lattice or coordinates")
	}
	if coords.NVecs() != len(symbols) {
		return nil, NewError(ErrInputShape, "NewStructure", "%d symbols but %d coordinates", len(symbols), coords.NVecs())
	}
	S := &Structure{Lattice: lat, Coords: v3.Zeros(coords.NVecs())}
	S.Coords.Copy(coords)
	S.Atoms = make([]*Atom, len(symbols))
	for i, s := range symbols {
		S.Atoms[i] = &Atom{Name: s, Id: i + 1, Symbol: s}
	}
	return S, nil
}

// NewStructureFrac is like NewStructure, but takes fractional coordinates.
func NewStructureFrac(lat *Lattice, symbols []string, frac *v3.Matrix) (*Structure, error) {
	if lat == nil || frac == nil {
		return nil, NewError(ErrInputShape, "NewStructureFrac", "nil lattice or coordinates")
	}
	cart := v3.Zeros(frac.NVecs())
	for i := 0; i < frac.NVecs(); i++ {
		cart.SetVec(i, lat.Cart(frac.Vec(i)))
	}
	S, err := NewStructure(lat, symbols, cart)
	return S, ErrDecorate(err, "NewStructureFrac")
}

// Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

// Atom returns the Atom corresponding to the index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() || i < 0 {
		panic(fmt.Sprintf("Structure: Requested Atom %d out of bounds", i))
	}
	return S.Atoms[i]
}

// Symbol returns the chemical symbol of the ith site.
func (S *Structure) Symbol(i int) string {
	return S.Atom(i).Symbol
}

// Coord returns the cartesian coordinates of the ith site, in A.
func (S *Structure) Coord(i int) [3]float64 {
	return S.Coords.Vec(i)
}

// Frac returns the fractional coordinates of the ith site.
func (S *Structure) Frac(i int) [3]float64 {
	return S.Lattice.Frac(S.Coords.Vec(i))
}

// Species returns the different chemical symbols present in the structure, sorted.
func (S *Structure) Species() []string {
	ret := make([]string, 0, 4)
	for _, a := range S.Atoms {
		if !slices.Contains(ret, a.Symbol) {
			ret = append(ret, a.Symbol)
		}
	}
	slices.Sort(ret)
	return ret
}

// SpeciesOrder returns the chemical symbols in a, in order of first appearance.
// This is the order VASP uses for per-species data.
func SpeciesOrder(a Atomer) []string {
	ret := make([]string, 0, 4)
	for i := 0; i < a.Len(); i++ {
		if sym := a.Atom(i).Symbol; !slices.Contains(ret, sym) {
			ret = append(ret, sym)
		}
	}
	return ret
}

// Copy returns a deep copy of the structure. The lattice, which is immutable, is shared.
func (S *Structure) Copy() *Structure {
	ret := &Structure{Lattice: S.Lattice, Coords: v3.Zeros(S.Len())}
	ret.Coords.Copy(S.Coords)
	ret.Atoms = make([]*Atom, S.Len())
	for i, a := range S.Atoms {
		ret.Atoms[i] = a.Copy()
	}
	return ret
}

// DelSite returns a copy of the structure without the ith site (i.e. with a vacancy).
func (S *Structure) DelSite(i int) *Structure {
	if i < 0 || i >= S.Len() {
		panic(fmt.Sprintf("Structure: Tried to delete site %d out of bounds", i))
	}
	ret := &Structure{Lattice: S.Lattice, Coords: v3.Zeros(S.Len() - 1)}
	ret.Coords.DelVec(S.Coords, i)
	ret.Atoms = make([]*Atom, 0, S.Len()-1)
	for j, a := range S.Atoms {
		if j != i {
			ret.Atoms = append(ret.Atoms, a.Copy())
		}
	}
	return ret
}

// AddSite returns a copy of the structure with an extra site (i.e. an interstitial)
// of the given symbol, at the cartesian coordinates coord.
func (S *Structure) AddSite(symbol string, coord [3]float64) *Structure {
	ret := &Structure{Lattice: S.Lattice, Coords: v3.Zeros(S.Len() + 1)}
	for i := 0; i < S.Len(); i++ {
		ret.Coords.SetVec(i, S.Coords.Vec(i))
	}
	ret.Coords.SetVec(S.Len(), coord)
	ret.Atoms = make([]*Atom, 0, S.Len()+1)
	for _, a := range S.Atoms {
		ret.Atoms = append(ret.Atoms, a.Copy())
	}
	ret.Atoms = append(ret.Atoms, &Atom{Name: symbol, Id: S.Len() + 1, Symbol: symbol})
	return ret
}

// Substitute returns a copy of the structure where the ith site has the symbol symbol.
func (S *Structure) Substitute(i int, symbol string) *Structure {
	ret := S.Copy()
	ret.Atom(i).Symbol = symbol
	ret.Atom(i).Name = symbol
	return ret
}

// Supercell returns the n1 x n2 x n3 supercell of the structure.
func (S *Structure) Supercell(n1, n2, n3 int) (*Structure, error) {
	if n1 < 1 || n2 < 1 || n3 < 1 {
		return nil, NewError(ErrInputShape, "Supercell", "invalid supercell %dx%dx%d", n1, n2, n3)
	}
	a := S.Lattice.Array()
	n := [3]float64{float64(n1), float64(n2), float64(n3)}
	var big [3][3]float64
	for i := range a {
		for j := range a[i] {
			big[i][j] = a[i][j] * n[i]
		}
	}
	lat, err := LatticeFromArrays(big[0], big[1], big[2])
	if err != nil {
		return nil, ErrDecorate(err, "Supercell")
	}
	total := S.Len() * n1 * n2 * n3
	coords := v3.Zeros(total)
	symbols := make([]string, 0, total)
	c := 0
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			for k := 0; k < n3; k++ {
				for at := 0; at < S.Len(); at++ {
					p := S.Coord(at)
					for x := 0; x < 3; x++ {
						p[x] += float64(i)*a[0][x] + float64(j)*a[1][x] + float64(k)*a[2][x]
					}
					coords.SetVec(c, p)
					symbols = append(symbols, S.Symbol(at))
					c++
				}
			}
		}
	}
	ret, err := NewStructure(lat, symbols, coords)
	return ret, ErrDecorate(err, "Supercell")
}

/*
 * poscar.go, part of defcorr.
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

package vasp

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rmera/defcorr"
	v3 "github.com/rmera/defcorr/v3"
)

// ReadPoscar reads a structure from a POSCAR or CONTCAR file.
func ReadPoscar(name string) (*defcorr.Structure, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := parsePoscar(newLines(f, name))
	return s, defcorr.ErrDecorate(err, "ReadPoscar")
}

// ParsePoscar reads a structure in POSCAR format from r.
func ParsePoscar(r io.Reader) (*defcorr.Structure, error) {
	s, err := parsePoscar(newLines(r, "POSCAR"))
	return s, defcorr.ErrDecorate(err, "ParsePoscar")
}

func parseFloats(L *lines, caller string, f []string, n int) ([]float64, error) {
	if len(f) < n {
		return nil, L.errorf(caller, "expected %d numbers, found %d fields", n, len(f))
	}
	ret := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		ret[i], err = strconv.ParseFloat(f[i], 64)
		if err != nil {
			return nil, L.errorf(caller, "%s", err.Error())
		}
	}
	return ret, nil
}

// parsePoscar reads a POSCAR-format header and coordinates block. VASP 4 files,
// without the line of species names, take the species from the comment line.
func parsePoscar(L *lines) (*defcorr.Structure, error) {
	const caller = "parsePoscar"
	comment, err := L.next()
	if err != nil {
		return nil, L.errorf(caller, "empty file")
	}
	f, err := L.nextFields()
	if err != nil {
		return nil, L.errorf(caller, "no scaling factor")
	}
	sc, err := parseFloats(L, caller, f, 1)
	if err != nil {
		return nil, err
	}
	scale := sc[0]
	var vecs [3][3]float64
	for i := 0; i < 3; i++ {
		f, err = L.nextFields()
		if err != nil {
			return nil, L.errorf(caller, "missing lattice vector %d", i+1)
		}
		v, err := parseFloats(L, caller, f, 3)
		if err != nil {
			return nil, err
		}
		copy(vecs[i][:], v)
	}
	if scale < 0 {
		//a negative scale is the volume of the cell
		vol := math.Abs(v3.Dot(vecs[0], v3.Cross(vecs[1], vecs[2])))
		scale = math.Cbrt(-scale / vol)
	}
	for i := range vecs {
		for j := range vecs[i] {
			vecs[i][j] *= scale
		}
	}
	lat, err := defcorr.LatticeFromArrays(vecs[0], vecs[1], vecs[2])
	if err != nil {
		return nil, defcorr.ErrDecorate(err, caller)
	}
	f, err = L.nextFields()
	if err != nil {
		return nil, L.errorf(caller, "missing species counts")
	}
	var species []string
	if _, err := strconv.Atoi(f[0]); err != nil {
		species = f
		f, err = L.nextFields()
		if err != nil {
			return nil, L.errorf(caller, "missing species counts")
		}
	}
	counts := make([]int, len(f))
	total := 0
	for i, c := range f {
		counts[i], err = strconv.Atoi(c)
		if err != nil {
			return nil, L.errorf(caller, "bad species count %q", c)
		}
		total += counts[i]
	}
	if species == nil {
		species = strings.Fields(comment)
	}
	if len(species) < len(counts) {
		return nil, L.errorf(caller, "%d species counts but only %d species names", len(counts), len(species))
	}
	f, err = L.nextFields()
	if err != nil {
		return nil, L.errorf(caller, "missing coordinate mode")
	}
	if strings.HasPrefix(strings.ToLower(f[0]), "s") {
		//selective dynamics
		f, err = L.nextFields()
		if err != nil {
			return nil, L.errorf(caller, "missing coordinate mode")
		}
	}
	mode := strings.ToLower(f[0])[0]
	cartesian := mode == 'c' || mode == 'k'
	symbols := make([]string, 0, total)
	for i, c := range counts {
		for j := 0; j < c; j++ {
			symbols = append(symbols, species[i])
		}
	}
	coords := v3.Zeros(total)
	for i := 0; i < total; i++ {
		f, err = L.nextFields()
		if err != nil {
			return nil, L.errorf(caller, "expected %d sites, found %d", total, i)
		}
		c, err := parseFloats(L, caller, f, 3)
		if err != nil {
			return nil, err
		}
		if cartesian {
			c[0], c[1], c[2] = c[0]*scale, c[1]*scale, c[2]*scale
		}
		coords.SetVec(i, [3]float64{c[0], c[1], c[2]})
	}
	if cartesian {
		return defcorr.NewStructure(lat, symbols, coords)
	}
	return defcorr.NewStructureFrac(lat, symbols, coords)
}

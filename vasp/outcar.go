/*
 * outcar.go, part of defcorr.
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
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/potential"
)

var (
	ngxfRe = regexp.MustCompile(`NGXF=\s*(\d+)\s+NGYF=\s*(\d+)\s+NGZF=\s*(\d+)`)
	//VASP glues the columns together when the potential has 3 integer digits.
	corePotRe = regexp.MustCompile(`(\d+)\s*(-?\d+\.\d+)`)
)

const corePotHeader = "average (electrostatic) potential at core"

// ReadOutcar reads the site-averaged electrostatic potentials printed by VASP in the
// OUTCAR file name, and the dimensions of the fine FFT grid. If the file contains
// several sets of potentials, the last one is returned. species, if given, are the
// names of the species in the order of the POTCAR. They are used to label the
// sampling radii.
func ReadOutcar(name string, species ...string) (*potential.Averaged, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := parseOutcar(newLines(f, name), species)
	return a, defcorr.ErrDecorate(err, "ReadOutcar")
}

// ParseOutcar is like ReadOutcar, but reads from r.
func ParseOutcar(r io.Reader, species ...string) (*potential.Averaged, error) {
	a, err := parseOutcar(newLines(r, "OUTCAR"), species)
	return a, defcorr.ErrDecorate(err, "ParseOutcar")
}

func parseOutcar(L *lines, species []string) (*potential.Averaged, error) {
	const caller = "parseOutcar"
	var dims [3]int
	var radii []float64
	var values []float64
	found := false
	for {
		s, err := L.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, defcorr.ErrDecorate(err, caller)
		}
		if m := ngxfRe.FindStringSubmatch(s); m != nil {
			for i := 0; i < 3; i++ {
				dims[i], _ = strconv.Atoi(m[i+1])
			}
			continue
		}
		if !strings.Contains(s, corePotHeader) {
			continue
		}
		found = true
		radii, values, err = corePotentials(L)
		if err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, L.errorf(caller, "no %q block found", corePotHeader)
	}
	if dims[0] == 0 {
		return nil, L.errorf(caller, "NGXF grid dimensions not found")
	}
	ret := &potential.Averaged{Values: values, Dims: dims}
	if len(species) > 0 {
		if len(species) != len(radii) {
			return nil, L.errorf(caller, "%d species given, but %d sampling radii in the file", len(species), len(radii))
		}
		ret.Radii = make(map[string]float64, len(species))
		for i, sp := range species {
			ret.Radii[sp] = radii[i]
		}
	}
	return ret, nil
}

// corePotentials reads one block of site potentials, right after its header,
// up to the first empty line.
func corePotentials(L *lines) ([]float64, []float64, error) {
	const caller = "corePotentials"
	var radii []float64
	values := make([]float64, 0, 64)
	for {
		s, err := L.next()
		if err != nil || strings.TrimSpace(s) == "" {
			break
		}
		if strings.Contains(s, "radii are") {
			for _, f := range strings.Fields(s[strings.Index(s, "radii are")+len("radii are"):]) {
				r, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, nil, L.errorf(caller, "bad sampling radius %q", f)
				}
				radii = append(radii, r)
			}
			continue
		}
		if strings.Contains(s, "norm of the test charge") {
			continue
		}
		for _, m := range corePotRe.FindAllStringSubmatch(s, -1) {
			idx, _ := strconv.Atoi(m[1])
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, nil, L.errorf(caller, "%s", err.Error())
			}
			if idx != len(values)+1 {
				return nil, nil, L.errorf(caller, "expected site %d, found %d", len(values)+1, idx)
			}
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, nil, L.errorf(caller, "empty block of site potentials")
	}
	return radii, values, nil
}

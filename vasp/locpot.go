/*
 * locpot.go, part of defcorr.
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
	"strconv"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/potential"
)

// ReadLocpot reads the structure and the volumetric potential of a LOCPOT file.
// Only the first data set is read.
func ReadLocpot(name string) (*potential.Volume, error) {
	f, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := parseLocpot(newLines(f, name))
	return v, defcorr.ErrDecorate(err, "ReadLocpot")
}

// ParseLocpot reads a volumetric potential in LOCPOT format from r.
func ParseLocpot(r io.Reader) (*potential.Volume, error) {
	v, err := parseLocpot(newLines(r, "LOCPOT"))
	return v, defcorr.ErrDecorate(err, "ParseLocpot")
}

func parseLocpot(L *lines) (*potential.Volume, error) {
	const caller = "parseLocpot"
	s, err := parsePoscar(L)
	if err != nil {
		return nil, defcorr.ErrDecorate(err, caller)
	}
	f, err := L.nextFields()
	if err != nil || len(f) < 3 {
		return nil, L.errorf(caller, "missing grid dimensions")
	}
	var dims [3]int
	for i := 0; i < 3; i++ {
		dims[i], err = strconv.Atoi(f[i])
		if err != nil || dims[i] < 1 {
			return nil, L.errorf(caller, "bad grid dimension %q", f[i])
		}
	}
	n := dims[0] * dims[1] * dims[2]
	data := make([]float64, 0, n)
	for len(data) < n {
		f, err = L.nextFields()
		if err != nil {
			return nil, L.errorf(caller, "expected %d values, found %d", n, len(data))
		}
		for _, v := range f {
			if len(data) == n {
				break
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, L.errorf(caller, "%s", err.Error())
			}
			data = append(data, x)
		}
	}
	vol, err := potential.NewVolume(s, dims, data)
	return vol, defcorr.ErrDecorate(err, caller)
}

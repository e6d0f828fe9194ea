/*
 * report.go, part of defcorr.
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

package kumagai

import (
	"encoding/json"
	"io"

	"github.com/rmera/defcorr"
)

// Report is the per-site table of a potential alignment, ready to be serialized
// for external plotting.
type Report struct {
	Defect   string           `json:"defect"`
	Position [3]float64       `json:"position"`
	Charge   float64          `json:"charge"`
	Sites    []SiteDiagnostic `json:"sites"`
	WSRadius float64          `json:"ws_radius"`
	PotAlign float64          `json:"pot_align"` //mean Vqb-Vpc outside the Wigner-Seitz radius, V
	Lengths  [3]float64       `json:"lengths"`
}

// WriteJSON writes the report to w as indented JSON.
func (R *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(R); err != nil {
		return defcorr.ErrDecorate(err, "WriteJSON")
	}
	return nil
}

// ReadReport reads a report written by WriteJSON.
func ReadReport(r io.Reader) (*Report, error) {
	R := new(Report)
	if err := json.NewDecoder(r).Decode(R); err != nil {
		return nil, defcorr.ErrDecorate(err, "ReadReport")
	}
	return R, nil
}

// Species returns the diagnostics of the sites of species sp.
func (R *Report) Species(sp string) []SiteDiagnostic {
	ret := make([]SiteDiagnostic, 0, len(R.Sites))
	for _, s := range R.Sites {
		if s.Species == sp {
			ret = append(ret, s)
		}
	}
	return ret
}

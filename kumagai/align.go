/*
 * align.go, part of defcorr.
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
	"log"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/sites"
	"gonum.org/v1/gonum/stat"
)

// MaxAnisotropy is the largest difference between lattice vector lengths, in percent of
// the shortest one, for which sampling outside a sphere is considered reliable.
const MaxAnisotropy = 45.0

// Field is the potential of a model point charge and its periodic images, at a
// displacement r (cartesian, A) from the charge. *madelung.Bulk implements it.
type Field interface {
	PotentialAt(r [3]float64, q float64) (float64, error)
}

// SiteDiagnostic contains the potentials at one site.
type SiteDiagnostic struct {
	BulkIndex   int        `json:"bulk_index"`
	DefectIndex int        `json:"defect_index"`
	Species     string     `json:"species"`
	Frac        [3]float64 `json:"frac"`
	Distance    float64    `json:"distance"`
	Vqb         float64    `json:"vqb"` //minus the difference between the defect and bulk potentials, V
	Vpc         float64    `json:"vpc"` //potential of the model point charge, V
	Outside     bool       `json:"outside"`
	Flagged     bool       `json:"flagged"`
}

// Alignment is the result of the potential alignment.
type Alignment struct {
	Energy   float64 //-q times Mean, eV
	Mean     float64 //mean of Vqb-Vpc over the sites outside the sampling radius, V
	WSRadius float64
	Outside  int //sites used for the mean
	Sites    []SiteDiagnostic
}

// Align computes the potential alignment term from the sites farther than wsRadius
// from the defect: -q times the mean of Vqb-Vpc, where Vqb is minus the difference
// between the defect-cell and bulk potentials at the site, and Vpc the potential of
// the model charge q, given by field. If all is true, the potentials are computed
// and returned for every site, not only the outside ones. Flagged records are
// skipped if skipFlagged is true. It fails if no site is outside wsRadius.
func Align(records []sites.Record, wsRadius float64, bulkPot, defPot []float64, field Field, q float64, all, skipFlagged bool) (*Alignment, error) {
	A := &Alignment{WSRadius: wsRadius, Sites: make([]SiteDiagnostic, 0, len(records))}
	diffs := make([]float64, 0, len(records))
	for _, r := range records {
		if skipFlagged && r.Flagged {
			continue
		}
		d := SiteDiagnostic{
			BulkIndex:   r.BulkIndex,
			DefectIndex: r.DefectIndex,
			Species:     r.Species,
			Frac:        r.Frac,
			Distance:    r.Distance,
			Outside:     r.Distance > wsRadius,
			Flagged:     r.Flagged,
		}
		if !d.Outside && !all {
			continue
		}
		if r.BulkIndex < 0 || r.BulkIndex >= len(bulkPot) || r.DefectIndex < 0 || r.DefectIndex >= len(defPot) {
			return nil, defcorr.NewError(defcorr.ErrInputShape, "Align", "site %d/%d out of range for %d bulk and %d defect potentials", r.BulkIndex, r.DefectIndex, len(bulkPot), len(defPot))
		}
		d.Vqb = -(defPot[r.DefectIndex] - bulkPot[r.BulkIndex])
		var err error
		d.Vpc, err = field.PotentialAt(r.Displacement, q)
		if err != nil {
			return nil, defcorr.ErrDecorate(err, "Align")
		}
		if d.Outside {
			diffs = append(diffs, d.Vqb-d.Vpc)
		}
		A.Sites = append(A.Sites, d)
	}
	if len(diffs) == 0 {
		return nil, defcorr.NewError(defcorr.ErrInsufficientSampling, "Align", "no site farther than %.4f A from the defect, among %d", wsRadius, len(records))
	}
	A.Outside = len(diffs)
	A.Mean = stat.Mean(diffs, nil)
	A.Energy = -q * A.Mean
	return A, nil
}

// CheckAnisotropy logs a warning and returns false if the lengths of the lattice
// vectors of lat differ by more than MaxAnisotropy percent.
func CheckAnisotropy(lat *defcorr.Lattice, logger *log.Logger) bool {
	for _, v := range lat.Anisotropy() {
		if v > MaxAnisotropy {
			logger.Printf("Warning: cell lengths %v differ by more than %.0f%%. Sampling outside the Wigner-Seitz radius may not be optimal", lat.Abc(), MaxAnisotropy)
			return false
		}
	}
	return true
}

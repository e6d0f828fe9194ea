/*
 * correction.go, part of defcorr.
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
	"fmt"
	"math"
	"strings"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/madelung"
	"github.com/rmera/defcorr/sites"
)

// Part selects which terms of the correction are computed.
type Part int

const (
	PC       Part = iota //point charge term only
	PotAlign             //potential alignment term only
	All                  //the sum of both
	AllSplit             //both terms and their sum
)

var partNames = [...]string{"PC", "PotAlign", "All", "AllSplit"}

func (P Part) String() string {
	if P < PC || P > AllSplit {
		return fmt.Sprintf("Part(%d)", int(P))
	}
	return partNames[P]
}

// ParsePart returns the Part named s (case-insensitive).
func ParsePart(s string) (Part, error) {
	for _, p := range []Part{PC, PotAlign, All, AllSplit} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, defcorr.NewError(defcorr.ErrInputShape, "ParsePart", "unknown correction part %q", s)
}

// Result contains the terms of a correction, in eV, rounded to 5 decimals.
// Terms not computed are 0.
type Result struct {
	Part     Part
	PC       float64
	PotAlign float64
	Total    float64
}

// Value returns the term selected by R.Part. For All and AllSplit, that is the total.
func (R Result) Value() float64 {
	switch R.Part {
	case PC:
		return R.PC
	case PotAlign:
		return R.PotAlign
	}
	return R.Total
}

func round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}

// Correction computes the finite-size correction for one defect in one charge state.
type Correction struct {
	bulk       *madelung.Bulk
	q          float64
	bulkStruct *defcorr.Structure
	defStruct  *defcorr.Structure
	bulkSrc    defcorr.PotentialSource
	defSrc     defcorr.PotentialSource
	opts       *Options
	report     *Report
}

// New returns a correction for a defect of charge q. bulk contains the Madelung
// data of the host, bulkStruct and defStruct are the bulk and defect cells, and
// bulkSrc and defSrc give the electrostatic potentials at their sites.
// The potential sources are only needed for the alignment term.
func New(bulk *madelung.Bulk, q float64, bulkStruct, defStruct *defcorr.Structure, bulkSrc, defSrc defcorr.PotentialSource, opts *Options) (*Correction, error) {
	if bulk == nil || bulkStruct == nil || defStruct == nil {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "kumagai.New", "nil bulk data or structure")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Correction{bulk: bulk, q: q, bulkStruct: bulkStruct, defStruct: defStruct, bulkSrc: bulkSrc, defSrc: defSrc, opts: opts}, nil
}

// Charge returns the charge of the defect.
func (C *Correction) Charge() float64 {
	return C.q
}

// PC returns the point charge correction, in eV.
func (C *Correction) PC() (float64, error) {
	if C.q == 0 {
		return 0, nil
	}
	e, err := C.bulk.PCEnergy(C.q)
	if err != nil {
		return 0, defcorr.ErrDecorate(err, "Correction.PC")
	}
	C.opts.Logger().Printf("point charge correction: %.6f eV", e)
	return e, nil
}

// PotAlign returns the potential alignment correction, in eV, and keeps the
// per-site table, available afterwards from Report.
func (C *Correction) PotAlign() (float64, error) {
	if C.q == 0 {
		return 0, nil
	}
	const caller = "Correction.PotAlign"
	logger := C.opts.Logger()
	if C.bulkSrc == nil || C.defSrc == nil {
		return 0, defcorr.NewError(defcorr.ErrInputShape, caller, "potential sources are needed for the alignment")
	}
	lat := C.bulkStruct.Lattice
	CheckAnisotropy(lat, logger)
	M, err := sites.New(C.bulkStruct, C.defStruct, C.opts.Sites())
	if err != nil {
		return 0, defcorr.ErrDecorate(err, caller)
	}
	if n := M.Flagged(); n > 0 {
		logger.Printf("Warning: %d sites with inconsistent periodic images", n)
	}
	bulkPot, err := C.bulkSrc.SitePotentials(C.bulkStruct)
	if err != nil {
		return 0, defcorr.ErrDecorate(err, caller)
	}
	defPot, err := C.defSrc.SitePotentials(C.defStruct)
	if err != nil {
		return 0, defcorr.ErrDecorate(err, caller)
	}
	gdims := C.bulk.Grid().Dims()
	for _, d := range [][3]int{bulkPot.Dims, defPot.Dims} {
		if d != ([3]int{}) && d != gdims {
			return 0, defcorr.NewError(defcorr.ErrInputShape, caller, "potential grid %v does not match the Madelung grid %v", d, gdims)
		}
	}
	wsrad := lat.WignerSeitzRadius()
	logger.Printf("Wigner-Seitz radius: %.4f A", wsrad)
	A, err := Align(M.Records, wsrad, bulkPot.Values, defPot.Values, C.bulk, C.q, C.opts.AllSites(), C.opts.SkipFlagged())
	if err != nil {
		return 0, defcorr.ErrDecorate(err, caller)
	}
	logger.Printf("potential alignment: %.6f V from %d sites, correction %.6f eV", A.Mean, A.Outside, A.Energy)
	C.report = &Report{
		Defect:   M.Defect.Kind.String(),
		Position: M.Defect.Position,
		Charge:   C.q,
		Sites:    A.Sites,
		WSRadius: wsrad,
		PotAlign: A.Mean,
		Lengths:  lat.Abc(),
	}
	return A.Energy, nil
}

// Correction returns the terms selected by part. With a zero charge, nothing is
// computed and all terms are 0.
func (C *Correction) Correction(part Part) (Result, error) {
	R := Result{Part: part}
	if C.q == 0 {
		return R, nil
	}
	var err error
	if part != PotAlign {
		R.PC, err = C.PC()
		if err != nil {
			return R, defcorr.ErrDecorate(err, "Correction")
		}
	}
	if part != PC {
		R.PotAlign, err = C.PotAlign()
		if err != nil {
			return R, defcorr.ErrDecorate(err, "Correction")
		}
	}
	R.Total = round5(R.PC + R.PotAlign)
	R.PC = round5(R.PC)
	R.PotAlign = round5(R.PotAlign)
	C.opts.Logger().Printf("%s correction: PC %.5f eV, alignment %.5f eV, total %.5f eV", part, R.PC, R.PotAlign, R.Total)
	return R, nil
}

// Report returns the per-site table of the last potential alignment, or nil if
// the alignment has not been computed.
func (C *Correction) Report() *Report {
	return C.report
}

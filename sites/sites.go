/*
 * sites.go, part of defcorr.
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

package sites

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/rmera/defcorr"
	"golang.org/x/exp/slices"
)

// Kind is the type of point defect.
type Kind int

const (
	Vacancy Kind = iota
	Interstitial
	Substitution
)

func (K Kind) String() string {
	switch K {
	case Vacancy:
		return "vacancy"
	case Interstitial:
		return "interstitial"
	case Substitution:
		return "substitution"
	}
	return fmt.Sprintf("Kind(%d)", int(K))
}

// Defect describes the point defect that distinguishes a defect cell from its bulk cell.
type Defect struct {
	Kind        Kind
	BulkIndex   int        //index of the defect site in the bulk cell, -1 for interstitials
	DefectIndex int        //index of the defect site in the defect cell, -1 for vacancies
	Position    [3]float64 //cartesian, A
	Species     string     //the species removed (vacancy) or added (interstitial, substitution)
}

// Record relates one site of the bulk cell with its counterpart in the defect
// cell, and gives the position of the latter relative to the defect.
type Record struct {
	BulkIndex    int
	DefectIndex  int
	Species      string
	Coord        [3]float64 //cartesian coordinates of the site in the defect cell
	Frac         [3]float64
	Displacement [3]float64 //closest periodic image of the site, relative to the defect
	Distance     float64    //norm of Displacement
	Flagged      bool       //the 27-image search and the fractional minimum image disagree.
}

// Map is the result of matching a bulk cell with a defect cell.
type Map struct {
	Defect  Defect
	Records []Record //sorted by bulk index.
}

// Record returns the record for the bulk site bulkIndex and true, or an empty
// record and false if there is no such record (the defect site itself has none).
func (M *Map) Record(bulkIndex int) (Record, bool) {
	i, ok := slices.BinarySearchFunc(M.Records, bulkIndex, func(r Record, t int) int { return r.BulkIndex - t })
	if !ok {
		return Record{}, false
	}
	return M.Records[i], true
}

// Flagged returns the number of records with inconsistent periodic images.
func (M *Map) Flagged() int {
	n := 0
	for _, r := range M.Records {
		if r.Flagged {
			n++
		}
	}
	return n
}

// Options contains the tolerances used to match sites.
type Options struct {
	matchTolerance float64
	flagTolerance  float64
	logger         *log.Logger
}

// DefaultOptions returns options where a vacancy or interstitial must be at
// least 0.5 A away from any site of the other cell, and records are flagged
// when the two minimum image methods differ by more than 0.1 A.
func DefaultOptions() *Options {
	return &Options{matchTolerance: 0.5, flagTolerance: 0.1, logger: discard}
}

// MatchTolerance returns the smallest distance between a vacancy or interstitial
// and the closest site of the other cell, in A, and sets it to a new value, if given.
func (O *Options) MatchTolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] >= 0 {
		O.matchTolerance = t[0]
	}
	return O.matchTolerance
}

// FlagTolerance returns the tolerance for the image consistency check, in A,
// and sets it to a new value, if given.
func (O *Options) FlagTolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] > 0 {
		O.flagTolerance = t[0]
	}
	return O.flagTolerance
}

var discard = log.New(io.Discard, "", 0)

// Logger returns the logger for warnings, and sets it to a new value, if given.
func (O *Options) Logger(l ...*log.Logger) *log.Logger {
	if len(l) > 0 {
		O.logger = l[0]
	}
	if O.logger == nil {
		return discard
	}
	return O.logger
}

// Closest returns the index of the site of s closest to the cartesian point
// c, taking periodic images into account, and the distance. When several sites
// are equally close, the one with the lowest index is returned.
func Closest(s *defcorr.Structure, c [3]float64) (int, float64) {
	best := -1
	bestd := math.Inf(1)
	for i := 0; i < s.Len(); i++ {
		p := s.Coord(i)
		d := s.Lattice.NearestImage([3]float64{p[0] - c[0], p[1] - c[1], p[2] - c[2]}).Distance
		if d < bestd {
			best, bestd = i, d
		}
	}
	return best, bestd
}

// FindDefect locates the point defect that distinguishes defect from bulk.
// A defect cell with one site fewer than the bulk has a vacancy: the bulk site
// farthest from every defect-cell site. With one site more, it has an interstitial:
// the defect-cell site farthest from every bulk site. With the same number of
// sites, it must have exactly one site whose species differs from that of the
// closest bulk site.
func FindDefect(bulk, defect *defcorr.Structure, opts *Options) (Defect, error) {
	O := opts
	if O == nil {
		O = DefaultOptions()
	}
	nb, nd := bulk.Len(), defect.Len()
	switch nd - nb {
	case -1:
		i, d := farthest(bulk, defect)
		if d < O.MatchTolerance() {
			return Defect{}, defcorr.NewError(defcorr.ErrDefectNotFound, "FindDefect", "every bulk site has a defect-cell site within %.3f A", d)
		}
		return Defect{Kind: Vacancy, BulkIndex: i, DefectIndex: -1, Position: bulk.Coord(i), Species: bulk.Symbol(i)}, nil
	case 1:
		i, d := farthest(defect, bulk)
		if d < O.MatchTolerance() {
			return Defect{}, defcorr.NewError(defcorr.ErrDefectNotFound, "FindDefect", "every defect-cell site has a bulk site within %.3f A", d)
		}
		b, _ := Closest(bulk, defect.Coord(i))
		O.Logger().Printf("interstitial %s at %v, closest bulk site %d", defect.Symbol(i), defect.Coord(i), b)
		return Defect{Kind: Interstitial, BulkIndex: -1, DefectIndex: i, Position: defect.Coord(i), Species: defect.Symbol(i)}, nil
	case 0:
		found := make([]Defect, 0, 1)
		for i := 0; i < nd; i++ {
			b, _ := Closest(bulk, defect.Coord(i))
			if bulk.Symbol(b) != defect.Symbol(i) {
				found = append(found, Defect{Kind: Substitution, BulkIndex: b, DefectIndex: i, Position: defect.Coord(i), Species: defect.Symbol(i)})
			}
		}
		if len(found) != 1 {
			return Defect{}, defcorr.NewError(defcorr.ErrDefectNotFound, "FindDefect", "%d sites with changed species, expected 1", len(found))
		}
		return found[0], nil
	}
	return Defect{}, defcorr.NewError(defcorr.ErrDefectNotFound, "FindDefect", "the bulk cell has %d sites and the defect cell %d", nb, nd)
}

// farthest returns the site of a whose closest site in b is the farthest, and that distance.
func farthest(a, b *defcorr.Structure) (int, float64) {
	best := -1
	bestd := -1.0
	for i := 0; i < a.Len(); i++ {
		_, d := Closest(b, a.Coord(i))
		if d > bestd {
			best, bestd = i, d
		}
	}
	return best, bestd
}

// New matches the sites of bulk and defect and returns, for every site except the
// defect itself, the distance and displacement from the defect to the closest image
// of the site in the defect cell. The sites iterated are those of the larger cell.
func New(bulk, defect *defcorr.Structure, opts *Options) (*Map, error) {
	O := opts
	if O == nil {
		O = DefaultOptions()
	}
	if bulk == nil || defect == nil || bulk.Len() == 0 || defect.Len() == 0 {
		return nil, defcorr.NewError(defcorr.ErrInputShape, "sites.New", "empty structure")
	}
	def, err := FindDefect(bulk, defect, O)
	if err != nil {
		return nil, defcorr.ErrDecorate(err, "sites.New")
	}
	logger := O.Logger()
	logger.Printf("found a %s (%s) at %v", def.Kind, def.Species, def.Position)
	iter, fromBulk := bulk, true
	skip := def.BulkIndex
	if defect.Len() > bulk.Len() {
		iter, fromBulk = defect, false
		skip = def.DefectIndex
	}
	lat := defect.Lattice
	recs := make(map[int]Record, iter.Len())
	for i := 0; i < iter.Len(); i++ {
		if i == skip {
			continue
		}
		c := iter.Coord(i)
		bi, di := i, i
		if fromBulk {
			di, _ = Closest(defect, c)
		} else {
			bi, _ = Closest(bulk, c)
		}
		dc := defect.Coord(di)
		disp := [3]float64{dc[0] - def.Position[0], dc[1] - def.Position[1], dc[2] - def.Position[2]}
		img := lat.NearestImage(disp)
		m := lat.MinImageFrac(disp)
		alt := math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
		r := Record{
			BulkIndex:    bi,
			DefectIndex:  di,
			Species:      defect.Symbol(di),
			Coord:        dc,
			Frac:         defect.Frac(di),
			Displacement: img.Vector,
			Distance:     img.Distance,
			Flagged:      math.Abs(img.Distance-alt) > O.FlagTolerance(),
		}
		if r.Flagged {
			logger.Printf("Warning: image search for bulk site %d gives %.4f A, but the fractional minimum image gives %.4f A", bi, img.Distance, alt)
		}
		if _, ok := recs[bi]; ok {
			logger.Printf("Warning: bulk site %d matched twice, overwriting", bi)
		}
		recs[bi] = r
	}
	M := &Map{Defect: def, Records: make([]Record, 0, len(recs))}
	for _, r := range recs {
		M.Records = append(M.Records, r)
	}
	slices.SortFunc(M.Records, func(a, b Record) int { return a.BulkIndex - b.BulkIndex })
	return M, nil
}

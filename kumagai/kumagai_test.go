/*
 * kumagai_test.go, part of defcorr.
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
	"bytes"
	"log"
	"testing"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/madelung"
	"github.com/rmera/defcorr/potential"
	"github.com/rmera/defcorr/sites"
	v3 "github.com/rmera/defcorr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroField is a model charge with no potential anywhere.
type zeroField struct{}

func (zeroField) PotentialAt(r [3]float64, q float64) (float64, error) { return 0, nil }

func constant(n int, v float64) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = v
	}
	return ret
}

// scenario returns the 2x2x2 supercell of a simple cubic cell with a=4 A, the same
// cell with a vacancy at site 0, and the Madelung data for eps=10.
func scenario(Te *testing.T) (*defcorr.Structure, *defcorr.Structure, *madelung.Bulk) {
	unit, err := defcorr.NewStructure(defcorr.CubicLattice(4), []string{"Si"}, v3.FromArrays([3]float64{0, 0, 0}))
	require.NoError(Te, err)
	bulk, err := unit.Supercell(2, 2, 2)
	require.NoError(Te, err)
	diel, err := defcorr.NewDielectric(10)
	require.NoError(Te, err)
	B, err := madelung.NewBulk(bulk.Lattice, diel, [3]int{24, 24, 24}, nil)
	require.NoError(Te, err)
	return bulk, bulk.DelSite(0), B
}

func TestAlignInsufficientSampling(Te *testing.T) {
	recs := []sites.Record{
		{BulkIndex: 1, DefectIndex: 0, Distance: 2},
		{BulkIndex: 2, DefectIndex: 1, Distance: 3.5},
	}
	_, err := Align(recs, 4, constant(3, 1), constant(2, 1), zeroField{}, -2, true, false)
	assert.ErrorIs(Te, err, defcorr.ErrInsufficientSampling)
	_, err = Align(nil, 4, nil, nil, zeroField{}, -2, true, false)
	assert.ErrorIs(Te, err, defcorr.ErrInsufficientSampling)
	//the only outside site is flagged and skipped
	recs = append(recs, sites.Record{BulkIndex: 0, DefectIndex: 2, Distance: 5, Flagged: true})
	_, err = Align(recs, 4, constant(3, 1), constant(3, 1), zeroField{}, -2, true, true)
	assert.ErrorIs(Te, err, defcorr.ErrInsufficientSampling)
	A, err := Align(recs, 4, constant(3, 1), constant(3, 1), zeroField{}, -2, false, false)
	require.NoError(Te, err)
	assert.Equal(Te, 1, A.Outside)
	assert.Len(Te, A.Sites, 1)
}

// A cell where every site but the vacancy is within 1 A of it: nothing is left
// outside the Wigner-Seitz radius.
func TestCorrectionInsufficientSampling(Te *testing.T) {
	_, _, B := scenario(Te)
	lat := B.Lattice()
	bulk, err := defcorr.NewStructure(lat, []string{"Si", "Si", "Si"}, v3.FromArrays([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}))
	require.NoError(Te, err)
	defect := bulk.DelSite(0)
	M, err := sites.New(bulk, defect, nil)
	require.NoError(Te, err)
	require.Len(Te, M.Records, 2)
	_, err = Align(M.Records, lat.WignerSeitzRadius(), constant(3, -50), constant(2, -50), B, -2, true, false)
	assert.ErrorIs(Te, err, defcorr.ErrInsufficientSampling)

	dims := B.Grid().Dims()
	C, err := New(B, -2, bulk, defect, &potential.Averaged{Values: constant(3, -50), Dims: dims}, &potential.Averaged{Values: constant(2, -50), Dims: dims}, nil)
	require.NoError(Te, err)
	_, err = C.Correction(All)
	assert.ErrorIs(Te, err, defcorr.ErrInsufficientSampling)
	assert.Nil(Te, C.Report())
}

func TestAlignShapes(Te *testing.T) {
	recs := []sites.Record{{BulkIndex: 3, DefectIndex: 0, Distance: 5}}
	_, err := Align(recs, 4, constant(3, 1), constant(3, 1), zeroField{}, 1, true, false)
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
}

func TestAlignValues(Te *testing.T) {
	recs := []sites.Record{
		{BulkIndex: 0, DefectIndex: 0, Distance: 5},
		{BulkIndex: 1, DefectIndex: 1, Distance: 6},
		{BulkIndex: 2, DefectIndex: 2, Distance: 1},
	}
	bulk := []float64{-10, -20, -30}
	def := []float64{-10.5, -19.9, -40}
	A, err := Align(recs, 4, bulk, def, zeroField{}, 2, true, false)
	require.NoError(Te, err)
	//Vqb = 0.5 and -0.1 outside, the inside site is reported but not used.
	assert.InDelta(Te, 0.2, A.Mean, 1e-12)
	assert.InDelta(Te, -0.4, A.Energy, 1e-12)
	require.Len(Te, A.Sites, 3)
	assert.False(Te, A.Sites[2].Outside)
	assert.InDelta(Te, 10.0, A.Sites[2].Vqb, 1e-12)
}

func TestScenario(Te *testing.T) {
	bulk, defect, B := scenario(Te)
	gamma := B.Gamma()
	assert.Greater(Te, gamma, 0.5)
	assert.Less(Te, gamma, 2.0)
	dims := B.Grid().Dims()
	bulkSrc := &potential.Averaged{Values: constant(8, -50), Dims: dims}
	defSrc := &potential.Averaged{Values: constant(7, -50), Dims: dims}
	var buf bytes.Buffer
	O := DefaultOptions()
	O.Logger(log.New(&buf, "", 0))
	C, err := New(B, -2, bulk, defect, bulkSrc, defSrc, O)
	require.NoError(Te, err)
	assert.Nil(Te, C.Report())
	R, err := C.Correction(AllSplit)
	require.NoError(Te, err)
	assert.Greater(Te, R.PC, 0.1)
	assert.Less(Te, R.PC, 2.0)
	rep := C.Report()
	require.NotNil(Te, rep)
	assert.Equal(Te, "vacancy", rep.Defect)
	assert.Len(Te, rep.Sites, 7)
	assert.InDelta(Te, 4.0, rep.WSRadius, 1e-8)
	//with identical potentials, Vqb is 0 and the alignment is the mean model potential.
	var sum float64
	var n int
	for _, s := range rep.Sites {
		assert.Equal(Te, 0.0, s.Vqb)
		if s.Outside {
			sum += s.Vpc
			n++
		}
	}
	require.GreaterOrEqual(Te, n, 4)
	assert.InDelta(Te, -sum/float64(n), rep.PotAlign, 1e-12)
	assert.InDelta(Te, 2*rep.PotAlign, R.PotAlign, 1e-5)
	assert.InDelta(Te, R.PC+R.PotAlign, R.Total, 2e-5)
	assert.Equal(Te, R.Total, R.Value())
	assert.Contains(Te, buf.String(), "potential alignment")

	pc, err := C.Correction(PC)
	require.NoError(Te, err)
	assert.Equal(Te, R.PC, pc.Value())
	assert.Equal(Te, 0.0, pc.PotAlign)
	pa, err := C.Correction(PotAlign)
	require.NoError(Te, err)
	assert.Equal(Te, R.PotAlign, pa.Value())
	assert.Equal(Te, 0.0, pa.PC)

	var js bytes.Buffer
	require.NoError(Te, rep.WriteJSON(&js))
	back, err := ReadReport(&js)
	require.NoError(Te, err)
	assert.Equal(Te, rep.Sites, back.Sites)
	assert.Len(Te, back.Species("Si"), 7)
}

// If the defect potentials are exactly the bulk ones shifted by the model potential,
// there is nothing to align.
func TestAlignModelPotential(Te *testing.T) {
	bulk, defect, B := scenario(Te)
	M, err := sites.New(bulk, defect, nil)
	require.NoError(Te, err)
	bulkPot := constant(8, -50)
	defPot := constant(7, 0)
	for _, r := range M.Records {
		vpc, err := B.PotentialAt(r.Displacement, -2)
		require.NoError(Te, err)
		defPot[r.DefectIndex] = bulkPot[r.BulkIndex] - vpc
	}
	A, err := Align(M.Records, bulk.Lattice.WignerSeitzRadius(), bulkPot, defPot, B, -2, false, false)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, A.Energy, 1e-10)
	//with no model potential and identical potentials, the alignment is exactly 0.
	A, err = Align(M.Records, bulk.Lattice.WignerSeitzRadius(), bulkPot, constant(7, -50), zeroField{}, -2, false, false)
	require.NoError(Te, err)
	assert.Equal(Te, 0.0, A.Energy)
}

func TestCorrectionErrors(Te *testing.T) {
	bulk, defect, B := scenario(Te)
	//zero charge: nothing is computed, so nothing else is needed.
	C, err := New(B, 0, bulk, defect, nil, nil, nil)
	require.NoError(Te, err)
	R, err := C.Correction(AllSplit)
	require.NoError(Te, err)
	assert.Equal(Te, Result{Part: AllSplit}, R)

	C, err = New(B, 1, bulk, defect, nil, nil, nil)
	require.NoError(Te, err)
	_, err = C.Correction(All)
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)

	wrong := &potential.Averaged{Values: constant(8, -50), Dims: [3]int{10, 10, 10}}
	C, err = New(B, 1, bulk, defect, wrong, &potential.Averaged{Values: constant(7, -50)}, nil)
	require.NoError(Te, err)
	_, err = C.PotAlign()
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)

	C, err = New(B, 1, bulk, bulk.Copy(), &potential.Averaged{Values: constant(8, -50)}, &potential.Averaged{Values: constant(8, -50)}, nil)
	require.NoError(Te, err)
	_, err = C.PotAlign()
	assert.ErrorIs(Te, err, defcorr.ErrDefectNotFound)

	_, err = New(nil, 1, bulk, defect, nil, nil, nil)
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
}

func TestParts(Te *testing.T) {
	for _, p := range []Part{PC, PotAlign, All, AllSplit} {
		q, err := ParsePart(p.String())
		require.NoError(Te, err)
		assert.Equal(Te, p, q)
	}
	p, err := ParsePart("allsplit")
	require.NoError(Te, err)
	assert.Equal(Te, AllSplit, p)
	_, err = ParsePart("everything")
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
	assert.Equal(Te, 1.5, Result{Part: PotAlign, PC: 1, PotAlign: 1.5, Total: 2.5}.Value())
}

func TestAnisotropy(Te *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	assert.True(Te, CheckAnisotropy(defcorr.CubicLattice(8), logger))
	assert.Empty(Te, buf.String())
	lat, err := defcorr.LatticeFromArrays([3]float64{4, 0, 0}, [3]float64{0, 4, 0}, [3]float64{0, 0, 9})
	require.NoError(Te, err)
	assert.False(Te, CheckAnisotropy(lat, logger))
	assert.Contains(Te, buf.String(), "Warning")
}

func TestOptionsLogger(Te *testing.T) {
	O := new(Options)
	assert.NotNil(Te, O.Logger())
	assert.Nil(Te, O.logger)
	assert.NotNil(Te, DefaultOptions().logger)
	l := log.Default()
	assert.Equal(Te, l, O.Logger(l))
	assert.Equal(Te, l, O.Logger())
	O.Logger(nil)
	assert.NotNil(Te, O.Logger())
	assert.Nil(Te, O.logger)
	assert.NotNil(Te, O.Sites())
	assert.Nil(Te, O.sites)
}

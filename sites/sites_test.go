/*
 * sites_test.go, part of defcorr.
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
	"log"
	"math"
	"testing"

	"github.com/rmera/defcorr"
	v3 "github.com/rmera/defcorr/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// supercell returns the n x n x n supercell of a simple cubic cell of side a with one Si atom.
func supercell(Te *testing.T, a float64, n int) *defcorr.Structure {
	unit, err := defcorr.NewStructure(defcorr.CubicLattice(a), []string{"Si"}, v3.FromArrays([3]float64{0, 0, 0}))
	require.NoError(Te, err)
	s, err := unit.Supercell(n, n, n)
	require.NoError(Te, err)
	return s
}

func TestVacancy(Te *testing.T) {
	bulk := supercell(Te, 4, 3)
	defect := bulk.DelSite(13)
	M, err := New(bulk, defect, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Vacancy, M.Defect.Kind)
	assert.Equal(Te, 13, M.Defect.BulkIndex)
	assert.Equal(Te, -1, M.Defect.DefectIndex)
	assert.Equal(Te, bulk.Coord(13), M.Defect.Position)
	assert.Equal(Te, "Si", M.Defect.Species)
	require.Len(Te, M.Records, 26)
	mind := math.Inf(1)
	for i, r := range M.Records {
		if i > 0 {
			assert.Greater(Te, r.BulkIndex, M.Records[i-1].BulkIndex)
		}
		assert.NotEqual(Te, 13, r.BulkIndex)
		if r.BulkIndex < 13 {
			assert.Equal(Te, r.BulkIndex, r.DefectIndex)
		} else {
			assert.Equal(Te, r.BulkIndex-1, r.DefectIndex)
		}
		assert.False(Te, r.Flagged)
		assert.InDelta(Te, r.Distance, math.Sqrt(v3.Dot(r.Displacement, r.Displacement)), 1e-12)
		mind = math.Min(mind, r.Distance)
	}
	assert.InDelta(Te, 4.0, mind, 1e-10)
	assert.Equal(Te, 0, M.Flagged())
	_, ok := M.Record(13)
	assert.False(Te, ok)
	r, ok := M.Record(14)
	require.True(Te, ok)
	assert.InDelta(Te, 4.0, r.Distance, 1e-10)
	//the defect is at the center of the cell: site 0 is at (-4,-4,-4) from it.
	r, ok = M.Record(0)
	require.True(Te, ok)
	assert.InDelta(Te, math.Sqrt(48), r.Distance, 1e-10)
	assert.InDeltaSlice(Te, []float64{-4, -4, -4}, r.Displacement[:], 1e-10)
}

func TestRelaxedVacancy(Te *testing.T) {
	bulk := supercell(Te, 4, 3)
	defect := bulk.DelSite(13)
	//the neighbor at +x relaxes 0.3 A toward the vacancy.
	c := defect.Coord(21)
	c[0] -= 0.3
	defect.Coords.SetVec(21, c)
	M, err := New(bulk, defect, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 13, M.Defect.BulkIndex)
	r, ok := M.Record(22)
	require.True(Te, ok)
	assert.Equal(Te, 21, r.DefectIndex)
	assert.InDelta(Te, 3.7, r.Distance, 1e-10)
}

func TestInterstitial(Te *testing.T) {
	bulk := supercell(Te, 4, 2)
	defect := bulk.AddSite("H", [3]float64{2, 2, 2})
	M, err := New(bulk, defect, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Interstitial, M.Defect.Kind)
	assert.Equal(Te, 8, M.Defect.DefectIndex)
	assert.Equal(Te, -1, M.Defect.BulkIndex)
	assert.Equal(Te, "H", M.Defect.Species)
	require.Len(Te, M.Records, 8)
	for _, r := range M.Records {
		assert.Equal(Te, r.BulkIndex, r.DefectIndex)
		assert.InDelta(Te, math.Sqrt(12), r.Distance, 1e-10)
		assert.Equal(Te, "Si", r.Species)
	}
}

func TestSubstitution(Te *testing.T) {
	bulk := supercell(Te, 4, 2)
	defect := bulk.Substitute(5, "P")
	M, err := New(bulk, defect, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Substitution, M.Defect.Kind)
	assert.Equal(Te, 5, M.Defect.BulkIndex)
	assert.Equal(Te, 5, M.Defect.DefectIndex)
	assert.Equal(Te, "P", M.Defect.Species)
	assert.Len(Te, M.Records, 7)
	assert.Equal(Te, "substitution", M.Defect.Kind.String())
}

func TestDefectNotFound(Te *testing.T) {
	bulk := supercell(Te, 4, 2)
	_, err := New(bulk, bulk.Copy(), nil)
	assert.ErrorIs(Te, err, defcorr.ErrDefectNotFound)
	_, err = New(bulk, bulk.DelSite(0).DelSite(0), nil)
	assert.ErrorIs(Te, err, defcorr.ErrDefectNotFound)
	_, err = New(bulk, bulk.Substitute(1, "P").Substitute(2, "B"), nil)
	assert.ErrorIs(Te, err, defcorr.ErrDefectNotFound)
	//an "interstitial" sitting on top of an existing site is not a defect we can find.
	_, err = New(bulk, bulk.AddSite("H", [3]float64{0.1, 0, 0}), nil)
	assert.ErrorIs(Te, err, defcorr.ErrDefectNotFound)
}

func TestClosestTieBreak(Te *testing.T) {
	bulk := supercell(Te, 4, 2)
	//equidistant from the sites at the origin and at (4,0,0)
	i, d := Closest(bulk, [3]float64{2, 0, 0})
	assert.Equal(Te, 0, i)
	assert.InDelta(Te, 2.0, d, 1e-12)
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
}

/*
 * vasp_test.go, part of defcorr.
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
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/defcorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poscar = `NaCl rocksalt
   1.0
     4.0  0.0  0.0
     0.0  4.0  0.0
     0.0  0.0  4.0
   Na Cl
   1 1
Direct
  0.0 0.0 0.0
  0.5 0.5 0.5
`

const outcar = `
 running on    4 total cores
   dimension x,y,z NGX =    24 NGY =   24 NGZ =   24
   dimension x,y,z NGXF=    48 NGYF=   48 NGZF=   50

 average (electrostatic) potential at core
  the test charge radii are     0.9000  1.1000
  (the norm of the test charge is              1.0000)
      1 -20.0000      2 -30.0000

 some other output

 average (electrostatic) potential at core
  the test charge radii are     0.9000  1.1000
  (the norm of the test charge is              1.0000)
      1 -21.5000      2-100.2500

 total energy
`

// locpot returns a LOCPOT for the poscar structure, with a 4x4x4 grid where
// each value is its own flat index.
func locpot() string {
	var b strings.Builder
	b.WriteString(poscar)
	b.WriteString("\n    4    4    4\n")
	for i := 0; i < 64; i++ {
		fmt.Fprintf(&b, " %.5E", float64(i))
		if i%5 == 4 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func writeFile(Te *testing.T, name, content string) string {
	path := filepath.Join(Te.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(Te, err)
	defer f.Close()
	switch {
	case strings.HasSuffix(name, ".zst"):
		w, err := zstd.NewWriter(f)
		require.NoError(Te, err)
		_, err = w.Write([]byte(content))
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
	case strings.HasSuffix(name, ".gz"):
		w := gzip.NewWriter(f)
		_, err = w.Write([]byte(content))
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
	default:
		_, err = f.WriteString(content)
		require.NoError(Te, err)
	}
	return path
}

func TestPoscar(Te *testing.T) {
	for _, name := range []string{"POSCAR", "POSCAR.zst", "CONTCAR.gz"} {
		s, err := ReadPoscar(writeFile(Te, name, poscar))
		require.NoError(Te, err, name)
		require.Equal(Te, 2, s.Len())
		assert.Equal(Te, "Na", s.Symbol(0))
		assert.Equal(Te, "Cl", s.Symbol(1))
		assert.InDeltaSlice(Te, []float64{2, 2, 2}, sliceOf(s.Coord(1)), 1e-12)
		assert.InDelta(Te, 64.0, s.Lattice.Volume(), 1e-10)
	}
}

func TestPoscarVariants(Te *testing.T) {
	//VASP 4 format, cartesian coordinates, scaling factor and selective dynamics.
	v4 := `Na Cl
   2.0
     2.0  0.0  0.0
     0.0  2.0  0.0
     0.0  0.0  2.0
   1 1
Selective dynamics
Cartesian
  0.0 0.0 0.0 T T T
  1.0 1.0 1.0 F F F
`
	s, err := ParsePoscar(strings.NewReader(v4))
	require.NoError(Te, err)
	assert.Equal(Te, []string{"Cl", "Na"}, s.Species())
	assert.InDeltaSlice(Te, []float64{2, 2, 2}, sliceOf(s.Coord(1)), 1e-12)
	assert.InDelta(Te, 64.0, s.Lattice.Volume(), 1e-10)
	//a negative scaling factor is the volume
	vol := strings.Replace(poscar, "   1.0\n", "  -512.0\n", 1)
	s, err = ParsePoscar(strings.NewReader(vol))
	require.NoError(Te, err)
	assert.InDelta(Te, 512.0, s.Lattice.Volume(), 1e-8)

	truncated := strings.Join(strings.Split(poscar, "\n")[:9], "\n")
	_, err = ParsePoscar(strings.NewReader(truncated))
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
}

func TestLocpot(Te *testing.T) {
	for _, name := range []string{"LOCPOT", "LOCPOT.zst"} {
		vol, err := ReadLocpot(writeFile(Te, name, locpot()))
		require.NoError(Te, err, name)
		assert.Equal(Te, [3]int{4, 4, 4}, vol.Dims)
		assert.Equal(Te, 2, vol.Structure.Len())
		//the first index runs fastest
		assert.Equal(Te, 1.0, vol.At(1, 0, 0))
		assert.Equal(Te, 4.0, vol.At(0, 1, 0))
		assert.Equal(Te, 16.0, vol.At(0, 0, 1))
		assert.Equal(Te, 63.0, vol.At(3, 3, 3))
	}
	short := strings.TrimSpace(locpot())
	short = short[:strings.LastIndex(short, " ")]
	_, err := ParseLocpot(strings.NewReader(short))
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
}

func TestOutcar(Te *testing.T) {
	a, err := ReadOutcar(writeFile(Te, "OUTCAR.zst", outcar), "Na", "Cl")
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{48, 48, 50}, a.Dims)
	//the last block wins, and glued columns are split.
	assert.Equal(Te, []float64{-21.5, -100.25}, a.Values)
	assert.Equal(Te, map[string]float64{"Na": 0.9, "Cl": 1.1}, a.Radii)

	a, err = ParseOutcar(strings.NewReader(outcar))
	require.NoError(Te, err)
	assert.Nil(Te, a.Radii)
	_, err = ParseOutcar(strings.NewReader(outcar), "Na")
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
	_, err = ParseOutcar(strings.NewReader(" nothing to see here\n"))
	assert.ErrorIs(Te, err, defcorr.ErrInputShape)
	_, err = ReadOutcar(filepath.Join(Te.TempDir(), "missing"))
	assert.ErrorIs(Te, err, os.ErrNotExist)
}

func sliceOf(a [3]float64) []float64 {
	return a[:]
}

/*
 * config_test.go, part of defcorr.
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

package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/kumagai"
	"github.com/rmera/defcorr/vasp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// poscar returns a POSCAR for the 2x2x2 supercell of a simple cubic Si cell
// with a=4 A, without the sites in skip.
func poscar(skip ...int) string {
	var b strings.Builder
	b.WriteString("Si simple cubic\n 1.0\n 8.0 0.0 0.0\n 0.0 8.0 0.0\n 0.0 0.0 8.0\n Si\n")
	fmt.Fprintf(&b, " %d\nDirect\n", 8-len(skip))
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				drop := false
				for _, s := range skip {
					drop = drop || s == n
				}
				if !drop {
					fmt.Fprintf(&b, " %.2f %.2f %.2f\n", 0.5*float64(i), 0.5*float64(j), 0.5*float64(k))
				}
				n++
			}
		}
	}
	return b.String()
}

func outcar(n int, v float64) string {
	var b strings.Builder
	b.WriteString("   dimension x,y,z NGXF=    24 NGYF=   24 NGZF=   24\n\n")
	b.WriteString(" average (electrostatic) potential at core\n")
	b.WriteString("  the test charge radii are     1.0500\n")
	b.WriteString("  (the norm of the test charge is              1.0000)\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  %5d %8.4f", i+1, v)
		if i%5 == 4 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	return b.String()
}

func write(Te *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig(Te *testing.T) {
	dir := Te.TempDir()
	good := `
charge = -2
part = "all"
dielectric = [10.0, 10.0, 12.0]
[bulk]
structure = "bulk/POSCAR"
outcar = "bulk/OUTCAR"
[defect]
structure = "defect/POSCAR"
outcar = "defect/OUTCAR"
[madelung]
encut = 400.0
dims = [24, 24, 24]
`
	c, err := New(write(Te, dir, "good.toml", good))
	require.NoError(Te, err)
	assert.Equal(Te, kumagai.All, c.PartValue())
	assert.Equal(Te, []float64{10, 10, 12}, c.Dielectric)
	assert.Equal(Te, 400.0, c.Madelung.Encut)
	d, ok := c.Dims()
	assert.True(Te, ok)
	assert.Equal(Te, [3]int{24, 24, 24}, d)
	assert.Equal(Te, "q=-2", c.Title())

	//default part
	c, err = New(write(Te, dir, "default.toml", strings.Replace(good, `part = "all"`, "", 1)))
	require.NoError(Te, err)
	assert.Equal(Te, kumagai.AllSplit, c.PartValue())

	bad := map[string]string{
		"part":       strings.Replace(good, `"all"`, `"everything"`, 1),
		"dielectric": strings.Replace(good, "[10.0, 10.0, 12.0]", "[10.0, 12.0]", 1),
		"dims":       strings.Replace(good, "[24, 24, 24]", "[24, 24]", 1),
		"potentials": strings.Replace(good, `outcar = "defect/OUTCAR"`, "", 1),
		"mixed":      strings.Replace(good, `outcar = "defect/OUTCAR"`, `locpot = "defect/LOCPOT"`, 1),
		"syntax":     good + "\n[[[",
	}
	for name, content := range bad {
		_, err := New(write(Te, dir, name+".toml", content))
		assert.Error(Te, err, name)
	}
	//the point-charge term needs no defect potentials
	_, err = New(write(Te, dir, "pc.toml", strings.Replace(bad["potentials"], `part = "all"`, `part = "pc"`, 1)))
	assert.NoError(Te, err)
	_, err = New(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(Te, err, os.ErrNotExist)
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	c := &Config{
		Charge:     -2,
		Part:       "allsplit",
		Dielectric: []float64{10},
		Bulk: Cell{
			Structure: write(Te, dir, "POSCAR.bulk", poscar()),
			Outcar:    write(Te, dir, "OUTCAR.bulk", outcar(8, -50)),
		},
		Defect: Cell{
			Structure: write(Te, dir, "POSCAR.defect", poscar(0)),
			Outcar:    write(Te, dir, "OUTCAR.defect", outcar(7, -50)),
		},
		Output: Output{
			Report: filepath.Join(dir, "sites.json"),
			Plot:   filepath.Join(dir, "sites.png"),
		},
	}
	require.NoError(Te, c.validate())
	var buf bytes.Buffer
	R, err := Run(c, log.New(&buf, "", 0))
	require.NoError(Te, err)
	assert.Greater(Te, R.PC, 0.1)
	assert.InDelta(Te, R.PC+R.PotAlign, R.Total, 2e-5)
	assert.Contains(Te, buf.String(), "gamma")

	f, err := os.Open(c.Output.Report)
	require.NoError(Te, err)
	defer f.Close()
	rep, err := kumagai.ReadReport(f)
	require.NoError(Te, err)
	assert.Equal(Te, "vacancy", rep.Defect)
	assert.Len(Te, rep.Sites, 7)
	_, err = os.Stat(c.Output.Plot)
	assert.NoError(Te, err)

	//the point-charge term alone, from the grid in the bulk OUTCAR
	c.Part = "pc"
	c.Defect.Outcar = ""
	c.Output = Output{}
	require.NoError(Te, c.validate())
	pc, err := Run(c, log.New(&buf, "", 0))
	require.NoError(Te, err)
	assert.Equal(Te, R.PC, pc.Value())
}

func TestSpeciesOrder(Te *testing.T) {
	dir := Te.TempDir()
	text := strings.Replace(poscar(), " Si\n 8\n", " Si O\n 7 1\n", 1)
	s, err := vasp.ReadPoscar(write(Te, dir, "POSCAR", text))
	require.NoError(Te, err)
	assert.Equal(Te, []string{"Si", "O"}, defcorr.SpeciesOrder(s))
	assert.Equal(Te, []string{"O", "Si"}, s.Species())
}

/*
 * main.go, part of defcorr.
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

// Command kumagai computes the anisotropic finite-size correction of a charged
// point defect from a bulk and a defect VASP calculation. Its only argument is
// the path of a TOML configuration file.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/chemplot"
	"github.com/rmera/defcorr/kumagai"
	"github.com/rmera/defcorr/madelung"
	"github.com/rmera/defcorr/potential"
	"github.com/rmera/defcorr/vasp"
)

func main() {
	log := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) != 2 {
		log.Fatal("one argument is needed: path of the configuration file")
	}

	c, err := New(os.Args[1])
	if err != nil {
		log.Fatal(fmt.Errorf("New: %w", err))
	}

	R, err := Run(c, log)
	if err != nil {
		log.Fatal(fmt.Errorf("Run: %w", err))
	}
	fmt.Printf("%s\t%.5f\t%.5f\t%.5f\n", R.Part, R.PC, R.PotAlign, R.Total)
}

// Run performs the correction described by c, writing the optional outputs.
func Run(c *Config, log *log.Logger) (kumagai.Result, error) {
	var R kumagai.Result
	bulk, err := vasp.ReadPoscar(c.Bulk.Structure)
	if err != nil {
		return R, fmt.Errorf("ReadPoscar (bulk): %w", err)
	}
	defect, err := vasp.ReadPoscar(c.Defect.Structure)
	if err != nil {
		return R, fmt.Errorf("ReadPoscar (defect): %w", err)
	}
	diel, err := defcorr.NewDielectric(c.Dielectric...)
	if err != nil {
		return R, fmt.Errorf("NewDielectric: %w", err)
	}
	var bulkSrc, defSrc defcorr.PotentialSource
	dims, given := c.Dims()
	if c.Bulk.Locpot != "" || c.Bulk.Outcar != "" {
		var d [3]int
		bulkSrc, d, err = source(c.Bulk, bulk, c.Radii)
		if err != nil {
			return R, fmt.Errorf("bulk potentials: %w", err)
		}
		if !given {
			dims = d
		}
	}
	if c.PartValue() != kumagai.PC && c.Charge != 0 {
		defSrc, _, err = source(c.Defect, defect, c.Radii)
		if err != nil {
			return R, fmt.Errorf("defect potentials: %w", err)
		}
	}
	if dims == ([3]int{}) {
		return R, fmt.Errorf("no grid dimensions for the Madelung potential")
	}

	mo := madelung.DefaultOptions()
	mo.Logger(log)
	if c.Madelung.Encut > 0 {
		mo.Encut(c.Madelung.Encut)
	}
	if c.Madelung.Tolerance > 0 {
		mo.Tolerance(c.Madelung.Tolerance)
	}
	if c.Madelung.Gamma > 0 {
		mo.Gamma(c.Madelung.Gamma)
	}
	if c.Madelung.Cpus > 0 {
		mo.Cpus(c.Madelung.Cpus)
	}
	B, err := madelung.NewBulk(bulk.Lattice, diel, dims, mo)
	if err != nil {
		return R, fmt.Errorf("NewBulk: %w", err)
	}
	log.Printf("gamma: %.6f 1/bohr, grid %v", B.Gamma(), dims)

	ko := kumagai.DefaultOptions()
	ko.Logger(log)
	ko.SkipFlagged(c.SkipFlagged)
	ko.Sites().Logger(log)
	C, err := kumagai.New(B, c.Charge, bulk, defect, bulkSrc, defSrc, ko)
	if err != nil {
		return R, fmt.Errorf("kumagai.New: %w", err)
	}
	R, err = C.Correction(c.PartValue())
	if err != nil {
		return R, fmt.Errorf("Correction: %w", err)
	}
	rep := C.Report()
	if rep == nil {
		return R, nil
	}
	if c.Output.Report != "" {
		if err := writeReport(rep, c.Output.Report); err != nil {
			return R, fmt.Errorf("writeReport: %w", err)
		}
	}
	if c.Output.Plot != "" {
		if err := chemplot.SitePotentials(rep, c.Title(), c.Output.Plot); err != nil {
			return R, fmt.Errorf("SitePotentials: %w", err)
		}
	}
	return R, nil
}

// source returns the site potential source for one cell, and the dimensions of
// the FFT grid of its calculation.
func source(cell Cell, s *defcorr.Structure, radii map[string]float64) (defcorr.PotentialSource, [3]int, error) {
	if cell.Locpot != "" {
		vol, err := vasp.ReadLocpot(cell.Locpot)
		if err != nil {
			return nil, [3]int{}, err
		}
		V, err := potential.NewVolumetric(vol, radii)
		if err != nil {
			return nil, [3]int{}, err
		}
		return V, V.Dims(), nil
	}
	A, err := vasp.ReadOutcar(cell.Outcar, defcorr.SpeciesOrder(s)...)
	if err != nil {
		return nil, [3]int{}, err
	}
	return A, A.Dims, nil
}

func writeReport(rep *kumagai.Report, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

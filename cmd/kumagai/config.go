/*
 * config.go, part of defcorr.
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
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/rmera/defcorr/kumagai"
)

// Cell contains the input files of one of the two calculations. Structure is
// a POSCAR or CONTCAR. The site potentials are read from Locpot, if given,
// otherwise from the core potentials in Outcar.
type Cell struct {
	Structure string `toml:"structure"`
	Locpot    string `toml:"locpot"`
	Outcar    string `toml:"outcar"`
}

// Madelung contains the numerical parameters of the point-charge model.
// Zero values select the defaults.
type Madelung struct {
	Encut     float64 `toml:"encut"`
	Tolerance float64 `toml:"tolerance"`
	Gamma     float64 `toml:"gamma"`
	Dims      []int   `toml:"dims"`
	Cpus      int     `toml:"cpus"`
}

// Output contains the optional output files.
type Output struct {
	Report string `toml:"report"`
	Plot   string `toml:"plot"`
	Title  string `toml:"title"`
}

// Config is a full correction job, read from a TOML file with New.
type Config struct {
	Charge      float64            `toml:"charge"`
	Part        string             `toml:"part"`
	Dielectric  []float64          `toml:"dielectric"`
	Radii       map[string]float64 `toml:"radii"`
	SkipFlagged bool               `toml:"skip_flagged"`
	Bulk        Cell               `toml:"bulk"`
	Defect      Cell               `toml:"defect"`
	Madelung    Madelung           `toml:"madelung"`
	Output      Output             `toml:"output"`

	part kumagai.Part
}

// New opens and decodes the TOML configuration file in path, and validates it.
func New(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := new(Config)
	dec := toml.NewDecoder(f)
	if err = dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Part == "" {
		c.Part = kumagai.AllSplit.String()
	}
	var err error
	c.part, err = kumagai.ParsePart(c.Part)
	if err != nil {
		return err
	}
	switch len(c.Dielectric) {
	case 1, 3, 9:
	default:
		return fmt.Errorf("dielectric needs 1, 3 or 9 values, got %d", len(c.Dielectric))
	}
	if len(c.Madelung.Dims) != 0 && len(c.Madelung.Dims) != 3 {
		return fmt.Errorf("madelung.dims needs 3 values, got %d", len(c.Madelung.Dims))
	}
	for _, d := range c.Madelung.Dims {
		if d <= 0 {
			return fmt.Errorf("madelung.dims must be positive, got %v", c.Madelung.Dims)
		}
	}
	if c.Madelung.Encut < 0 || c.Madelung.Tolerance < 0 || c.Madelung.Gamma < 0 {
		return fmt.Errorf("negative madelung parameters")
	}
	if c.Bulk.Structure == "" || c.Defect.Structure == "" {
		return fmt.Errorf("bulk and defect structures are needed")
	}
	if c.Madelung.Dims == nil && c.Bulk.Locpot == "" && c.Bulk.Outcar == "" {
		return fmt.Errorf("madelung.dims is needed without bulk potential files")
	}
	//the point-charge term alone needs no potentials
	if c.part == kumagai.PC || c.Charge == 0 {
		return nil
	}
	for _, cell := range []struct {
		name string
		c    Cell
	}{{"bulk", c.Bulk}, {"defect", c.Defect}} {
		if cell.c.Locpot == "" && cell.c.Outcar == "" {
			return fmt.Errorf("%s: a LOCPOT or an OUTCAR is needed for the potential alignment", cell.name)
		}
	}
	if (c.Bulk.Locpot == "") != (c.Defect.Locpot == "") {
		return fmt.Errorf("bulk and defect potentials must both come from LOCPOT or both from OUTCAR")
	}
	return nil
}

// PartValue returns the correction terms requested.
func (c *Config) PartValue() kumagai.Part {
	return c.part
}

// Dims returns the grid dimensions given in the file, and whether they were given.
func (c *Config) Dims() ([3]int, bool) {
	if len(c.Madelung.Dims) != 3 {
		return [3]int{}, false
	}
	return [3]int{c.Madelung.Dims[0], c.Madelung.Dims[1], c.Madelung.Dims[2]}, true
}

// Title returns the title for the plot.
func (c *Config) Title() string {
	if c.Output.Title != "" {
		return c.Output.Title
	}
	return fmt.Sprintf("q=%+g", c.Charge)
}

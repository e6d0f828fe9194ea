/*
 * sitepot.go, part of defcorr.
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

package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/rmera/defcorr"
	"github.com/rmera/defcorr/kumagai"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SitePotentials plots, against the distance from the defect, the potentials Vqb
// and Vpc at each site of rep (one color per species) and their difference.
// The region outside the Wigner-Seitz radius, from which the alignment is taken,
// is shaded, and the alignment is drawn as a horizontal line. The format of the
// figure is taken from the extension of filename (png, svg, pdf, eps...).
func SitePotentials(rep *kumagai.Report, title, filename string) error {
	if rep == nil || len(rep.Sites) == 0 {
		return defcorr.NewError(defcorr.ErrInputShape, "SitePotentials", "nothing to plot")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = fmt.Sprintf("%s atomic site potentials", title)
	p.X.Label.Text = "Distance from defect (A)"
	p.Y.Label.Text = "Potential (V)"
	species := make([]string, 0, 4)
	seen := make(map[string]bool)
	ymin, ymax, rmax := math.Inf(1), math.Inf(-1), 0.0
	for _, s := range rep.Sites {
		if !seen[s.Species] {
			seen[s.Species] = true
			species = append(species, s.Species)
		}
		ymin = math.Min(ymin, math.Min(s.Vqb, s.Vpc))
		ymax = math.Max(ymax, math.Max(s.Vqb, s.Vpc))
		rmax = math.Max(rmax, s.Distance)
	}
	sort.Strings(species)
	for i, sp := range species {
		sites := rep.Species(sp)
		qb := make(plotter.XYs, len(sites))
		pc := make(plotter.XYs, len(sites))
		for j, s := range sites {
			qb[j].X, qb[j].Y = s.Distance, s.Vqb
			pc[j].X, pc[j].Y = s.Distance, s.Vpc
		}
		c := colors(i, len(species))
		sqb, err := plotter.NewScatter(qb)
		if err != nil {
			return defcorr.ErrDecorate(err, "SitePotentials")
		}
		sqb.GlyphStyle.Color = c
		sqb.GlyphStyle.Shape = draw.TriangleGlyph{}
		spc, err := plotter.NewScatter(pc)
		if err != nil {
			return defcorr.ErrDecorate(err, "SitePotentials")
		}
		spc.GlyphStyle.Color = c
		spc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sqb, spc)
		p.Legend.Add(sp+": Vq/b", sqb)
		p.Legend.Add(sp+": Vpc", spc)
	}
	diff := make(plotter.XYs, len(rep.Sites))
	for i, s := range rep.Sites {
		diff[i].X, diff[i].Y = s.Distance, s.Vqb-s.Vpc
		ymin = math.Min(ymin, diff[i].Y)
		ymax = math.Max(ymax, diff[i].Y)
	}
	sort.Slice(diff, func(i, j int) bool { return diff[i].X < diff[j].X })
	sd, err := plotter.NewScatter(diff)
	if err != nil {
		return defcorr.ErrDecorate(err, "SitePotentials")
	}
	sd.GlyphStyle.Color = color.Black
	sd.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(sd)
	p.Legend.Add("Vq/b - Vpc", sd)

	xmax := math.Max(rmax, floats.Max(rep.Lengths[:]))
	region, err := plotter.NewPolygon(plotter.XYs{
		{X: rep.WSRadius, Y: ymin - 1}, {X: xmax, Y: ymin - 1},
		{X: xmax, Y: ymax + 1}, {X: rep.WSRadius, Y: ymax + 1},
	})
	if err != nil {
		return defcorr.ErrDecorate(err, "SitePotentials")
	}
	region.Color = color.RGBA{R: 38, A: 38}
	region.LineStyle.Width = 0
	p.Add(region)
	p.Legend.Add("sampling region", region)

	align := plotter.NewFunction(func(float64) float64 { return rep.PotAlign })
	align.Color = color.RGBA{R: 255, A: 255}
	align.Width = vg.Points(0.5)
	p.Add(align)
	p.Legend.Add("pot. align. / q", align)
	p.Add(plotter.NewGrid())

	p.X.Min = 0
	p.X.Max = rmax + 3
	p.Y.Min = ymin - 0.5
	p.Y.Max = ymax + 0.5
	p.Legend.Top = true
	if err := p.Save(6*vg.Inch, 5*vg.Inch, filename); err != nil {
		return defcorr.ErrDecorate(err, "SitePotentials")
	}
	return nil
}

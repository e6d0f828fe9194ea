/*
 * voronoi.go, part of defcorr.
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

/*
Package voro offers Voronoi polyhedra-based functionality for defcorr. Currently, that means
the Wigner-Seitz cell of a lattice: the Voronoi polyhedron of the lattice point at the origin.

This library is naive and brute-force: the cell is built from the planes bisecting the origin
and its 26 closest lattice points (all translations with multiples in {-1,0,1}). Every triple
of planes is intersected and the intersections that violate no plane are the cell's vertices.
With 26 planes that means some 2600 3x3 linear systems, which is nothing. The cell is correct
as long as the lattice vectors are reasonably reduced.
*/
package voro

import (
	"fmt"
	"math"

	v3 "github.com/rmera/defcorr/v3"
	"gonum.org/v1/gonum/mat"
)

// VPlane is the plane bisecting the origin and a lattice point,
// with all the info we might want from it.
type VPlane struct {
	Translation [3]int //The multiples of the lattice vectors that give the lattice point.
	Distance    float64 //The plane is equidistant from both points, so there is only one distance
	Normal      *v3.Matrix
	Point       *v3.Matrix //A point in the plane.
}

// Parametric obtains the plane equation Ax+By+Cz = D for our plane, returns A, B, C and D
func (V *VPlane) Parametric(parameters ...[]float64) []float64 {
	var pars []float64
	if len(parameters) >= 1 && len(parameters[0]) >= 4 {
		pars = parameters[0]

	} else {
		pars = make([]float64, 4)
	}
	pars[0] = V.Normal.At(0, 0)
	pars[1] = V.Normal.At(0, 1)
	pars[2] = V.Normal.At(0, 2)
	pars[3] = V.Normal.Dot(V.Point)
	return pars
}

// Side returns how far p is beyond the plane, along its normal. Points on the
// same side as the origin give negative numbers.
func (V *VPlane) Side(p [3]float64) float64 {
	n := V.Normal.Vec(0)
	return (v3.Dot(n, p) - V.Normal.Dot(V.Point)) / V.Normal.Norm()
}

// PlaneBetweenPoints returns the plane bisecting the origin and the point at.
func PlaneBetweenPoints(at *v3.Matrix, translation [3]int) *VPlane {
	ret := &VPlane{Translation: translation}
	ret.Normal = v3.Zeros(1)
	ret.Normal.Copy(at)
	ret.Distance = ret.Normal.Norm() / 2.0
	ret.Point = v3.Zeros(1)
	ret.Point.Scale(0.5, at) //It's the midpoint of the 2 points, so it should definitely be part of the plane.
	return ret
}

// VPSlice contains a slice to pointers to VPlane.
type VPSlice []*VPlane

// Facet is a face of a Voronoi polyhedron.
type Facet struct {
	Plane    *VPlane
	Vertices [][3]float64
}

// Midpoint returns the mean of the vertices of the facet.
func (F *Facet) Midpoint() [3]float64 {
	var m [3]float64
	for _, v := range F.Vertices {
		for i := range m {
			m[i] += v[i]
		}
	}
	for i := range m {
		m[i] /= float64(len(F.Vertices))
	}
	return m
}

// Cell is a Voronoi polyhedron centered at the origin.
type Cell struct {
	Facets   []*Facet
	Vertices [][3]float64
}

// Radius returns the smallest distance from the origin to the midpoint of
// any facet of the cell.
func (C *Cell) Radius() float64 {
	r := math.Inf(1)
	for _, f := range C.Facets {
		m := f.Midpoint()
		if d := math.Sqrt(v3.Dot(m, m)); d < r {
			r = d
		}
	}
	return r
}

// InscribedRadius returns the radius of the largest sphere centered at the
// origin that fits in the cell.
func (C *Cell) InscribedRadius() float64 {
	r := math.Inf(1)
	for _, f := range C.Facets {
		if f.Plane.Distance < r {
			r = f.Plane.Distance
		}
	}
	return r
}

// LatticePlanes returns the planes bisecting the origin and each of its 26 closest
// lattice points, for the lattice with the vectors in vecs.
func LatticePlanes(vecs *v3.Matrix) VPSlice {
	a := [3][3]float64{vecs.Vec(0), vecs.Vec(1), vecs.Vec(2)}
	ret := make([]*VPlane, 0, 26)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				var t [3]float64
				for c := 0; c < 3; c++ {
					t[c] = float64(i)*a[0][c] + float64(j)*a[1][c] + float64(k)*a[2][c]
				}
				ret = append(ret, PlaneBetweenPoints(v3.FromArrays(t), [3]int{i, j, k}))
			}
		}
	}
	return VPSlice(ret)
}

// WignerSeitz returns the Wigner-Seitz cell of the lattice with the vectors in vecs.
func WignerSeitz(vecs *v3.Matrix) (*Cell, error) {
	if vecs.NVecs() != 3 {
		return nil, v3Error("WignerSeitz", "a lattice needs 3 vectors")
	}
	planes := LatticePlanes(vecs)
	var scale float64
	for _, p := range planes {
		scale = math.Max(scale, p.Distance)
	}
	eps := 1e-8 * scale
	A := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	x := mat.NewVecDense(3, nil)
	pars := make([]float64, 4)
	vertices := make([][3]float64, 0, 24)
	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			for k := j + 1; k < len(planes); k++ {
				for row, p := range []*VPlane{planes[i], planes[j], planes[k]} {
					p.Parametric(pars)
					A.Set(row, 0, pars[0])
					A.Set(row, 1, pars[1])
					A.Set(row, 2, pars[2])
					b.SetVec(row, pars[3])
				}
				if math.Abs(v3.Det(A)) < eps*scale*scale {
					continue //planes don't meet at a point
				}
				if err := x.SolveVec(A, b); err != nil {
					continue
				}
				v := [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}
				if !planes.inside(v, eps) || isIn(vertices, v, eps) {
					continue
				}
				vertices = append(vertices, v)
			}
		}
	}
	if len(vertices) < 4 {
		return nil, v3Error("WignerSeitz", fmt.Sprintf("only %d vertices found", len(vertices)))
	}
	cell := &Cell{Vertices: vertices}
	for _, p := range planes {
		f := &Facet{Plane: p}
		for _, v := range vertices {
			if math.Abs(p.Side(v)) < eps {
				f.Vertices = append(f.Vertices, v)
			}
		}
		if len(f.Vertices) >= 3 {
			cell.Facets = append(cell.Facets, f)
		}
	}
	return cell, nil
}

// inside returns true if no plane in P has the point p beyond it.
func (P VPSlice) inside(p [3]float64, eps float64) bool {
	for _, v := range P {
		if v.Side(p) > eps {
			return false
		}
	}
	return true
}

func isIn(container [][3]float64, test [3]float64, eps float64) bool {
	for _, v := range container {
		d := [3]float64{v[0] - test[0], v[1] - test[1], v[2] - test[2]}
		if math.Sqrt(v3.Dot(d, d)) < eps {
			return true
		}
	}
	return false
}

// Error is the error type for the voro package
type Error struct {
	message  string
	deco     []string
	critical bool
}

func v3Error(caller, message string) Error {
	return Error{message: "voro: " + message, deco: []string{caller}, critical: true}
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

/*
 * lattice.go, part of defcorr.
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

package defcorr

import (
	"math"

	v3 "github.com/rmera/defcorr/v3"
	"github.com/rmera/defcorr/voro"
	"gonum.org/v1/gonum/floats"
)

// Lattice contains the three real-space basis vectors of a periodic cell, in A,
// as the vectors of a v3.Matrix. It is not modified after creation.
type Lattice struct {
	vecs *v3.Matrix
	inv  *v3.Matrix
	arr  [3][3]float64
}

// Image is a periodic image of a displacement: Vector = displacement - Translation.
type Image struct {
	Vector      [3]float64
	Translation [3]float64
	Distance    float64
}

// NewLattice returns a lattice with the vectors of vecs (which must have 3 vectors).
// It returns an error of kind ErrGeometry if the vectors are not linearly independent.
func NewLattice(vecs *v3.Matrix) (*Lattice, error) {
	if vecs == nil || vecs.NVecs() != 3 {
		return nil, NewError(ErrGeometry, "NewLattice", "a lattice needs exactly 3 vectors")
	}
	L := new(Lattice)
	L.vecs = v3.Zeros(3)
	L.vecs.Copy(vecs)
	for i := 0; i < 3; i++ {
		L.arr[i] = L.vecs.Vec(i)
	}
	if math.Abs(v3.Det(L.vecs)) < 1e-8 {
		return nil, NewError(ErrGeometry, "NewLattice", "lattice vectors are linearly dependent, volume %g", v3.Det(L.vecs))
	}
	var err error
	L.inv, err = v3.Inverse(L.vecs)
	if err != nil {
		return nil, NewError(ErrGeometry, "NewLattice", "can't invert lattice: %s", err.Error())
	}
	return L, nil
}

// LatticeFromArrays returns a lattice with the vectors a, b and c.
func LatticeFromArrays(a, b, c [3]float64) (*Lattice, error) {
	return NewLattice(v3.FromArrays(a, b, c))
}

// CubicLattice returns a simple cubic lattice with lattice constant a.
func CubicLattice(a float64) *Lattice {
	L, err := LatticeFromArrays([3]float64{a, 0, 0}, [3]float64{0, a, 0}, [3]float64{0, 0, a})
	if err != nil {
		panic(err.Error())
	}
	return L
}

// Vectors returns a copy of the lattice vectors.
func (L *Lattice) Vectors() *v3.Matrix {
	ret := v3.Zeros(3)
	ret.Copy(L.vecs)
	return ret
}

// Array returns the lattice vectors as arrays, in A.
func (L *Lattice) Array() [3][3]float64 {
	return L.arr
}

// Bohr returns the lattice vectors in Bohr.
func (L *Lattice) Bohr() [3][3]float64 {
	var ret [3][3]float64
	for i := range L.arr {
		for j := range L.arr[i] {
			ret[i][j] = L.arr[i][j] * A2Bohr
		}
	}
	return ret
}

// Volume returns the volume of the cell in A^3.
func (L *Lattice) Volume() float64 {
	return math.Abs(v3.Dot(L.arr[0], v3.Cross(L.arr[1], L.arr[2])))
}

// BohrVolume returns the volume of the cell in Bohr^3.
func (L *Lattice) BohrVolume() float64 {
	return L.Volume() * A2Bohr * A2Bohr * A2Bohr
}

// Abc returns the lengths of the three lattice vectors, in A.
func (L *Lattice) Abc() [3]float64 {
	var ret [3]float64
	for i, v := range L.arr {
		ret[i] = floats.Norm(v[:], 2)
	}
	return ret
}

// Reciprocal returns the reciprocal lattice vectors, in 1/A, with the 2*pi factor included.
func (L *Lattice) Reciprocal() [3][3]float64 {
	a := L.arr
	vol := v3.Dot(a[0], v3.Cross(a[1], a[2])) //signed on purpose, so the b_i keep the handedness of the a_i
	f := 2 * math.Pi / vol
	var ret [3][3]float64
	for i := 0; i < 3; i++ {
		c := v3.Cross(a[(i+1)%3], a[(i+2)%3])
		ret[i] = [3]float64{c[0] * f, c[1] * f, c[2] * f}
	}
	return ret
}

// ReciprocalBohr returns the reciprocal lattice vectors in 1/Bohr.
func (L *Lattice) ReciprocalBohr() [3][3]float64 {
	ret := L.Reciprocal()
	for i := range ret {
		for j := range ret[i] {
			ret[i][j] /= A2Bohr
		}
	}
	return ret
}

// Frac returns the fractional coordinates of the cartesian vector cart.
func (L *Lattice) Frac(cart [3]float64) [3]float64 {
	var ret [3]float64
	for j := 0; j < 3; j++ {
		ret[j] = cart[0]*L.inv.At(0, j) + cart[1]*L.inv.At(1, j) + cart[2]*L.inv.At(2, j)
	}
	return ret
}

// Cart returns the cartesian coordinates of the fractional vector frac.
func (L *Lattice) Cart(frac [3]float64) [3]float64 {
	var ret [3]float64
	for j := 0; j < 3; j++ {
		ret[j] = frac[0]*L.arr[0][j] + frac[1]*L.arr[1][j] + frac[2]*L.arr[2][j]
	}
	return ret
}

// NearestImage searches the 27 lattice translations with multiples in {-1,0,1}
// and returns the image of disp with the smallest norm. When two images are
// equally close, the first one found is returned.
func (L *Lattice) NearestImage(disp [3]float64) Image {
	a := L.arr
	best := Image{Distance: math.Inf(1)}
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				var t, v [3]float64
				for c := 0; c < 3; c++ {
					t[c] = i*a[0][c] + j*a[1][c] + k*a[2][c]
					v[c] = disp[c] - t[c]
				}
				d := math.Sqrt(v3.Dot(v, v))
				if d < best.Distance {
					best = Image{Vector: v, Translation: t, Distance: d}
				}
			}
		}
	}
	return best
}

// MinImageFrac returns the image of disp obtained by bringing its fractional
// coordinates to [-0.5,0.5]. For strongly skewed cells this needs not be the
// shortest image.
func (L *Lattice) MinImageFrac(disp [3]float64) [3]float64 {
	f := L.Frac(disp)
	for i := range f {
		f[i] -= math.Round(f[i])
	}
	return L.Cart(f)
}

// WignerSeitzRadius returns the minimum distance from the origin to the midpoint
// of any facet of the Wigner-Seitz cell of the lattice, in A.
func (L *Lattice) WignerSeitzRadius() float64 {
	cell, err := voro.WignerSeitz(L.vecs)
	if err != nil {
		//Can't happen for a lattice that passed NewLattice.
		panic(err.Error())
	}
	return cell.Radius()
}

// Anisotropy returns the differences between the lengths of the lattice vectors
// (a-b, a-c, b-c, in absolute value), in percent of the shortest vector.
func (L *Lattice) Anisotropy() [3]float64 {
	abc := L.Abc()
	min := floats.Min(abc[:])
	return [3]float64{
		100 * math.Abs(abc[0]-abc[1]) / min,
		100 * math.Abs(abc[0]-abc[2]) / min,
		100 * math.Abs(abc[1]-abc[2]) / min,
	}
}

// GridIndex returns the index of the point of a grid with dims points along each
// lattice vector which is closest to the point with fractional coordinates frac.
// The grid is periodic, so a point just below 1 maps to index 0.
func GridIndex(frac [3]float64, dims [3]int) [3]int {
	var ret [3]int
	for i, f := range frac {
		f -= math.Floor(f)
		ret[i] = int(math.Round(f*float64(dims[i]))) % dims[i]
	}
	return ret
}

// GridSphere returns the indexes of all the points of a grid with dims points along
// each lattice vector that lie within radius (in A) of the grid point closest to frac.
// The central point is always included.
func (L *Lattice) GridSphere(frac [3]float64, dims [3]int, radius float64) [][3]int {
	center := GridIndex(frac, dims)
	if radius <= 0 {
		return [][3]int{center}
	}
	b := L.Reciprocal()
	var steps [3][3]float64 //the lattice vectors divided by the number of grid points
	var reach [3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			steps[i][j] = L.arr[i][j] / float64(dims[i])
		}
		//a displacement d changes the fractional coordinate i by d.b_i/2pi.
		reach[i] = int(math.Ceil(radius * math.Sqrt(v3.Dot(b[i], b[i])) * float64(dims[i]) / (2 * math.Pi)))
	}
	ret := make([][3]int, 0, 4*reach[0]*reach[1]*reach[2])
	for i := -reach[0]; i <= reach[0]; i++ {
		for j := -reach[1]; j <= reach[1]; j++ {
			for k := -reach[2]; k <= reach[2]; k++ {
				var d [3]float64
				for c := 0; c < 3; c++ {
					d[c] = float64(i)*steps[0][c] + float64(j)*steps[1][c] + float64(k)*steps[2][c]
				}
				if math.Sqrt(v3.Dot(d, d)) >= radius && (i != 0 || j != 0 || k != 0) {
					continue
				}
				ret = append(ret, [3]int{mod(center[0]+i, dims[0]), mod(center[1]+j, dims[1]), mod(center[2]+k, dims[2])})
			}
		}
	}
	return ret
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

/*
 * dielectric.go, part of defcorr.
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
	"gonum.org/v1/gonum/mat"
)

// Dielectric is a 3x3 macroscopic dielectric tensor. It is not modified after creation.
type Dielectric struct {
	m      *mat.Dense
	inv    *mat.Dense
	det    float64
	arr    [3][3]float64
	invarr [3][3]float64
}

// NewDielectric returns a dielectric tensor from 1 value (an isotropic tensor),
// 3 values (a diagonal tensor) or 9 values (the full tensor, row-major).
// It returns an error of kind ErrInputShape for any other number of values, and
// one of kind ErrGeometry if the tensor is not symmetric and positive definite.
func NewDielectric(vals ...float64) (*Dielectric, error) {
	m := mat.NewDense(3, 3, nil)
	switch len(vals) {
	case 1:
		for i := 0; i < 3; i++ {
			m.Set(i, i, vals[0])
		}
	case 3:
		for i := 0; i < 3; i++ {
			m.Set(i, i, vals[i])
		}
	case 9:
		m = mat.NewDense(3, 3, append([]float64(nil), vals...))
	default:
		return nil, NewError(ErrInputShape, "NewDielectric", "a dielectric tensor needs 1, 3 or 9 values, got %d", len(vals))
	}
	D := &Dielectric{m: m, det: v3.Det(m)}
	if math.Abs(D.det) < 1e-12 || math.IsNaN(D.det) {
		return nil, NewError(ErrGeometry, "NewDielectric", "dielectric tensor is singular (determinant %g)", D.det)
	}
	scale := math.Max(math.Abs(mat.Max(m)), math.Abs(mat.Min(m)))
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > 1e-6*scale {
				return nil, NewError(ErrGeometry, "NewDielectric", "dielectric tensor is not symmetric (%g at %d,%d, %g at %d,%d)", m.At(i, j), i, j, m.At(j, i), j, i)
			}
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(3, []float64{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(0, 1), m.At(1, 1), m.At(1, 2),
		m.At(0, 2), m.At(1, 2), m.At(2, 2),
	})) {
		return nil, NewError(ErrGeometry, "NewDielectric", "dielectric tensor is not positive definite (determinant %g)", D.det)
	}
	D.inv = mat.NewDense(3, 3, nil)
	if err := D.inv.Inverse(m); err != nil {
		return nil, NewError(ErrGeometry, "NewDielectric", "can't invert dielectric tensor: %s", err.Error())
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D.arr[i][j] = m.At(i, j)
			D.invarr[i][j] = D.inv.At(i, j)
		}
	}
	return D, nil
}

// Det returns the determinant of the tensor.
func (D *Dielectric) Det() float64 {
	return D.det
}

// Matrix returns a copy of the tensor.
func (D *Dielectric) Matrix() *mat.Dense {
	return mat.DenseCopyOf(D.m)
}

// Inverse returns a copy of the inverse of the tensor.
func (D *Dielectric) Inverse() *mat.Dense {
	return mat.DenseCopyOf(D.inv)
}

// Quad returns the quadratic form v.D.v
func (D *Dielectric) Quad(v [3]float64) float64 {
	return quad(&D.arr, v)
}

// InvQuad returns the quadratic form v.D^-1.v, the square of the
// "dielectric distance" of v.
func (D *Dielectric) InvQuad(v [3]float64) float64 {
	return quad(&D.invarr, v)
}

// IsDiagonal returns true if all the off-diagonal elements of the tensor are zero.
func (D *Dielectric) IsDiagonal() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && D.arr[i][j] != 0 {
				return false
			}
		}
	}
	return true
}

func quad(m *[3][3]float64, v [3]float64) float64 {
	var r float64
	for i := 0; i < 3; i++ {
		r += v[i] * (m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2])
	}
	return r
}

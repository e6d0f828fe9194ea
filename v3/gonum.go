/*
 * gonum.go, part of defcorr.
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

//gonum.go contains the Matrix type and the glue with gonum's mat package.
//At this point the name is mostly historical.

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space. Within the package it is understood
// that a "vector" is a row vector, i.e. the cartesian coordinates of a point
// in 3D space. A lattice is a Matrix with 3 vectors.
type Matrix struct {
	*mat.Dense
}

// FromArrays builds a Matrix with one vector per element of vecs.
func FromArrays(vecs ...[3]float64) *Matrix {
	M := Zeros(len(vecs))
	for i, v := range vecs {
		M.SetVec(i, v)
	}
	return M
}

// Vec returns a copy of the ith vector of F as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

// Dot returns the dot product between the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	a := F.Vec(0)
	b := B.Vec(0)
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Norm returns the euclidean norm of the matrix (for one vector, its length).
func (F *Matrix) Norm() float64 {
	return mat.Norm(F.Dense, 2)
}

// Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

// Inverse returns the inverse of the 3x3 matrix A, or an error if A is singular.
func Inverse(A *Matrix) (*Matrix, error) {
	if A.NVecs() != 3 {
		return nil, Error{string(ErrShape), []string{"Inverse"}, true}
	}
	if math.Abs(Det(A)) < appzero {
		return nil, Error{"singular matrix", []string{"Inverse"}, true}
	}
	inv := Zeros(3)
	if err := inv.Dense.Inverse(A.Dense); err != nil {
		return nil, Error{err.Error(), []string{"Inverse"}, true}
	}
	return inv, nil
}

//Errors

// Error is the v3 error type. The same as defcorr.Error but it avoids a
// circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
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

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix   = PanicMsg("defcorr/v3: A Matrix should have 3 columns")
	ErrDeterminant    = PanicMsg("defcorr/v3: Determinants are only available for 3x3 matrices")
	ErrShape          = PanicMsg("defcorr/v3: Dimension mismatch")
)

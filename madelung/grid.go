/*
 * grid.go, part of defcorr.
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

package madelung

import (
	"math"
	"sync"

	"github.com/rmera/defcorr"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Grid is the reciprocal-space part of the Ewald potential of a unit charge at
// the origin, in Hartree, sampled on a regular grid over the cell. Point (i,j,k)
// has fractional coordinates (i/N1, j/N2, k/N3). A Grid is not modified after
// creation and can be read concurrently.
type Grid struct {
	dims    [3]int
	data    []float64
	maxImag float64
	gamma   float64
}

// BuildGrid computes the reciprocal-space potential grid with dims points along
// each lattice vector, for the Ewald parameter gamma. It fills a reciprocal array
// with exp(-G.diel.G/4gamma^2)/G.diel.G (indexes from N/2 on stand for negative
// multiples of the reciprocal vectors, the G=0 term is left out), Fourier transforms
// it and scales it by 4pi/V.
func BuildGrid(lat *defcorr.Lattice, diel *defcorr.Dielectric, gamma float64, dims [3]int, opts *Options) (*Grid, error) {
	O := orDefault(opts)
	for _, d := range dims {
		if d < 1 {
			return nil, defcorr.NewError(defcorr.ErrInputShape, "BuildGrid", "invalid grid dimensions %v", dims)
		}
	}
	if gamma <= 0 {
		return nil, defcorr.NewError(defcorr.ErrGeometry, "BuildGrid", "gamma must be positive, not %g", gamma)
	}
	nx, ny, nz := dims[0], dims[1], dims[2]
	b := lat.ReciprocalBohr()
	g4 := 4 * gamma * gamma
	field := make([]complex128, nx*ny*nz)
	fill := func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			fi := float64(signed(i, nx))
			for j := 0; j < ny; j++ {
				fj := float64(signed(j, ny))
				for k := 0; k < nz; k++ {
					if i == 0 && j == 0 && k == 0 {
						continue
					}
					fk := float64(signed(k, nz))
					var g [3]float64
					for c := 0; c < 3; c++ {
						g[c] = fi*b[0][c] + fj*b[1][c] + fk*b[2][c]
					}
					gdg := diel.Quad(g)
					field[(i*ny+j)*nz+k] = complex(math.Exp(-gdg/g4)/gdg, 0)
				}
			}
		}
	}
	parallel(nx, O.Cpus(), fill)
	fft3(field, dims, O.Cpus())
	G := &Grid{dims: dims, data: make([]float64, len(field)), gamma: gamma}
	scale := 4 * math.Pi / lat.BohrVolume()
	for i, v := range field {
		G.data[i] = real(v) * scale
		if im := math.Abs(imag(v) * scale); im > G.maxImag {
			G.maxImag = im
		}
	}
	O.Logger().Printf("reciprocal grid %dx%dx%d built, largest imaginary residue %.3g Hartree", nx, ny, nz, G.maxImag)
	if O.ImagTolerance() > 0 && G.maxImag > O.ImagTolerance() {
		return nil, defcorr.NewError(defcorr.ErrNumericalInstability, "BuildGrid", "imaginary residue %.3g above %.3g", G.maxImag, O.ImagTolerance())
	}
	return G, nil
}

// signed maps a grid index to the reciprocal vector multiple it stands for.
func signed(i, n int) int {
	if i >= n/2 && n > 1 {
		return i - n
	}
	return i
}

// fft3 applies an unnormalized forward DFT, in place, to the row-major 3D array
// field, one axis at a time.
func fft3(field []complex128, dims [3]int, cpus int) {
	nx, ny, nz := dims[0], dims[1], dims[2]
	//along z, contiguous
	parallel(nx*ny, cpus, func(l0, l1 int) {
		f := fourier.NewCmplxFFT(nz)
		for l := l0; l < l1; l++ {
			line := field[l*nz : (l+1)*nz]
			f.Coefficients(line, line)
		}
	})
	//along y
	parallel(nx*nz, cpus, func(l0, l1 int) {
		f := fourier.NewCmplxFFT(ny)
		line := make([]complex128, ny)
		for l := l0; l < l1; l++ {
			i, k := l/nz, l%nz
			for j := 0; j < ny; j++ {
				line[j] = field[(i*ny+j)*nz+k]
			}
			f.Coefficients(line, line)
			for j := 0; j < ny; j++ {
				field[(i*ny+j)*nz+k] = line[j]
			}
		}
	})
	//along x
	parallel(ny*nz, cpus, func(l0, l1 int) {
		f := fourier.NewCmplxFFT(nx)
		line := make([]complex128, nx)
		for l := l0; l < l1; l++ {
			j, k := l/nz, l%nz
			for i := 0; i < nx; i++ {
				line[i] = field[(i*ny+j)*nz+k]
			}
			f.Coefficients(line, line)
			for i := 0; i < nx; i++ {
				field[(i*ny+j)*nz+k] = line[i]
			}
		}
	})
}

// parallel splits the range [0,n) in up to cpus contiguous chunks and runs
// f on each in its own gorutine. The chunks never overlap.
func parallel(n, cpus int, f func(from, to int)) {
	if cpus < 1 {
		cpus = 1
	}
	if cpus > n {
		cpus = n
	}
	if cpus <= 1 {
		f(0, n)
		return
	}
	var wg sync.WaitGroup
	chunk := (n + cpus - 1) / cpus
	for from := 0; from < n; from += chunk {
		to := from + chunk
		if to > n {
			to = n
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			f(from, to)
		}(from, to)
	}
	wg.Wait()
}

// Dims returns the number of points of the grid along each lattice vector.
func (G *Grid) Dims() [3]int {
	return G.dims
}

// Gamma returns the Ewald parameter the grid was built with.
func (G *Grid) Gamma() float64 {
	return G.gamma
}

// MaxImag returns the largest imaginary residue found after the transform, in Hartree.
func (G *Grid) MaxImag() float64 {
	return G.maxImag
}

// At returns the value of the grid at the point (i,j,k). Indexes are taken modulo
// the grid dimensions.
func (G *Grid) At(i, j, k int) float64 {
	i, j, k = wrap(i, G.dims[0]), wrap(j, G.dims[1]), wrap(k, G.dims[2])
	return G.data[(i*G.dims[1]+j)*G.dims[2]+k]
}

// Origin returns the value of the grid at the origin, the point used for the
// energy of the charge with its own images.
func (G *Grid) Origin() float64 {
	return G.data[0]
}

// AtFrac returns the value at the grid point closest to the fractional coordinates frac.
func (G *Grid) AtFrac(frac [3]float64) float64 {
	idx := defcorr.GridIndex(frac, G.dims)
	return G.At(idx[0], idx[1], idx[2])
}

// AtCart returns the value at the grid point closest to the cartesian point r, in A.
func (G *Grid) AtCart(lat *defcorr.Lattice, r [3]float64) float64 {
	return G.AtFrac(lat.Frac(r))
}

func wrap(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

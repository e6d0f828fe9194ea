/*
 * doc.go, part of defcorr.
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
Package defcorr is the main package of the defcorr library. It computes the anisotropic
finite-size correction (the extended Freysoldt correction of Kumagai and Oba, Phys. Rev. B 89,
195205 (2014)) for the energy of a charged point defect in a periodic supercell.

The root package provides the basic objects: lattices, dielectric tensors, crystal
structures and the error kinds shared by all the packages in the library.
The numerical work is done in the subpackages:

    madelung: gamma search, reciprocal-space potential grid, point-charge energy and
    anisotropic Madelung potential.

    sites: locating the defect and mapping every site of the bulk cell to the defect cell.

    potential: the two sources of site potentials (volumetric grids and site averages).

    kumagai: potential alignment and the full correction.

    vasp: readers for POSCAR, LOCPOT and OUTCAR files (optionally zstd-compressed).

    chemplot: the site potential plot.

    voro: the Wigner-Seitz cell of a lattice.

Lengths are in A and energies in eV at the API level. Internally, the lattice sums are
done in atomic units (Bohr, Hartree).
*/
package defcorr

/*
 * conversion.go, part of defcorr.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	Hart2EV = 27.2114 //Hartree to eV
	EV2Hart = 1 / 27.2114
	A2Bohr  = 1.8897 //Angstrom to Bohr. Kept at 4 decimals so energies match published Kumagai-Oba values.
	Bohr2A  = 1 / 1.8897
)

//Others
const (
	InvA2EV = 3.80986 //hbar^2/2m_e in eV*A^2, kinetic energy of a plane wave of unit wave vector.
)

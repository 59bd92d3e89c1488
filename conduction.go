/*
Copyright © 2021 the PCHE authors.
This file is part of PCHE.

PCHE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PCHE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PCHE.  If not, see <http://www.gnu.org/licenses/>.
*/

package pche

import "github.com/ctessum/sparse"

// plateConduction returns the intraplate conductive temperature rate
// [K/s] for one plate temperature grid: a second-difference Laplacian in
// both grid directions scaled by the solid thermal diffusivity. Edge rows
// and columns are insulated, using a doubled one-sided difference instead
// of wrapping around.
func plateConduction(T *sparse.DenseArray, dx, dz float64) *sparse.DenseArray {
	rows, cols := T.Shape[0], T.Shape[1]
	out := sparse.ZerosDense(rows, cols)
	alpha := metalK / (metalRho * metalCp)
	dx2, dz2 := dx*dx, dz*dz

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t := T.Get(i, j)

			var ddx float64
			switch j {
			case 0:
				ddx = 2 * (T.Get(i, 1) - t) / dx2
			case cols - 1:
				ddx = 2 * (T.Get(i, cols-2) - t) / dx2
			default:
				ddx = (T.Get(i, j+1) - 2*t + T.Get(i, j-1)) / dx2
			}

			var ddz float64
			switch i {
			case 0:
				ddz = 2 * (T.Get(1, j) - t) / dz2
			case rows - 1:
				ddz = 2 * (T.Get(rows-2, j) - t) / dz2
			default:
				ddz = (T.Get(i+1, j) - 2*t + T.Get(i-1, j)) / dz2
			}

			out.Set(alpha*(ddx+ddz), i, j)
		}
	}
	return out
}

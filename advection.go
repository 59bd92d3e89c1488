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

// advectionDelta returns the upstream-minus-local temperature difference
// for first-order upwind advection of one fluid field. The inlet row or
// column uses the stream's inlet temperature as the upstream value. The
// caller scales the result by velocity over pitch.
func advectionDelta(T *sparse.DenseArray, inletTemp float64, alongRows bool) *sparse.DenseArray {
	rows, cols := T.Shape[0], T.Shape[1]
	out := sparse.ZerosDense(rows, cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			upstream := inletTemp
			if alongRows {
				if i > 0 {
					upstream = T.Get(i-1, j)
				}
			} else {
				if j > 0 {
					upstream = T.Get(i, j-1)
				}
			}
			out.Set(upstream-T.Get(i, j), i, j)
		}
	}
	return out
}

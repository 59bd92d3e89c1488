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

import (
	"testing"

	"github.com/ctessum/sparse"
)

func TestAdvectionUniformAtInlet(t *testing.T) {
	T := sparse.ZerosDense(4, 5)
	for n := range T.Elements {
		T.Elements[n] = 650
	}
	for _, alongRows := range []bool{true, false} {
		out := advectionDelta(T, 650, alongRows)
		for n, v := range out.Elements {
			if v != 0 {
				t.Fatalf("alongRows=%v: delta at element %d = %g, want 0", alongRows, n, v)
			}
		}
	}
}

func TestAdvectionInletBoundary(t *testing.T) {
	T := sparse.ZerosDense(3, 3)
	for n := range T.Elements {
		T.Elements[n] = 500
	}

	// Column flow: only the first column sees the inlet.
	out := advectionDelta(T, 700, false)
	for i := 0; i < 3; i++ {
		if got := out.Get(i, 0); got != 200 {
			t.Errorf("inlet column cell (%d,0) delta = %g, want 200", i, got)
		}
		for j := 1; j < 3; j++ {
			if got := out.Get(i, j); got != 0 {
				t.Errorf("interior cell (%d,%d) delta = %g, want 0", i, j, got)
			}
		}
	}

	// Row flow: only the first row sees the inlet.
	out = advectionDelta(T, 700, true)
	for j := 0; j < 3; j++ {
		if got := out.Get(0, j); got != 200 {
			t.Errorf("inlet row cell (0,%d) delta = %g, want 200", j, got)
		}
		for i := 1; i < 3; i++ {
			if got := out.Get(i, j); got != 0 {
				t.Errorf("interior cell (%d,%d) delta = %g, want 0", i, j, got)
			}
		}
	}
}

func TestAdvectionUpwindDifference(t *testing.T) {
	// A profile rising along the flow direction gives negative deltas
	// everywhere downstream of the inlet.
	T := sparse.ZerosDense(3, 4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			T.Set(500+25*float64(j), i, j)
		}
	}
	out := advectionDelta(T, 500, false)
	for i := 0; i < 3; i++ {
		if got := out.Get(i, 0); got != 0 {
			t.Errorf("inlet cell (%d,0) delta = %g, want 0", i, got)
		}
		for j := 1; j < 4; j++ {
			if got := out.Get(i, j); got != -25 {
				t.Errorf("cell (%d,%d) delta = %g, want -25", i, j, got)
			}
		}
	}
}

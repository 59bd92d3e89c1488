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
	"fmt"

	"github.com/ctessum/sparse"
)

// UpdatePressures advances the stored pressure field of every pass using a
// Bernoulli head loss built from the friction factors, velocities, and
// densities of the most recent Derivatives call. The outer driver calls it
// between integration bursts; the right-hand side itself never does.
//
// Each field starts uniform at the stream inlet pressure. The first update
// marches the pressure cell by cell from the inlet edge and marks the
// field developed; later updates shift the previous field one cell
// downstream, subtract the fresh loss, and reset the inlet edge from the
// boundary condition.
func (e *Exchanger) UpdatePressures() error {
	if e.f[Utility1] == nil {
		return fmt.Errorf("pche: pressure update requires a prior derivative evaluation")
	}
	for p := Pass(0); p < NumPasses; p++ {
		stream, _, err := e.streamFor(p)
		if err != nil {
			return err
		}
		dP := e.headLoss(p)
		if !e.developed[p] {
			e.marchPressure(p, stream.InletPressure, dP)
			e.developed[p] = true
		} else {
			e.shiftPressure(p, stream.InletPressure, dP)
		}
	}
	return nil
}

// headLoss returns the per-cell Bernoulli pressure loss for the pass.
func (e *Exchanger) headLoss(p Pass) *sparse.DenseArray {
	pitch := e.flowPitch(p)
	dh := e.hydraulicDiam(p)
	dP := sparse.ZerosDense(e.Geom.Rows, e.Geom.Cols)
	for n := range dP.Elements {
		u := e.u[p].Elements[n]
		dP.Elements[n] = 2 * e.f[p].Elements[n] * pitch / dh * u * u *
			e.props[p].rho.Elements[n]
	}
	return dP
}

// marchPressure assigns the inlet edge from the boundary condition and
// accumulates the loss cell by cell along the flow direction.
func (e *Exchanger) marchPressure(p Pass, inlet float64, dP *sparse.DenseArray) {
	rows, cols := e.Geom.Rows, e.Geom.Cols
	P := e.pressure[p]
	if p.alongRows() {
		for j := 0; j < cols; j++ {
			P.Set(inlet-dP.Get(0, j), 0, j)
			for i := 1; i < rows; i++ {
				P.Set(P.Get(i-1, j)-dP.Get(i, j), i, j)
			}
		}
	} else {
		for i := 0; i < rows; i++ {
			P.Set(inlet-dP.Get(i, 0), i, 0)
			for j := 1; j < cols; j++ {
				P.Set(P.Get(i, j-1)-dP.Get(i, j), i, j)
			}
		}
	}
}

// shiftPressure moves the previous field one cell downstream, subtracts
// the fresh loss, and resets the inlet edge.
func (e *Exchanger) shiftPressure(p Pass, inlet float64, dP *sparse.DenseArray) {
	rows, cols := e.Geom.Rows, e.Geom.Cols
	old := e.pressure[p]
	P := sparse.ZerosDense(rows, cols)
	if p.alongRows() {
		for j := 0; j < cols; j++ {
			P.Set(inlet-dP.Get(0, j), 0, j)
			for i := 1; i < rows; i++ {
				P.Set(old.Get(i-1, j)-dP.Get(i, j), i, j)
			}
		}
	} else {
		for i := 0; i < rows; i++ {
			P.Set(inlet-dP.Get(i, 0), i, 0)
			for j := 1; j < cols; j++ {
				P.Set(old.Get(i, j-1)-dP.Get(i, j), i, j)
			}
		}
	}
	e.pressure[p] = P
}

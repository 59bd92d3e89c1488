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
	"errors"
	"fmt"

	"github.com/ctessum/sparse"
)

// ErrInvalidSelector indicates a fluid pass or plate identity outside the
// five defined for the exchanger.
var ErrInvalidSelector = errors.New("invalid stream selector")

// Pass identifies one of the five fluid passes through the plate stack,
// in stacking order. The utility stream flows through passes 1 and 5 and
// the reactant stream through passes 2 and 4.
type Pass int

const (
	Utility1 Pass = iota
	Reactant2
	Fuel3
	Reactant4
	Utility5

	// NumPasses is the number of fluid passes.
	NumPasses
)

var passNames = [NumPasses]string{"utility1", "reactant2", "fuel3", "reactant4", "utility5"}

func (p Pass) String() string {
	if p < 0 || p >= NumPasses {
		return fmt.Sprintf("pass(%d)", int(p))
	}
	return passNames[p]
}

func (p Pass) valid() bool { return p >= 0 && p < NumPasses }

// alongRows reports whether the pass flows in the row direction of the
// grid. Utility passes flow row-wise; reactant and fuel passes flow
// column-wise.
func (p Pass) alongRows() bool { return p == Utility1 || p == Utility5 }

// Plate identifies one of the five solid plates. Plate i carries the
// channels of pass i; in the repeating stack the plates are adjacent in
// the order 1-2-3-4-5-1.
type Plate int

const (
	UtilityPlate1 Plate = iota
	ReactantPlate2
	FuelPlate3
	ReactantPlate4
	UtilityPlate5

	// NumPlates is the number of solid plates.
	NumPlates
)

var plateNames = [NumPlates]string{"utilityPlate1", "reactantPlate2", "fuelPlate3",
	"reactantPlate4", "utilityPlate5"}

func (p Plate) String() string {
	if p < 0 || p >= NumPlates {
		return fmt.Sprintf("plate(%d)", int(p))
	}
	return plateNames[p]
}

// State holds the ten temperature fields of the exchanger: one grid per
// fluid pass and one per plate, all sharing the same shape. The packed
// vector layout is the five fluid fields in pass order followed by the
// five plate fields in the same order, each grid flattened row-major.
type State struct {
	Fluid [NumPasses]*sparse.DenseArray
	Plate [NumPlates]*sparse.DenseArray
}

// NewState returns a State with all ten fields allocated and zero.
func NewState(rows, cols int) *State {
	s := new(State)
	for i := range s.Fluid {
		s.Fluid[i] = sparse.ZerosDense(rows, cols)
	}
	for i := range s.Plate {
		s.Plate[i] = sparse.ZerosDense(rows, cols)
	}
	return s
}

// Pack flattens the ten fields into a single vector in the fixed field
// order. The round trip through Unpack is exact.
func (s *State) Pack() []float64 {
	n := len(s.Fluid[0].Elements)
	v := make([]float64, 0, 10*n)
	for _, f := range s.Fluid {
		v = append(v, f.Elements...)
	}
	for _, p := range s.Plate {
		v = append(v, p.Elements...)
	}
	return v
}

// UnpackState splits a packed state vector into ten rows×cols grids in the
// fixed field order. A vector of the wrong length is a contract violation.
func UnpackState(v []float64, rows, cols int) (*State, error) {
	n := rows * cols
	if len(v) != 10*n {
		return nil, fmt.Errorf("pche: state vector has length %d, want %d", len(v), 10*n)
	}
	s := NewState(rows, cols)
	for i := range s.Fluid {
		copy(s.Fluid[i].Elements, v[i*n:(i+1)*n])
	}
	for i := range s.Plate {
		copy(s.Plate[i].Elements, v[(len(s.Fluid)+i)*n:(len(s.Fluid)+i+1)*n])
	}
	return s, nil
}

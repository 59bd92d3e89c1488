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
	"sort"

	"github.com/ctessum/sparse"
)

// ErrDegenerateComposition indicates a composition whose mole total is
// zero, which cannot be normalized.
var ErrDegenerateComposition = errors.New("degenerate composition")

// Stream describes one fluid entering the exchanger. A stream is replaced
// wholesale through the exchanger's update operations, which also refresh
// the composition-derived mixture state.
type Stream struct {
	// Composition maps species names to mass fractions, which must sum
	// to one.
	Composition map[string]float64

	MassFlow      float64 // [kg/s]
	InletTemp     float64 // [K]
	InletPressure float64 // absolute [Pa]
}

// mixture is the composition-derived state of one stream: species records,
// mole fractions, and mean molecular weight. It is recomputed whenever the
// stream is replaced.
type mixture struct {
	species  []string
	recs     []*SpeciesRecord
	moleFrac []float64
	mw       float64 // mean molecular weight [g/mol]
}

// newMixture converts the stream's mass-fraction composition to mole
// fractions and the mean molecular weight. Species are ordered by name so
// that iteration order, and with it floating-point summation order, is
// deterministic.
func newMixture(s *Stream, table *PropertyTable) (*mixture, error) {
	m := &mixture{species: make([]string, 0, len(s.Composition))}
	for name := range s.Composition {
		m.species = append(m.species, name)
	}
	sort.Strings(m.species)

	m.recs = make([]*SpeciesRecord, len(m.species))
	nmol := make([]float64, len(m.species))
	var total float64
	for i, name := range m.species {
		rec, err := table.Lookup(name)
		if err != nil {
			return nil, err
		}
		m.recs[i] = rec
		nmol[i] = s.Composition[name] / rec.MW
		total += nmol[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("pche: stream composition: %w", ErrDegenerateComposition)
	}

	m.moleFrac = make([]float64, len(m.species))
	for i := range nmol {
		m.moleFrac[i] = nmol[i] / total
		m.mw += m.moleFrac[i] * m.recs[i].MW
	}
	return m, nil
}

// cpCoefficients returns the five mole-averaged heat-capacity polynomial
// coefficient fields for the mixture at the local temperatures. The low-
// or high-range coefficient set is selected per cell at 1000 K, so each
// coefficient is itself a field.
func (m *mixture) cpCoefficients(T *sparse.DenseArray) [5]*sparse.DenseArray {
	var coeff [5]*sparse.DenseArray
	for k := range coeff {
		coeff[k] = sparse.ZerosDense(T.Shape...)
	}
	for n, temp := range T.Elements {
		for i, rec := range m.recs {
			x := m.moleFrac[i]
			for k := range coeff {
				coeff[k].Elements[n] += x * rec.cpCoeff(k, temp)
			}
		}
	}
	return coeff
}

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
	"math/rand"
	"testing"
)

func TestStatePackRoundTrip(t *testing.T) {
	const rows, cols = 4, 7
	rng := rand.New(rand.NewSource(1))

	s := NewState(rows, cols)
	for p := Pass(0); p < NumPasses; p++ {
		for n := range s.Fluid[p].Elements {
			s.Fluid[p].Elements[n] = 300 + 700*rng.Float64()
		}
	}
	for p := Plate(0); p < NumPlates; p++ {
		for n := range s.Plate[p].Elements {
			s.Plate[p].Elements[n] = 300 + 700*rng.Float64()
		}
	}

	v := s.Pack()
	if len(v) != 10*rows*cols {
		t.Fatalf("packed length = %d, want %d", len(v), 10*rows*cols)
	}
	s2, err := UnpackState(v, rows, cols)
	if err != nil {
		t.Fatal(err)
	}

	// The round trip must be bit-exact.
	for p := Pass(0); p < NumPasses; p++ {
		for n, want := range s.Fluid[p].Elements {
			if got := s2.Fluid[p].Elements[n]; got != want {
				t.Fatalf("fluid %v element %d: %v != %v", p, n, got, want)
			}
		}
	}
	for p := Plate(0); p < NumPlates; p++ {
		for n, want := range s.Plate[p].Elements {
			if got := s2.Plate[p].Elements[n]; got != want {
				t.Fatalf("plate %v element %d: %v != %v", p, n, got, want)
			}
		}
	}
}

func TestStatePackOrder(t *testing.T) {
	const rows, cols = 2, 3
	s := NewState(rows, cols)
	for p := Pass(0); p < NumPasses; p++ {
		for n := range s.Fluid[p].Elements {
			s.Fluid[p].Elements[n] = float64(p)
		}
	}
	for p := Plate(0); p < NumPlates; p++ {
		for n := range s.Plate[p].Elements {
			s.Plate[p].Elements[n] = float64(int(NumPasses) + int(p))
		}
	}
	v := s.Pack()
	n := rows * cols
	for block := 0; block < 10; block++ {
		for i := 0; i < n; i++ {
			if v[block*n+i] != float64(block) {
				t.Fatalf("block %d element %d = %v, want %d", block, i, v[block*n+i], block)
			}
		}
	}
}

func TestUnpackStateBadLength(t *testing.T) {
	if _, err := UnpackState(make([]float64, 11), 2, 2); err == nil {
		t.Error("unpacking a vector of the wrong length did not fail")
	}
}

func TestPassProperties(t *testing.T) {
	names := map[Pass]string{
		Utility1:  "utility1",
		Reactant2: "reactant2",
		Fuel3:     "fuel3",
		Reactant4: "reactant4",
		Utility5:  "utility5",
	}
	for p, want := range names {
		if p.String() != want {
			t.Errorf("pass %d String() = %q, want %q", int(p), p.String(), want)
		}
	}
	for p := Pass(0); p < NumPasses; p++ {
		wantRows := p == Utility1 || p == Utility5
		if p.alongRows() != wantRows {
			t.Errorf("pass %v alongRows() = %v, want %v", p, p.alongRows(), wantRows)
		}
	}
}

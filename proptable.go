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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrTableCorrupt indicates a malformed line in one of the property
	// table files.
	ErrTableCorrupt = errors.New("property table corrupt")

	// ErrUnknownSpecies indicates a species that is not present in the
	// property table.
	ErrUnknownSpecies = errors.New("unknown species")
)

// Molecule shape codes used in the transport table.
const (
	ShapeMonatomic = 0
	ShapeLinear    = 1
	ShapeNonlinear = 2
)

// SpeciesRecord holds the thermodynamic and kinetic-theory parameters for
// one gas species. The heat-capacity polynomials are NASA-format seven
// coefficient sets for two temperature ranges; only the first five
// coefficients enter the cp fit. Transport parameters follow the CHEMKIN
// transport database conventions.
type SpeciesRecord struct {
	Name string

	// Shape is the molecule shape code: 0 monatomic, 1 linear, 2 nonlinear.
	Shape int

	EpsOverKappa   float64 // Lennard-Jones well depth over κ [K]
	Sigma          float64 // Lennard-Jones collision diameter [Å]
	Dipole         float64 // dipole moment [Debye]
	Polarizability float64 // [Å³]
	RotRelax       float64 // rotational relaxation number at 298 K
	MW             float64 // molecular weight [g/mol]

	// TMin is the minimum valid temperature of the low-range polynomial.
	TMin float64

	// CpLow is valid up to 1000 K, CpHigh above 1000 K.
	CpLow  [7]float64
	CpHigh [7]float64
}

// cpPoly evaluates the dimensionless heat capacity cp/R at temperature T,
// selecting the low- or high-range coefficient set at 1000 K.
func (s *SpeciesRecord) cpPoly(T float64) float64 {
	a := &s.CpLow
	if T > 1000 {
		a = &s.CpHigh
	}
	return a[0] + a[1]*T + a[2]*T*T + a[3]*T*T*T + a[4]*T*T*T*T
}

// cpCoeff returns the i'th cp polynomial coefficient for temperature T,
// with the same low/high range selection as cpPoly.
func (s *SpeciesRecord) cpCoeff(i int, T float64) float64 {
	if T > 1000 {
		return s.CpHigh[i]
	}
	return s.CpLow[i]
}

// PropertyTable is a lookup of per-species thermodynamic and transport
// parameters, loaded once at model construction.
type PropertyTable struct {
	records map[string]*SpeciesRecord
}

// Lookup returns the record for the named species, or ErrUnknownSpecies
// if the species is not in the table.
func (t *PropertyTable) Lookup(name string) (*SpeciesRecord, error) {
	r, ok := t.records[name]
	if !ok {
		return nil, fmt.Errorf("pche: species %q: %w", name, ErrUnknownSpecies)
	}
	return r, nil
}

// Len returns the number of species in the table.
func (t *PropertyTable) Len() int { return len(t.records) }

// LoadPropertyTable reads the thermodynamic and transport tables. Each
// thermo line holds a species key, the minimum valid temperature, and the
// seven high-range followed by the seven low-range polynomial coefficients.
// Each transport line holds a species key, the shape code, ε/κ, σ, the
// dipole moment, the polarizability, the rotational relaxation number, and
// the molecular weight. A species must appear in both tables to be usable.
func LoadPropertyTable(thermo, transport io.Reader) (*PropertyTable, error) {
	t := &PropertyTable{records: make(map[string]*SpeciesRecord)}
	if err := t.readThermo(thermo); err != nil {
		return nil, err
	}
	if err := t.readTransport(transport); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadPropertyTableFile is a convenience wrapper around LoadPropertyTable
// for on-disk tables.
func LoadPropertyTableFile(thermoPath, transportPath string) (*PropertyTable, error) {
	tf, err := os.Open(thermoPath)
	if err != nil {
		return nil, fmt.Errorf("pche: opening thermo table: %v", err)
	}
	defer tf.Close()
	xf, err := os.Open(transportPath)
	if err != nil {
		return nil, fmt.Errorf("pche: opening transport table: %v", err)
	}
	defer xf.Close()
	return LoadPropertyTable(tf, xf)
}

func (t *PropertyTable) record(key string) *SpeciesRecord {
	r, ok := t.records[key]
	if !ok {
		r = &SpeciesRecord{Name: key}
		t.records[key] = r
	}
	return r
}

func (t *PropertyTable) readThermo(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 16 {
			return fmt.Errorf("pche: thermo table line %d: %d fields instead of 16: %w",
				n, len(fields), ErrTableCorrupt)
		}
		rec := t.record(fields[0])
		vals, err := parseFloats(fields[1:])
		if err != nil {
			return fmt.Errorf("pche: thermo table line %d: %v: %w", n, err, ErrTableCorrupt)
		}
		rec.TMin = vals[0]
		copy(rec.CpHigh[:], vals[1:8])
		copy(rec.CpLow[:], vals[8:15])
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("pche: reading thermo table: %v", err)
	}
	return nil
}

func (t *PropertyTable) readTransport(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 8 {
			return fmt.Errorf("pche: transport table line %d: %d fields instead of 8: %w",
				n, len(fields), ErrTableCorrupt)
		}
		rec := t.record(fields[0])
		shape, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("pche: transport table line %d: %v: %w", n, err, ErrTableCorrupt)
		}
		vals, err := parseFloats(fields[2:])
		if err != nil {
			return fmt.Errorf("pche: transport table line %d: %v: %w", n, err, ErrTableCorrupt)
		}
		rec.Shape = shape
		rec.EpsOverKappa = vals[0]
		rec.Sigma = vals[1]
		rec.Dipole = vals[2]
		rec.Polarizability = vals[3]
		rec.RotRelax = vals[4]
		rec.MW = vals[5]
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("pche: reading transport table: %v", err)
	}
	return nil
}

func parseFloats(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

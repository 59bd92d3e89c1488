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

package pcheutil

import (
	"strings"
	"testing"

	"github.com/khurrumsaleem/pche"
)

const testConfig = `
ThermoFile = "../testdata/thermo_oneline.dat"
TransportFile = "../testdata/transport.dat"

[Reactant]
MassFlow = 0.0014
Temperature = 900.0
Pressure = 1.5e5
[Reactant.Composition]
CO2 = 1.0

[Utility]
MassFlow = 0.005
Temperature = 700.0
Pressure = 3.0e5
[Utility.Composition]
CO2 = 1.0

[Fuel]
MassFlow = 0.0001
Temperature = 500.0
Pressure = 1.2e5
[Fuel.Composition]
CH4 = 1.0

[Geometry]
ReactantDiameter = 0.0015
UtilityDiameter = 0.0015
Rows = 10
Columns = 10
WallThickness = 0.0011
PlateThickness = 0.0021

[Solver]
Bursts = 3
BurstTime = 50.0
`

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reactant.Temperature != 900 {
		t.Errorf("reactant temperature = %g, want 900", cfg.Reactant.Temperature)
	}
	if cfg.Geometry.Rows != 10 || cfg.Geometry.Columns != 10 {
		t.Errorf("grid = %d×%d, want 10×10", cfg.Geometry.Rows, cfg.Geometry.Columns)
	}
	if cfg.Solver.Bursts != 3 {
		t.Errorf("bursts = %d, want 3", cfg.Solver.Bursts)
	}
}

func TestReadConfigValidation(t *testing.T) {
	cases := []struct {
		name     string
		old, new string
	}{
		{"bad composition sum", "CO2 = 1.0\n\n[Utility]", "CO2 = 0.5\n\n[Utility]"},
		{"zero mass flow", "MassFlow = 0.0014", "MassFlow = 0.0"},
		{"negative diameter", "ReactantDiameter = 0.0015", "ReactantDiameter = -0.0015"},
		{"single row", "Rows = 10", "Rows = 1"},
	}
	for _, c := range cases {
		broken := strings.Replace(testConfig, c.old, c.new, 1)
		if broken == testConfig {
			t.Fatalf("%s: replacement had no effect", c.name)
		}
		if _, err := ReadConfig(strings.NewReader(broken)); err == nil {
			t.Errorf("%s: invalid configuration accepted", c.name)
		}
	}
}

func TestConfigBuild(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	ex, solver, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if ex.Rows() != 10 || ex.Cols() != 10 {
		t.Errorf("exchanger grid = %d×%d, want 10×10", ex.Rows(), ex.Cols())
	}
	if solver.Bursts != 3 || solver.BurstTime != 50 {
		t.Errorf("solver schedule = %d×%g s, want 3×50 s", solver.Bursts, solver.BurstTime)
	}

	// The built model evaluates on its own initial state.
	d, err := ex.Derivatives(0, ex.InitialState().Pack())
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 10*10*10 {
		t.Errorf("derivative length = %d, want 1000", len(d))
	}
}

func TestWriteTemperatures(t *testing.T) {
	s := pche.NewState(2, 2)
	for p := pche.Pass(0); p < pche.NumPasses; p++ {
		for n := range s.Fluid[p].Elements {
			s.Fluid[p].Elements[n] = 700
		}
	}
	var b strings.Builder
	if err := WriteTemperatures(&b, s); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	// Header plus ten 2×2 fields.
	if len(lines) != 1+10*4 {
		t.Fatalf("output has %d lines, want %d", len(lines), 1+10*4)
	}
	if lines[0] != "field,row,col,temperature_K" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "utility1,0,0,700") {
		t.Errorf("first record = %q", lines[1])
	}
}

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

// Package pcheutil holds the configuration layer and command-line
// interface for the PCHE model.
package pcheutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"

	"github.com/khurrumsaleem/pche"
)

// StreamConfig describes one inlet stream in the scenario file.
type StreamConfig struct {
	// Composition maps species names to mass fractions, which must sum
	// to one.
	Composition map[string]float64
	MassFlow    float64 // [kg/s]
	Temperature float64 // [K]
	Pressure    float64 // absolute [Pa]
}

// GeometryConfig describes the exchanger plate geometry.
type GeometryConfig struct {
	ReactantDiameter float64 // [m]
	UtilityDiameter  float64 // [m]
	Rows             int
	Columns          int
	WallThickness    float64 // [m]
	PlateThickness   float64 // [m]
}

// SolverConfig holds the integrator settings; zero values select the
// solver defaults.
type SolverConfig struct {
	RelTol         float64
	AbsTol         float64
	Bursts         int
	BurstTime      float64 // [s]
	ConvergenceTol float64 // [K/s]
}

// Config is a TOML scenario description for one simulation.
type Config struct {
	// ThermoFile and TransportFile locate the species property tables.
	ThermoFile    string
	TransportFile string

	Reactant StreamConfig
	Utility  StreamConfig
	Fuel     StreamConfig

	Geometry GeometryConfig
	Solver   SolverConfig

	// OutputFile receives the final temperature fields as CSV; empty
	// means standard output.
	OutputFile string
}

// ReadConfig decodes and validates a TOML scenario.
func ReadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("pcheutil: decoding configuration: %v", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	meter  = unit.Dimensions{unit.LengthDim: 1}
	kgPerS = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}
	kelvin = unit.Dimensions{unit.TemperatureDim: 1}
	pascal = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
)

// checkDim validates that a quantity carries the expected dimensions and
// a positive value, and returns the value.
func checkDim(name string, v *unit.Unit, want unit.Dimensions) (float64, error) {
	if !v.Dimensions().Matches(want) {
		return 0, fmt.Errorf("pcheutil: %s: dimensions %v do not match %v",
			name, v.Dimensions(), want)
	}
	if val := v.Value(); val > 0 && !math.IsInf(val, 0) {
		return val, nil
	}
	return 0, fmt.Errorf("pcheutil: %s must be positive, got %g", name, v.Value())
}

func (c *Config) check() error {
	type q struct {
		name string
		u    *unit.Unit
		want unit.Dimensions
	}
	quantities := []q{
		{"Geometry.ReactantDiameter", unit.New(c.Geometry.ReactantDiameter, meter), meter},
		{"Geometry.UtilityDiameter", unit.New(c.Geometry.UtilityDiameter, meter), meter},
		{"Geometry.WallThickness", unit.New(c.Geometry.WallThickness, meter), meter},
		{"Geometry.PlateThickness", unit.New(c.Geometry.PlateThickness, meter), meter},
	}
	for _, s := range []struct {
		name string
		sc   *StreamConfig
	}{{"Reactant", &c.Reactant}, {"Utility", &c.Utility}, {"Fuel", &c.Fuel}} {
		quantities = append(quantities,
			q{s.name + ".MassFlow", unit.New(s.sc.MassFlow, kgPerS), kgPerS},
			q{s.name + ".Temperature", unit.New(s.sc.Temperature, kelvin), kelvin},
			q{s.name + ".Pressure", unit.New(s.sc.Pressure, pascal), pascal},
		)
		var sum float64
		for _, frac := range s.sc.Composition {
			sum += frac
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("pcheutil: %s.Composition mass fractions sum to %g, want 1",
				s.name, sum)
		}
	}
	for _, qq := range quantities {
		if _, err := checkDim(qq.name, qq.u, qq.want); err != nil {
			return err
		}
	}
	if c.Geometry.Rows < 2 || c.Geometry.Columns < 2 {
		return fmt.Errorf("pcheutil: geometry needs at least 2 rows and 2 columns, got %d×%d",
			c.Geometry.Rows, c.Geometry.Columns)
	}
	return nil
}

func (s *StreamConfig) stream() pche.Stream {
	return pche.Stream{
		Composition:   s.Composition,
		MassFlow:      s.MassFlow,
		InletTemp:     s.Temperature,
		InletPressure: s.Pressure,
	}
}

// Build loads the property tables and constructs the exchanger and its
// solver from the scenario.
func (c *Config) Build() (*pche.Exchanger, *pche.Solver, error) {
	table, err := pche.LoadPropertyTableFile(c.ThermoFile, c.TransportFile)
	if err != nil {
		return nil, nil, err
	}
	geom := pche.NewGeometry(c.Geometry.ReactantDiameter, c.Geometry.UtilityDiameter,
		c.Geometry.Rows, c.Geometry.Columns,
		c.Geometry.WallThickness, c.Geometry.PlateThickness)
	ex, err := pche.NewExchanger(c.Reactant.stream(), c.Utility.stream(),
		c.Fuel.stream(), geom, table)
	if err != nil {
		return nil, nil, err
	}

	solver := pche.NewSolver(ex)
	if c.Solver.RelTol > 0 {
		solver.RelTol = c.Solver.RelTol
	}
	if c.Solver.AbsTol > 0 {
		solver.AbsTol = c.Solver.AbsTol
	}
	if c.Solver.Bursts > 0 {
		solver.Bursts = c.Solver.Bursts
	}
	if c.Solver.BurstTime > 0 {
		solver.BurstTime = c.Solver.BurstTime
	}
	if c.Solver.ConvergenceTol > 0 {
		solver.ConvergenceTol = c.Solver.ConvergenceTol
	}
	return ex, solver, nil
}

// WriteTemperatures writes the ten temperature fields as CSV rows of
// field name, row index, column index, temperature.
func WriteTemperatures(w io.Writer, s *pche.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "row", "col", "temperature_K"}); err != nil {
		return err
	}
	write := func(name string, arr *sparse.DenseArray, rows, cols int) error {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				rec := []string{name, strconv.Itoa(i), strconv.Itoa(j),
					strconv.FormatFloat(arr.Get(i, j), 'g', -1, 64)}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	}
	rows, cols := s.Fluid[0].Shape[0], s.Fluid[0].Shape[1]
	for p := pche.Pass(0); p < pche.NumPasses; p++ {
		if err := write(p.String(), s.Fluid[p], rows, cols); err != nil {
			return err
		}
	}
	for p := pche.Plate(0); p < pche.NumPlates; p++ {
		if err := write(p.String(), s.Plate[p], rows, cols); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

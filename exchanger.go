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

// Exchanger is one simulation instance: three stream descriptors, the
// plate geometry, the species property table, and the pressure fields that
// persist between integration bursts. All other per-pass state is derived
// wholesale on every Derivatives call, so identical inputs always yield
// identical outputs.
type Exchanger struct {
	Geom  *Geometry
	Table *PropertyTable

	reactant, utility, fuel          Stream
	reactantMix, utilityMix, fuelMix *mixture

	corr *correlationSet

	// Axial cell-center positions along each flow direction [m].
	reactantPos []float64 // length Cols, reactant/fuel flow
	utilityPos  []float64 // length Rows, utility flow

	// Pressure fields, one per pass, mutated only by UpdatePressures.
	pressure  [NumPasses]*sparse.DenseArray
	developed [NumPasses]bool

	// Derived per-call state, overwritten by each Derivatives call.
	state   *State
	cpCoeff [NumPasses][5]*sparse.DenseArray
	props   [NumPasses]fluidProps
	u       [NumPasses]*sparse.DenseArray // bulk velocity [m/s]
	re      [NumPasses]*sparse.DenseArray // Reynolds number
	pr      [NumPasses]*sparse.DenseArray // Prandtl number
	f       [NumPasses]*sparse.DenseArray // Fanning friction factor
	nu      [NumPasses]*sparse.DenseArray // Nusselt number
	h       [NumPasses]*sparse.DenseArray // convective coefficient [W/(m² K)]
	qFluid  [NumPasses]*sparse.DenseArray // net heat rate into fluid cells [W]
	qPlate  [NumPlates]*sparse.DenseArray // net heat rate into plate cells [W]
}

// NewExchanger builds a simulation instance from the three stream
// descriptors, the geometry, and a loaded property table. Compositions are
// validated against the table here; an unknown species or a degenerate
// composition fails construction.
func NewExchanger(reactant, utility, fuel Stream, geom *Geometry, table *PropertyTable) (*Exchanger, error) {
	e := &Exchanger{
		Geom:     geom,
		Table:    table,
		reactant: reactant,
		utility:  utility,
		fuel:     fuel,
		corr:     newCorrelationSet(geom.AspectRatio),
	}

	var err error
	if e.reactantMix, err = newMixture(&e.reactant, table); err != nil {
		return nil, fmt.Errorf("pche: reactant stream: %w", err)
	}
	if e.utilityMix, err = newMixture(&e.utility, table); err != nil {
		return nil, fmt.Errorf("pche: utility stream: %w", err)
	}
	if e.fuelMix, err = newMixture(&e.fuel, table); err != nil {
		return nil, fmt.Errorf("pche: fuel stream: %w", err)
	}

	e.reactantPos = make([]float64, geom.Cols)
	for j := range e.reactantPos {
		e.reactantPos[j] = (float64(j) + 0.5) * geom.Dx
	}
	e.utilityPos = make([]float64, geom.Rows)
	for i := range e.utilityPos {
		e.utilityPos[i] = (float64(i) + 0.5) * geom.Dz
	}

	for p := Pass(0); p < NumPasses; p++ {
		stream, _, err := e.streamFor(p)
		if err != nil {
			return nil, err
		}
		e.pressure[p] = sparse.ZerosDense(geom.Rows, geom.Cols)
		for n := range e.pressure[p].Elements {
			e.pressure[p].Elements[n] = stream.InletPressure
		}
	}
	return e, nil
}

// streamFor maps a pass to its stream descriptor and mixture state.
func (e *Exchanger) streamFor(p Pass) (*Stream, *mixture, error) {
	switch p {
	case Utility1, Utility5:
		return &e.utility, e.utilityMix, nil
	case Reactant2, Reactant4:
		return &e.reactant, e.reactantMix, nil
	case Fuel3:
		return &e.fuel, e.fuelMix, nil
	default:
		return nil, nil, fmt.Errorf("pche: pass %d: %w", int(p), ErrInvalidSelector)
	}
}

// channels returns the number of parallel channels carrying the pass.
func (e *Exchanger) channels(p Pass) int {
	if p.alongRows() {
		return e.Geom.Cols
	}
	return e.Geom.Rows
}

// hydraulicDiam returns the hydraulic diameter of the pass's channels.
func (e *Exchanger) hydraulicDiam(p Pass) float64 {
	switch p {
	case Utility1, Utility5:
		return e.Geom.UtilityDh
	case Fuel3:
		return e.Geom.FuelDh
	default:
		return e.Geom.ReactantDh
	}
}

// crossSection returns the channel cross-sectional area of the pass.
func (e *Exchanger) crossSection(p Pass) float64 {
	switch p {
	case Utility1, Utility5:
		return e.Geom.UtilityCS
	case Fuel3:
		return e.Geom.FuelCS
	default:
		return e.Geom.ReactantCS
	}
}

// flowPitch returns the cell pitch along the pass's flow direction.
func (e *Exchanger) flowPitch(p Pass) float64 {
	if p.alongRows() {
		return e.Geom.Dz
	}
	return e.Geom.Dx
}

// fluidVcell returns the fluid unit-cell volume of the pass.
func (e *Exchanger) fluidVcell(p Pass) float64 {
	switch p {
	case Utility1, Utility5:
		return e.Geom.UtilityVcell
	case Fuel3:
		return e.Geom.FuelVcell
	default:
		return e.Geom.ReactantVcell
	}
}

// plateVcell returns the solid unit-cell volume of the plate.
func (e *Exchanger) plateVcell(p Plate) float64 {
	switch p {
	case UtilityPlate1, UtilityPlate5:
		return e.Geom.UtilityPlateVcell
	case FuelPlate3:
		return e.Geom.FuelPlateVcell
	default:
		return e.Geom.ReactantPlateVcell
	}
}

// Rows returns the number of grid rows.
func (e *Exchanger) Rows() int { return e.Geom.Rows }

// Cols returns the number of grid columns.
func (e *Exchanger) Cols() int { return e.Geom.Cols }

// UpdateReactant replaces the reactant stream descriptor and recomputes
// the composition-derived mixture state.
func (e *Exchanger) UpdateReactant(s Stream) error {
	mix, err := newMixture(&s, e.Table)
	if err != nil {
		return fmt.Errorf("pche: reactant stream: %w", err)
	}
	e.reactant, e.reactantMix = s, mix
	return nil
}

// UpdateUtility replaces the utility stream descriptor and recomputes the
// composition-derived mixture state.
func (e *Exchanger) UpdateUtility(s Stream) error {
	mix, err := newMixture(&s, e.Table)
	if err != nil {
		return fmt.Errorf("pche: utility stream: %w", err)
	}
	e.utility, e.utilityMix = s, mix
	return nil
}

// UpdateFuel replaces the fuel stream descriptor and recomputes the
// composition-derived mixture state.
func (e *Exchanger) UpdateFuel(s Stream) error {
	mix, err := newMixture(&s, e.Table)
	if err != nil {
		return fmt.Errorf("pche: fuel stream: %w", err)
	}
	e.fuel, e.fuelMix = s, mix
	return nil
}

// InitialState returns the uniform starting state: each fluid field and
// its co-located plate field at the stream's inlet temperature.
func (e *Exchanger) InitialState() *State {
	s := NewState(e.Geom.Rows, e.Geom.Cols)
	for p := Pass(0); p < NumPasses; p++ {
		stream, _, _ := e.streamFor(p)
		for n := range s.Fluid[p].Elements {
			s.Fluid[p].Elements[n] = stream.InletTemp
			s.Plate[p].Elements[n] = stream.InletTemp
		}
	}
	return s
}

// Derivatives evaluates the right-hand side of the coupled energy balance:
// given the packed ten-field temperature state it returns the packed
// temperature time-derivative in the same layout. The simulation time t is
// unused by the model but is part of the integrator contract. The method
// may be called arbitrarily many times per integrator step, including for
// finite-difference Jacobian perturbations.
func (e *Exchanger) Derivatives(t float64, v []float64) ([]float64, error) {
	_ = t
	rows, cols := e.Geom.Rows, e.Geom.Cols
	s, err := UnpackState(v, rows, cols)
	if err != nil {
		return nil, err
	}
	e.state = s

	// Mixture heat-capacity coefficients and transport properties for
	// every pass. Coefficients depend on the local temperature range, so
	// they are rebuilt on every call even though the compositions rarely
	// change between calls.
	for p := Pass(0); p < NumPasses; p++ {
		_, mix, err := e.streamFor(p)
		if err != nil {
			return nil, err
		}
		e.cpCoeff[p] = mix.cpCoefficients(s.Fluid[p])
		e.props[p] = evalProperties(mix, s.Fluid[p], e.pressure[p], e.cpCoeff[p])
	}

	// Bulk velocity, Reynolds and Prandtl numbers, flow correlations, and
	// convective coefficients.
	for p := Pass(0); p < NumPasses; p++ {
		stream, _, _ := e.streamFor(p)
		nchan := float64(e.channels(p))
		cs := e.crossSection(p)
		dh := e.hydraulicDiam(p)
		perChannel := stream.MassFlow / nchan
		fp := e.props[p]

		e.u[p] = sparse.ZerosDense(rows, cols)
		e.re[p] = sparse.ZerosDense(rows, cols)
		e.pr[p] = sparse.ZerosDense(rows, cols)
		e.f[p] = sparse.ZerosDense(rows, cols)
		e.nu[p] = sparse.ZerosDense(rows, cols)
		e.h[p] = sparse.ZerosDense(rows, cols)

		for n := range e.u[p].Elements {
			i, j := n/cols, n%cols
			rho := fp.rho.Elements[n]
			mu := fp.mu.Elements[n]
			k := fp.k.Elements[n]
			cp := fp.cp.Elements[n]

			u := stream.MassFlow / (rho * nchan * cs)
			re := rho * u * dh / mu
			prn := mu * cp / k

			pos := e.reactantPos[j]
			if p.alongRows() {
				pos = e.utilityPos[i]
			}
			lplus := mu * pos / perChannel
			zstar := (pos / dh) / (re * prn)

			fr, nu := e.corr.eval(re, prn, lplus, zstar)

			e.u[p].Elements[n] = u
			e.re[p].Elements[n] = re
			e.pr[p].Elements[n] = prn
			e.f[p].Elements[n] = fr
			e.nu[p].Elements[n] = nu
			e.h[p].Elements[n] = nu * k / dh
		}
	}

	e.assembleHeatRates(s)

	// Convert heat rates to temperature derivatives and add the advective
	// and intraplate-conduction contributions.
	d := NewState(rows, cols)
	for p := Pass(0); p < NumPasses; p++ {
		stream, _, _ := e.streamFor(p)
		vcell := e.fluidVcell(p)
		pitch := e.flowPitch(p)
		adv := advectionDelta(s.Fluid[p], stream.InletTemp, p.alongRows())
		for n := range d.Fluid[p].Elements {
			rho := e.props[p].rho.Elements[n]
			cp := e.props[p].cp.Elements[n]
			d.Fluid[p].Elements[n] = e.qFluid[p].Elements[n]/(rho*vcell*cp) +
				e.u[p].Elements[n]*adv.Elements[n]/pitch
		}
	}
	for p := Plate(0); p < NumPlates; p++ {
		vcell := e.plateVcell(p)
		cond := plateConduction(s.Plate[p], e.Geom.Dx, e.Geom.Dz)
		for n := range d.Plate[p].Elements {
			d.Plate[p].Elements[n] = e.qPlate[p].Elements[n]/(metalRho*vcell*metalCp) +
				cond.Elements[n]
		}
	}
	return d.Pack(), nil
}

// assembleHeatRates computes the net convective heat rate into every fluid
// cell and the net convective-plus-interplate-conductive heat rate into
// every plate cell. Each contact area is used identically on both sides of
// a pair, so the exchange between any two adjacent entities cancels
// exactly when summed.
func (e *Exchanger) assembleHeatRates(s *State) {
	g := e.Geom
	rows, cols := g.Rows, g.Cols
	for p := Pass(0); p < NumPasses; p++ {
		e.qFluid[p] = sparse.ZerosDense(rows, cols)
	}
	for p := Plate(0); p < NumPlates; p++ {
		e.qPlate[p] = sparse.ZerosDense(rows, cols)
	}

	for n := 0; n < rows*cols; n++ {
		u1 := s.Fluid[Utility1].Elements[n]
		r2 := s.Fluid[Reactant2].Elements[n]
		f3 := s.Fluid[Fuel3].Elements[n]
		r4 := s.Fluid[Reactant4].Elements[n]
		u5 := s.Fluid[Utility5].Elements[n]
		uP1 := s.Plate[UtilityPlate1].Elements[n]
		rP2 := s.Plate[ReactantPlate2].Elements[n]
		fP3 := s.Plate[FuelPlate3].Elements[n]
		rP4 := s.Plate[ReactantPlate4].Elements[n]
		uP5 := s.Plate[UtilityPlate5].Elements[n]

		hU1 := e.h[Utility1].Elements[n]
		hR2 := e.h[Reactant2].Elements[n]
		hF3 := e.h[Fuel3].Elements[n]
		hR4 := e.h[Reactant4].Elements[n]
		hU5 := e.h[Utility5].Elements[n]

		// Fluid cells: convective exchange with the plate across the
		// channel and with the channel wall of the fluid's own plate.
		e.qFluid[Utility1].Elements[n] = hU1 * (g.AreaUtilityFacing*(uP5-u1) +
			g.AreaUtilityWall*(uP1-u1))
		e.qFluid[Reactant2].Elements[n] = hR2 * (g.AreaReactantFacing*(uP1-r2) +
			g.AreaReactantWall*(rP2-r2))
		e.qFluid[Fuel3].Elements[n] = hF3 * (g.AreaReactantFacing*(rP2-f3) +
			g.AreaReactantWall*(fP3-f3))
		e.qFluid[Reactant4].Elements[n] = hR4 * (g.AreaReactantFacing*(fP3-r4) +
			g.AreaReactantWall*(rP4-r4))
		e.qFluid[Utility5].Elements[n] = hU5 * (g.AreaUtilityFacing*(rP4-u5) +
			g.AreaUtilityWall*(uP5-u5))

		// Plate cells: the mirrored convective terms plus interplate
		// conduction with the neighboring plates in the stack.
		e.qPlate[UtilityPlate1].Elements[n] = hU1*g.AreaUtilityWall*(u1-uP1) +
			hR2*g.AreaReactantFacing*(r2-uP1) +
			metalK*(g.AreaPlatePairUtility*(uP5-uP1)+g.AreaPlatePairFluid*(rP2-uP1))
		e.qPlate[ReactantPlate2].Elements[n] = hR2*g.AreaReactantWall*(r2-rP2) +
			hF3*g.AreaReactantFacing*(f3-rP2) +
			metalK*g.AreaPlatePairFluid*(uP1+fP3-2*rP2)
		e.qPlate[FuelPlate3].Elements[n] = hF3*g.AreaReactantWall*(f3-fP3) +
			hR4*g.AreaReactantFacing*(r4-fP3) +
			metalK*g.AreaPlatePairFluid*(rP2+rP4-2*fP3)
		e.qPlate[ReactantPlate4].Elements[n] = hR4*g.AreaReactantWall*(r4-rP4) +
			hU5*g.AreaUtilityFacing*(u5-rP4) +
			metalK*(g.AreaPlatePairFluid*(fP3-rP4)+g.AreaPlatePairUtility*(uP5-rP4))
		e.qPlate[UtilityPlate5].Elements[n] = hU5*g.AreaUtilityWall*(u5-uP5) +
			hU1*g.AreaUtilityFacing*(u1-uP5) +
			metalK*g.AreaPlatePairUtility*(rP4+uP1-2*uP5)
	}
}

// Pressure returns a copy of the stored pressure field for the pass.
func (e *Exchanger) Pressure(p Pass) (*sparse.DenseArray, error) {
	if !p.valid() {
		return nil, fmt.Errorf("pche: pass %d: %w", int(p), ErrInvalidSelector)
	}
	return e.pressure[p].Copy(), nil
}

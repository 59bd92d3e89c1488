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

import "math"

// reynoldsSwitch is the hard laminar/turbulent threshold. Flow with
// Re ≤ reynoldsSwitch uses the developing-laminar correlations and flow
// above it the turbulent ones; transitional flow is not modeled.
const reynoldsSwitch = 2300.

// correlationFloor guards the correlation domain: Reynolds number, entry
// lengths, and Prandtl number at or below zero are clamped to this value
// so that a degenerate cell cannot produce NaN or ±Inf.
const correlationFloor = 1e-12

// correlationSet evaluates friction factors and Nusselt numbers for
// developing laminar flow in a semicircular duct (Muzychka and Yovanovich
// entry-region model) and for fully developed turbulent flow (logarithmic
// Darcy friction fit and the Gnielinski correlation).
type correlationSet struct {
	// Muzychka-Yovanovich constants: uniform wall temperature, local
	// values, with the blending exponent midpoint.
	c1, c2, c3, c4, gamma float64

	aspect float64 // duct aspect ratio

	// fdLaminar is the fully developed laminar f·Re asymptote for the
	// duct aspect ratio, fixed at construction.
	fdLaminar float64
}

func newCorrelationSet(aspect float64) *correlationSet {
	return &correlationSet{
		c1:     3.24,
		c2:     1,
		c3:     0.409,
		c4:     1,
		gamma:  -0.1,
		aspect: aspect,
		fdLaminar: 12 / (math.Sqrt(aspect) * (1 + aspect) *
			(1 - 192*aspect*math.Pow(math.Pi, -5)*math.Tanh(math.Pi/(2*aspect)))),
	}
}

// eval returns the Fanning friction factor and Nusselt number for one cell
// given its Reynolds and Prandtl numbers and the dimensionless hydrodynamic
// (L+) and thermal (z*) entry lengths. Exactly one correlation family is
// evaluated per cell, selected at the Reynolds threshold, so an
// out-of-domain branch can never contaminate the result.
func (c *correlationSet) eval(re, pr, lplus, zstar float64) (f, nu float64) {
	re = math.Max(re, correlationFloor)
	pr = math.Max(pr, correlationFloor)
	lplus = math.Max(lplus, correlationFloor)
	zstar = math.Max(zstar, correlationFloor)

	if re <= reynoldsSwitch {
		entry := 3.44 / math.Sqrt(lplus)
		f = math.Sqrt(entry*entry+c.fdLaminar*c.fdLaminar) / re

		m := 2.27 + 1.65*math.Cbrt(pr)
		fPr := 0.564 / math.Pow(1+math.Pow(1.664*math.Pow(pr, 1.0/6.0), 4.5), 2.0/9.0)
		entryTerm := math.Pow(c.c4*fPr/math.Sqrt(zstar), m)
		devTerm := math.Pow(
			math.Pow(c.c2*c.c3*math.Cbrt(f*re/zstar), 5)+
				math.Pow(c.c1*(f*re/(8*math.Sqrt(math.Pi)*math.Pow(c.aspect, c.gamma))), 5),
			m/5)
		nu = math.Pow(entryTerm+devTerm, 1/m)
		return f, nu
	}

	f = math.Pow(0.79*math.Log(re)-1.64, -2) / 4
	nu = (f / 2) * (re - 1000) * pr /
		(1 + 12.7*math.Sqrt(f/2)*(math.Pow(pr, 2.0/3.0)-1))
	return f, nu
}

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
	"math"
	"testing"
)

func TestCorrelationRegimeSwitch(t *testing.T) {
	c := newCorrelationSet(0.5)
	const pr, lplus, zstar = 0.7, 0.05, 0.05

	fLam, nuLam := c.eval(2300, pr, lplus, zstar)
	fTurb, nuTurb := c.eval(2301, pr, lplus, zstar)

	// Re = 2300 must take the laminar branch and Re = 2301 the turbulent
	// one, producing a visible jump across the threshold.
	if fLam == fTurb {
		t.Error("friction factor identical across the regime threshold")
	}
	if nuLam == nuTurb {
		t.Error("Nusselt number identical across the regime threshold")
	}
	for _, v := range []float64{fLam, nuLam, fTurb, nuTurb} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("correlation output %g not positive and finite", v)
		}
	}
}

func TestCorrelationLaminarLimits(t *testing.T) {
	c := newCorrelationSet(0.5)

	// Deep in the developed region the friction factor approaches the
	// fully developed asymptote f·Re = fdLaminar.
	f, _ := c.eval(1000, 0.7, 1e6, 1e6)
	if got := f * 1000; math.Abs(got-c.fdLaminar)/c.fdLaminar > 0.01 {
		t.Errorf("developed f·Re = %g, want ≈%g", got, c.fdLaminar)
	}

	// Near the entrance the friction factor and Nusselt number both
	// exceed their developed values.
	fEntry, nuEntry := c.eval(1000, 0.7, 1e-4, 1e-4)
	_, nuDev := c.eval(1000, 0.7, 1e6, 1e6)
	if fEntry <= f {
		t.Errorf("entry friction factor %g not above developed value %g", fEntry, f)
	}
	if nuEntry <= nuDev {
		t.Errorf("entry Nusselt number %g not above developed value %g", nuEntry, nuDev)
	}
}

func TestCorrelationTurbulent(t *testing.T) {
	c := newCorrelationSet(0.5)

	// Gnielinski at Re = 1e4, Pr = 0.7: Nu ≈ 31 with the Darcy friction
	// fit, here expressed as a Fanning factor.
	f, nu := c.eval(1e4, 0.7, 0.05, 0.05)
	if fD := 4 * f; math.Abs(fD-0.0316)/0.0316 > 0.05 {
		t.Errorf("Darcy friction factor at Re=1e4 = %g, want ≈0.0316", fD)
	}
	if nu < 25 || nu > 40 {
		t.Errorf("Nusselt number at Re=1e4, Pr=0.7 = %g, want 25–40", nu)
	}

	// Turbulent heat transfer strengthens with Reynolds number.
	_, nu2 := c.eval(5e4, 0.7, 0.05, 0.05)
	if nu2 <= nu {
		t.Errorf("Nusselt number fell with Reynolds number: %g at 1e4, %g at 5e4", nu, nu2)
	}
}

func TestCorrelationDegenerateInputs(t *testing.T) {
	c := newCorrelationSet(0.5)
	cases := [][4]float64{
		{0, 0.7, 0.05, 0.05},
		{-10, 0.7, 0.05, 0.05},
		{1000, 0, 0.05, 0.05},
		{1000, 0.7, 0, 0.05},
		{1000, 0.7, 0.05, 0},
		{0, 0, 0, 0},
	}
	for _, in := range cases {
		f, nu := c.eval(in[0], in[1], in[2], in[3])
		if math.IsNaN(f) || math.IsInf(f, 0) || math.IsNaN(nu) || math.IsInf(nu, 0) {
			t.Errorf("eval(%v) = %g, %g; want finite", in, f, nu)
		}
	}
}

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

	"github.com/ctessum/sparse"
)

const (
	// gasConstant is the ideal gas constant [J/(mol K)].
	gasConstant = 8.3144626
	// boltzmann is the Boltzmann constant [J/K].
	boltzmann = 1.38064852e-23
)

// fluidProps holds the per-cell mixture state of one fluid pass, all
// recomputed together from the local temperatures and pressures.
type fluidProps struct {
	mu  *sparse.DenseArray // dynamic viscosity [Pa s]
	k   *sparse.DenseArray // thermal conductivity [W/(m K)]
	rho *sparse.DenseArray // density [kg/m³]
	cp  *sparse.DenseArray // specific heat capacity [J/(kg K)]
}

// omega22 is the collision integral for viscosity as a function of the
// reduced temperature T* (Neufeld fit).
func omega22(tstar float64) float64 {
	return 1.16145/math.Pow(tstar, 0.14874) +
		0.52487/math.Exp(0.77320*tstar) +
		2.16178/math.Exp(2.43787*tstar)
}

// omega11 is the collision integral for diffusion as a function of the
// reduced temperature T*.
func omega11(tstar float64) float64 {
	return 1.06036/math.Pow(tstar, 0.15610) +
		0.19300/math.Exp(0.47635*tstar) +
		1.03587/math.Exp(1.52996*tstar) +
		1.76474/math.Exp(3.89411*tstar)
}

// parker is the Parker rotational relaxation temperature function F(T)
// for a species with the given Lennard-Jones well depth.
func parker(epsOverKappa, T float64) float64 {
	r := epsOverKappa / T
	return 1 + math.Pow(math.Pi, 1.5)/2*math.Sqrt(r) +
		(math.Pi*math.Pi/4+2)*r +
		math.Pow(math.Pi, 1.5)*math.Pow(r, 1.5)
}

// waterViscosityCF is an empirical cubic-in-temperature correction factor
// applied to the kinetic-theory viscosity of water vapor.
func waterViscosityCF(T float64) float64 {
	return -7.19443e-12*T*T*T + 1.27546e-8*T*T + 8.69573e-5*T + 0.768920462
}

// evalProperties computes per-cell mixture viscosity and thermal
// conductivity from kinetic theory, along with ideal-gas density and the
// polynomial heat capacity, for one fluid pass.
//
// Pure-species viscosities come from Chapman-Enskog theory with the
// Neufeld collision integral; species conductivities from the
// Warnatz/Eucken partition into translational, rotational, and vibrational
// contributions weighted by the Parker rotational relaxation ratio at the
// local temperature versus 298 K. The mixture viscosity uses Wilke's rule,
// which is O(n²) in the species count and intended for small species sets.
//
// The mixture conductivity is a 50/50 blend of the mole-weighted linear
// sum and the harmonic sum. This rule is unvalidated against data and is
// kept as the reference implementation has it.
func evalProperties(m *mixture, T, P *sparse.DenseArray, cpCoeff [5]*sparse.DenseArray) fluidProps {
	props := fluidProps{
		mu:  sparse.ZerosDense(T.Shape...),
		k:   sparse.ZerosDense(T.Shape...),
		rho: sparse.ZerosDense(T.Shape...),
		cp:  sparse.ZerosDense(T.Shape...),
	}

	ns := len(m.recs)
	muS := make([]float64, ns) // per-species viscosity at the current cell
	kS := make([]float64, ns)  // per-species conductivity at the current cell

	for n, temp := range T.Elements {
		press := P.Elements[n]

		// Mixture density from the ideal-gas law and the polynomial
		// heat capacity, converted from molar cp/R to J/(kg K).
		props.rho.Elements[n] = press * m.mw / gasConstant / temp / 1000
		cpr := cpCoeff[0].Elements[n] + cpCoeff[1].Elements[n]*temp +
			cpCoeff[2].Elements[n]*temp*temp +
			cpCoeff[3].Elements[n]*temp*temp*temp +
			cpCoeff[4].Elements[n]*temp*temp*temp*temp
		props.cp.Elements[n] = cpr * gasConstant / m.mw * 1000

		for i, rec := range m.recs {
			tstar := temp / rec.EpsOverKappa
			mu := 2.6693e-5 * math.Sqrt(rec.MW*temp) /
				(rec.Sigma * rec.Sigma * omega22(tstar)) * 98.0665 / 1000
			if rec.Name == "H2O" {
				mu *= waterViscosityCF(temp)
			}
			muS[i] = mu

			rPrime := gasConstant / rec.MW * 1000
			cpi := rec.cpPoly(temp) * rPrime
			cvi := cpi - rPrime

			zt := rec.RotRelax * parker(rec.EpsOverKappa, 298) /
				parker(rec.EpsOverKappa, temp)

			// Species density and self-diffusion coefficient. The
			// 1e32 scaling reproduces the reference tabulated data.
			rhoI := press * rec.MW / gasConstant / temp / 1000
			dkk := 3.0 / 16.0 *
				math.Sqrt(2*math.Pi*boltzmann*boltzmann*boltzmann*temp*temp*temp/rec.MW*1000) /
				(press * math.Pi * rec.Sigma * rec.Sigma * omega11(tstar)) * 1e32
			rhoDOverMu := rhoI * dkk / mu

			cviTrans := 1.5 * rPrime
			var cviRotDOF, cviVib float64
			switch rec.Shape {
			case ShapeLinear:
				cviRotDOF = 1
				cviVib = cvi - 2.5*rPrime
			case ShapeNonlinear:
				cviRotDOF = 1.5
				cviVib = cvi - 3*rPrime
			}

			a := 2.5 - rhoDOverMu
			b := zt + 2/math.Pi*(5.0/3.0*cviRotDOF+rhoDOverMu)
			cviRot := cviRotDOF * rPrime

			fTrans := 2.5 * (1 - 2/math.Pi*cviRot/cviTrans*a/b)
			fRot := rhoDOverMu * (1 + 2/math.Pi*a/b)
			fVib := rhoDOverMu

			kS[i] = mu * (fTrans*cviTrans + fRot*cviRot + fVib*cviVib)
		}

		// Wilke's rule for viscosity and the blended conductivity rule.
		var muMix, kMix, kHarm float64
		for i := range m.recs {
			var denom float64
			for j := range m.recs {
				denom += m.moleFrac[j] * wilkePhi(muS[i], muS[j], m.recs[i].MW, m.recs[j].MW)
			}
			muMix += m.moleFrac[i] * muS[i] / denom
			kMix += 0.5 * m.moleFrac[i] * kS[i]
			kHarm += m.moleFrac[i] / kS[i]
		}
		kMix += 0.5 / kHarm

		props.mu.Elements[n] = muMix
		props.k.Elements[n] = kMix
	}
	return props
}

// wilkePhi is the pairwise interaction function in Wilke's mixing rule.
func wilkePhi(muI, muJ, mwI, mwJ float64) float64 {
	t := 1 + math.Sqrt(muI/muJ*math.Sqrt(mwJ/mwI))
	return t * t / (math.Sqrt(8) * math.Sqrt(1+mwI/mwJ))
}

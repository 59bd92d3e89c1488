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
	"math"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/floats"
)

// ErrIntegrationFailure indicates that the integrator could not advance
// the solution: the derivative vector contained NaN or ±Inf, or the error
// control drove the step size below the minimum.
var ErrIntegrationFailure = errors.New("integration failure")

// RHS is the time-derivative function integrated by the Solver.
type RHS func(t float64, y []float64) ([]float64, error)

// Solver integrates an ODE system with an embedded Cash-Karp Runge-Kutta
// 4(5) pair and error-controlled step size, and drives an exchanger to
// steady state in bursts, advancing the pressure fields between bursts.
type Solver struct {
	// RHS is the derivative function. NewSolver sets it to the
	// exchanger's Derivatives method.
	RHS RHS

	// Exchanger, when non-nil, has its pressure fields updated between
	// integration bursts.
	Exchanger *Exchanger

	RelTol float64 // relative local error tolerance
	AbsTol float64 // absolute local error tolerance [K]

	InitialStep float64 // [s]
	MinStep     float64 // [s]; going below this is a failure
	MaxStep     float64 // [s]

	Bursts    int     // number of integration bursts
	BurstTime float64 // integration horizon per burst [s]

	// ConvergenceTol stops the burst loop early once the largest
	// temperature derivative magnitude falls below it [K/s].
	ConvergenceTol float64

	// OnBurst, if set, is called after each burst with the burst index
	// and the residual derivative norm.
	OnBurst func(burst int, residual float64)

	// EvalTime accumulates wall-clock statistics for RHS evaluations and
	// StepSizes for accepted step sizes.
	EvalTime  stats.Stats
	StepSizes stats.Stats
	Evals     int
}

// NewSolver returns a Solver for the exchanger with the reference
// operating settings: ten bursts of 10 000 s.
func NewSolver(e *Exchanger) *Solver {
	return &Solver{
		RHS:            e.Derivatives,
		Exchanger:      e,
		RelTol:         1e-6,
		AbsTol:         1e-6,
		InitialStep:    1e-6,
		MinStep:        1e-14,
		MaxStep:        100,
		Bursts:         10,
		BurstTime:      10000,
		ConvergenceTol: 1e-8,
	}
}

// Cash-Karp tableau.
var (
	ckA = [6][5]float64{
		{},
		{1. / 5},
		{3. / 40, 9. / 40},
		{3. / 10, -9. / 10, 6. / 5},
		{-11. / 54, 5. / 2, -70. / 27, 35. / 27},
		{1631. / 55296, 175. / 512, 575. / 13824, 44275. / 110592, 253. / 4096},
	}
	ckC  = [6]float64{0, 1. / 5, 3. / 10, 3. / 5, 1, 7. / 8}
	ckB5 = [6]float64{37. / 378, 0, 250. / 621, 125. / 594, 0, 512. / 1771}
	ckB4 = [6]float64{2825. / 27648, 0, 18575. / 48384, 13525. / 55296, 277. / 14336, 1. / 4}
)

// eval calls the derivative function, timing it and rejecting non-finite
// output.
func (s *Solver) eval(t float64, y []float64) ([]float64, error) {
	start := time.Now()
	d, err := s.RHS(t, y)
	s.EvalTime.Update(time.Since(start).Seconds())
	s.Evals++
	if err != nil {
		return nil, err
	}
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pche: non-finite derivative at component %d: %w",
				i, ErrIntegrationFailure)
		}
	}
	return d, nil
}

// Integrate advances y from t0 to t1 and returns the final state.
func (s *Solver) Integrate(y []float64, t0, t1 float64) ([]float64, error) {
	y = append([]float64(nil), y...)
	t := t0
	h := s.InitialStep
	k := make([][]float64, 6)
	stage := make([]float64, len(y))

	for t < t1 {
		if h > t1-t {
			h = t1 - t
		}
		var err error
		for i := 0; i < 6; i++ {
			copy(stage, y)
			for j := 0; j < i; j++ {
				floats.AddScaled(stage, h*ckA[i][j], k[j])
			}
			if k[i], err = s.eval(t+ckC[i]*h, stage); err != nil {
				return nil, err
			}
		}

		// Fifth-order solution and embedded error estimate.
		y5 := append([]float64(nil), y...)
		errNorm := 0.
		for n := range y {
			var d5, d4 float64
			for i := 0; i < 6; i++ {
				d5 += ckB5[i] * k[i][n]
				d4 += ckB4[i] * k[i][n]
			}
			y5[n] += h * d5
			scale := s.AbsTol + s.RelTol*math.Max(math.Abs(y[n]), math.Abs(y5[n]))
			errNorm = math.Max(errNorm, math.Abs(h*(d5-d4))/scale)
		}

		if errNorm <= 1 {
			t += h
			y = y5
			s.StepSizes.Update(h)
			h *= math.Min(5, math.Max(0.2, 0.9*math.Pow(errNorm+1e-300, -0.2)))
		} else {
			h *= math.Max(0.2, 0.9*math.Pow(errNorm, -0.25))
		}
		if h > s.MaxStep {
			h = s.MaxStep
		}
		if h < s.MinStep {
			return nil, fmt.Errorf("pche: step size %g below minimum at t=%g: %w",
				h, t, ErrIntegrationFailure)
		}
	}
	return y, nil
}

// SteadyState runs the burst loop from the given initial state: each burst
// integrates over BurstTime and then advances the exchanger pressure
// fields, stopping early once the residual derivative norm falls below
// ConvergenceTol.
func (s *Solver) SteadyState(y []float64) ([]float64, error) {
	var err error
	for burst := 0; burst < s.Bursts; burst++ {
		if y, err = s.Integrate(y, 0, s.BurstTime); err != nil {
			return nil, err
		}
		if s.Exchanger != nil {
			if err = s.Exchanger.UpdatePressures(); err != nil {
				return nil, err
			}
		}
		d, err := s.eval(0, y)
		if err != nil {
			return nil, err
		}
		residual := floats.Norm(d, math.Inf(1))
		if s.OnBurst != nil {
			s.OnBurst(burst, residual)
		}
		if residual < s.ConvergenceTol {
			break
		}
	}
	return y, nil
}

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
	"math"
	"testing"
)

// decaySolver builds a Solver around y' = -y with no exchanger attached.
func decaySolver() *Solver {
	return &Solver{
		RHS: func(t float64, y []float64) ([]float64, error) {
			d := make([]float64, len(y))
			for i, v := range y {
				d[i] = -v
			}
			return d, nil
		},
		RelTol:      1e-8,
		AbsTol:      1e-10,
		InitialStep: 1e-3,
		MinStep:     1e-14,
		MaxStep:     1,
	}
}

func TestIntegrateExponentialDecay(t *testing.T) {
	s := decaySolver()
	y, err := s.Integrate([]float64{1, 2}, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, y0 := range []float64{1, 2} {
		want := y0 * math.Exp(-1)
		if math.Abs(y[i]-want) > 1e-6 {
			t.Errorf("component %d = %v, want %v", i, y[i], want)
		}
	}
	if s.Evals == 0 || s.EvalTime.Count() != s.Evals {
		t.Errorf("eval statistics inconsistent: %d evals, %d timed",
			s.Evals, s.EvalTime.Count())
	}
	if s.StepSizes.Count() == 0 {
		t.Error("no accepted steps recorded")
	}
}

func TestIntegrateDoesNotMutateInput(t *testing.T) {
	s := decaySolver()
	y0 := []float64{1}
	if _, err := s.Integrate(y0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if y0[0] != 1 {
		t.Errorf("input state mutated to %v", y0[0])
	}
}

func TestIntegrateNonFiniteDerivative(t *testing.T) {
	s := decaySolver()
	s.RHS = func(t float64, y []float64) ([]float64, error) {
		return []float64{math.NaN()}, nil
	}
	if _, err := s.Integrate([]float64{1}, 0, 1); !errors.Is(err, ErrIntegrationFailure) {
		t.Errorf("got %v, want ErrIntegrationFailure", err)
	}
}

func TestIntegratePropagatesRHSError(t *testing.T) {
	s := decaySolver()
	boom := errors.New("boom")
	s.RHS = func(t float64, y []float64) ([]float64, error) { return nil, boom }
	if _, err := s.Integrate([]float64{1}, 0, 1); !errors.Is(err, boom) {
		t.Errorf("got %v, want the RHS error", err)
	}
}

func TestSteadyStateConvergence(t *testing.T) {
	// y' = -(y - 5): every component settles to 5 and the burst loop must
	// stop early on the convergence criterion.
	s := decaySolver()
	s.RHS = func(t float64, y []float64) ([]float64, error) {
		d := make([]float64, len(y))
		for i, v := range y {
			d[i] = -(v - 5)
		}
		return d, nil
	}
	s.Bursts = 50
	s.BurstTime = 10
	s.ConvergenceTol = 1e-6

	var bursts int
	s.OnBurst = func(burst int, residual float64) { bursts = burst + 1 }

	y, err := s.SteadyState([]float64{0, 10})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if math.Abs(v-5) > 1e-5 {
			t.Errorf("component %d = %v, want 5", i, v)
		}
	}
	if bursts == 0 || bursts == 50 {
		t.Errorf("burst loop ran %d bursts, want early convergence", bursts)
	}
}

func TestNewSolverDefaults(t *testing.T) {
	e := testExchanger(t)
	s := NewSolver(e)
	if s.Exchanger != e || s.RHS == nil {
		t.Error("solver not bound to the exchanger")
	}
	if s.Bursts != 10 || s.BurstTime != 10000 {
		t.Errorf("default burst schedule = %d×%g s, want 10×10000 s",
			s.Bursts, s.BurstTime)
	}
}

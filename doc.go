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

// Package pche implements a reduced-order thermal-hydraulic model of a
// five-plate crossflow printed-circuit heat exchanger. Three gas streams
// (reactant, fuel, and a utility stream used twice) exchange heat through
// five interleaved solid plates discretized on a shared two-dimensional
// grid. The model computes kinetic-theory mixture transport properties,
// empirical friction-factor and Nusselt-number correlations with a
// laminar/turbulent switch, upwind advection, finite-difference plate
// conduction, and a coupled ten-field energy balance, and exposes the
// result as the right-hand side of a system of ordinary differential
// equations that an integrator marches to steady state.
package pche

// Version gives the model version number.
const Version = "1.0.0"

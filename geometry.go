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

// Solid (plate) material properties, a high-temperature alloy.
const (
	metalRho = 8000. // [kg/m³]
	metalCp  = 500.  // [J/(kg K)]
	metalK   = 50.   // [W/(m K)]
)

// Geometry describes the channel and plate dimensions of the exchanger and
// the quantities derived from them. Channels are semicircular; the fuel
// plate geometry is identical to the reactant plate geometry, and the
// spacing between utility channels is identical to the spacing between
// reactant channels. All derived values are computed once by NewGeometry
// and are invariant thereafter.
type Geometry struct {
	ReactantDiam   float64 // reactant channel diameter [m]
	UtilityDiam    float64 // utility channel diameter [m]
	Rows           int     // number of reactant channels
	Cols           int     // number of utility channels
	WallThickness  float64 // wall thickness between channels [m]
	PlateThickness float64 // plate thickness [m]

	// AspectRatio of the semicircular channels (height over width).
	AspectRatio float64

	// Cross-sectional areas [m²] and hydraulic diameters [m].
	ReactantCS, UtilityCS, FuelCS float64
	ReactantDh, UtilityDh, FuelDh float64

	// Cell pitches: Dx along the utility flow direction, Dy across the
	// plate stack, Dz along the reactant flow direction [m].
	Dx, Dy, Dz float64

	// Unit-cell volumes [m³].
	ReactantVcell, UtilityVcell, FuelVcell                float64
	ReactantPlateVcell, UtilityPlateVcell, FuelPlateVcell float64

	// Contact areas between adjacent entities in one unit cell [m²].
	AreaUtilityFacing    float64 // utility fluid to the plate across the channel
	AreaPlatePairUtility float64 // plate-to-plate contact beside a utility channel
	AreaUtilityWall      float64 // utility fluid to its own plate wall
	AreaReactantFacing   float64 // reactant/fuel fluid to the plate across the channel
	AreaPlatePairFluid   float64 // plate-to-plate contact beside a reactant/fuel channel
	AreaReactantWall     float64 // reactant/fuel fluid to its own plate wall

	// Intraplate conduction areas normal to the x and z directions [m²].
	AreaReactantPlateX, AreaReactantPlateZ float64
	AreaUtilityPlateX, AreaUtilityPlateZ   float64
	AreaFuelPlateX, AreaFuelPlateZ         float64
}

// NewGeometry derives all cross-sections, pitches, volumes, and contact
// areas from the channel and plate dimensions. The caller must supply
// positive dimensions and channel counts of at least two in each direction.
func NewGeometry(reactantDiam, utilityDiam float64, rows, cols int, wall, plate float64) *Geometry {
	g := &Geometry{
		ReactantDiam:   reactantDiam,
		UtilityDiam:    utilityDiam,
		Rows:           rows,
		Cols:           cols,
		WallThickness:  wall,
		PlateThickness: plate,
		AspectRatio:    0.5,
	}

	g.ReactantCS = math.Pi * reactantDiam * reactantDiam / 8
	g.UtilityCS = math.Pi * utilityDiam * utilityDiam / 8
	g.ReactantDh = math.Pi * reactantDiam / (2 + math.Pi)
	g.UtilityDh = math.Pi * utilityDiam / (2 + math.Pi)
	g.FuelCS = g.ReactantCS
	g.FuelDh = g.ReactantDh

	g.Dx = utilityDiam + wall
	g.Dy = plate
	g.Dz = reactantDiam + wall

	g.ReactantVcell = g.ReactantCS * g.Dx
	g.UtilityVcell = g.UtilityCS * g.Dz
	g.ReactantPlateVcell = g.Dx*g.Dy*g.Dz - g.ReactantVcell
	g.UtilityPlateVcell = g.Dx*g.Dy*g.Dz - g.UtilityVcell
	g.FuelVcell = g.ReactantVcell
	g.FuelPlateVcell = g.ReactantPlateVcell

	g.AreaUtilityFacing = utilityDiam * g.Dz
	g.AreaPlatePairUtility = g.Dx*g.Dz - g.AreaUtilityFacing
	g.AreaUtilityWall = math.Pi * utilityDiam / 2 * g.Dz
	g.AreaReactantFacing = reactantDiam * g.Dx
	g.AreaPlatePairFluid = g.Dx*g.Dz - g.AreaReactantFacing
	g.AreaReactantWall = math.Pi * reactantDiam / 2 * g.Dx

	g.AreaReactantPlateX = g.Dy*g.Dz - g.ReactantCS
	g.AreaReactantPlateZ = g.Dx * g.Dy
	g.AreaUtilityPlateX = g.Dy * g.Dz
	g.AreaUtilityPlateZ = g.Dx*g.Dy - g.UtilityCS
	g.AreaFuelPlateX = g.AreaReactantPlateX
	g.AreaFuelPlateZ = g.AreaReactantPlateZ

	return g
}

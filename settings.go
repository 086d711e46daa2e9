/*
Copyright © 2026 the divgrid authors.
This file is part of divgrid.

divgrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

divgrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with divgrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package divgrid

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"

	"github.com/fusionmodel/divgrid/geometry"
)

// Settings is the user-facing configuration, decoded from TOML.
type Settings struct {
	Grid         GridSettings             `toml:"grid_settings"`
	TargetPlates map[string]PlateSettings `toml:"target_plates"`
	Limiter      LimiterSettings          `toml:"limiter"`
}

// GridSettings locates the equilibrium features and carries the psi
// levels bounding each region. Psi values are normalized: 0 at the
// magnetic axis, 1 on the primary separatrix.
type GridSettings struct {
	NumXpt int `toml:"num_xpt"`

	PsiCore    float64 `toml:"psi_core"`
	PsiMaxWest float64 `toml:"psi_1"`
	PsiMaxEast float64 `toml:"psi_2"`
	PsiPF1     float64 `toml:"psi_pf_1"`
	PsiPF2     float64 `toml:"psi_pf_2"`

	RMagx float64 `toml:"rmagx"`
	ZMagx float64 `toml:"zmagx"`
	RXpt  float64 `toml:"rxpt"`
	ZXpt  float64 `toml:"zxpt"`
	RXpt2 float64 `toml:"rxpt2"`
	ZXpt2 float64 `toml:"zxpt2"`

	PatchGeneration PatchGeneration `toml:"patch_generation"`
	GridGeneration  GridGeneration  `toml:"grid_generation"`
}

// PatchGeneration tunes topology construction: the axis shift and tilts
// defining the midplane reference lines, the X-point seed offset, and
// whether strike points land on target plates or on a closed limiter.
type PatchGeneration struct {
	RMagxShift     float64 `toml:"rmagx_shift"`
	ZMagxShift     float64 `toml:"zmagx_shift"`
	MagxTilt1      float64 `toml:"magx_tilt_1"`
	MagxTilt2      float64 `toml:"magx_tilt_2"`
	XptSeedEps     float64 `toml:"xpt_seed_eps"`
	StrikePointLoc string  `toml:"strike_pt_loc"`
}

// GridGeneration carries the cell counts. Global defaults apply
// wherever a regional count is left zero; regional counts are paired by
// the physics: the scrape-off layer and core must agree poloidally, and
// the private-flux region must match the core radially. Counts apply
// per region class only; per-plate poloidal overrides are deliberately
// not supported.
type GridGeneration struct {
	NpDefault int `toml:"np_default"`
	NrDefault int `toml:"nr_default"`

	NpCore int `toml:"np_core"`
	NpSOL  int `toml:"np_sol"`
	NpPF   int `toml:"np_pf"`
	NrCore int `toml:"nr_core"`
	NrSOL  int `toml:"nr_sol"`
	NrPF   int `toml:"nr_pf"`

	GuardCellEps float64 `toml:"guard_cell_eps"`
}

// PlateSettings declares one target plate as an inline polyline of
// (R, Z) pairs, optionally shifted vertically.
type PlateSettings struct {
	Points [][]float64 `toml:"points"`
	ZShift float64     `toml:"zshift"`
}

// Line converts the plate declaration to a geometry line.
func (p PlateSettings) Line() (geometry.Line, error) {
	if len(p.Points) < 2 {
		return geometry.Line{}, fmt.Errorf("divgrid: a plate needs at least 2 points, have %d", len(p.Points))
	}
	pts := make([]geom.Point, len(p.Points))
	for i, rz := range p.Points {
		if len(rz) != 2 {
			return geometry.Line{}, fmt.Errorf("divgrid: plate point %d has %d coordinates, want 2", i, len(rz))
		}
		pts[i] = geom.Point{X: rz[0], Y: rz[1] + p.ZShift}
	}
	return geometry.Line{P: pts}, nil
}

// LimiterSettings declares a closed limiter contour used in place of
// individual target plates when strike_pt_loc is "limiter".
type LimiterSettings struct {
	Points  [][]float64 `toml:"points"`
	RShift  float64     `toml:"rshift"`
	ZShift  float64     `toml:"zshift"`
	UseEfit bool        `toml:"use_efit_bounds"`
}

// Line converts the limiter declaration to a geometry line, applying
// both coordinate shifts.
func (l LimiterSettings) Line() (geometry.Line, error) {
	if len(l.Points) < 3 {
		return geometry.Line{}, fmt.Errorf("divgrid: a closed limiter needs at least 3 points, have %d", len(l.Points))
	}
	pts := make([]geom.Point, len(l.Points))
	for i, rz := range l.Points {
		if len(rz) != 2 {
			return geometry.Line{}, fmt.Errorf("divgrid: limiter point %d has %d coordinates, want 2", i, len(rz))
		}
		pts[i] = geom.Point{X: rz[0] + l.RShift, Y: rz[1] + l.ZShift}
	}
	return geometry.Line{P: pts}, nil
}

// LoadSettings reads and decodes a TOML settings file.
func LoadSettings(filename string) (*Settings, error) {
	s := new(Settings)
	if _, err := toml.DecodeFile(filename, s); err != nil {
		return nil, fmt.Errorf("divgrid: decoding settings file %s: %w", filename, err)
	}
	return s, nil
}

// CellCounts is the validated, fully-resolved set of cell counts the
// generator works from. Poloidal counts are per column class, radial
// counts per row.
type CellCounts struct {
	NpCore, NpSOL, NpPF int
	NrCore, NrSOL, NrPF int
	GuardCellEps        float64
}

const defaultGuardCellEps = 1e-3

// Resolve fills in defaulted counts and validates the pairing
// constraints. With lenient set, a violated pairing is clamped to the
// smaller of the two counts with a warning instead of failing.
func (g GridGeneration) Resolve(lenient bool) (CellCounts, error) {
	def := func(n, fallback int) int {
		if n == 0 {
			return fallback
		}
		return n
	}
	npDef := def(g.NpDefault, 2)
	nrDef := def(g.NrDefault, 2)
	c := CellCounts{
		NpCore:       def(g.NpCore, npDef),
		NpSOL:        def(g.NpSOL, npDef),
		NpPF:         def(g.NpPF, npDef),
		NrCore:       def(g.NrCore, nrDef),
		NrSOL:        def(g.NrSOL, nrDef),
		NrPF:         def(g.NrPF, nrDef),
		GuardCellEps: g.GuardCellEps,
	}
	if c.GuardCellEps == 0 {
		c.GuardCellEps = defaultGuardCellEps
	}
	for _, n := range []int{c.NpCore, c.NpSOL, c.NpPF, c.NrCore, c.NrSOL, c.NrPF} {
		if n < 2 {
			return CellCounts{}, fmt.Errorf("divgrid: cell counts must be at least 2, have %d", n)
		}
	}
	if c.NpSOL != c.NpCore {
		if !lenient {
			return CellCounts{}, fmt.Errorf("divgrid: np_sol (%d) must equal np_core (%d)", c.NpSOL, c.NpCore)
		}
		n := c.NpSOL
		if c.NpCore < n {
			n = c.NpCore
		}
		logrus.WithFields(logrus.Fields{"np_sol": c.NpSOL, "np_core": c.NpCore, "using": n}).
			Warn("divgrid: np_sol and np_core differ; clamping both")
		c.NpSOL, c.NpCore = n, n
	}
	if c.NrPF != c.NrCore {
		if !lenient {
			return CellCounts{}, fmt.Errorf("divgrid: nr_pf (%d) must equal nr_core (%d)", c.NrPF, c.NrCore)
		}
		n := c.NrPF
		if c.NrCore < n {
			n = c.NrCore
		}
		logrus.WithFields(logrus.Fields{"nr_pf": c.NrPF, "nr_core": c.NrCore, "using": n}).
			Warn("divgrid: nr_pf and nr_core differ; clamping both")
		c.NrPF, c.NrCore = n, n
	}
	return c, nil
}

// Npol returns the poloidal cell count for a patch column. The leg and
// target columns use the private-flux count; the columns wrapping the
// core use the core count.
func (c CellCounts) Npol(column byte) int {
	switch column {
	case 'B', 'C', 'D', 'E':
		return c.NpCore
	default:
		return c.NpPF
	}
}

// Nrad returns the radial cell count for a patch row. Row 1 is the
// core and private-flux ring; rows 2 and 3 lie in the scrape-off
// layers.
func (c CellCounts) Nrad(row byte) int {
	if row == '1' {
		return c.NrCore
	}
	return c.NrSOL
}

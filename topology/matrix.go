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

package topology

import (
	"fmt"

	"github.com/fusionmodel/divgrid/geometry"
)

// PatchMatrix is a rectangular arrangement of filled patches, rows
// indexed radially inside-out and columns poloidally west to east. It
// is the unit the grid assembler consumes: within a column every patch
// shares one poloidal cell count, and within a row one radial count.
type PatchMatrix struct {
	rows [][]*geometry.Patch
}

// NewPatchMatrix validates shape and cell-count consistency. Every
// entry must be present and filled.
func NewPatchMatrix(rows [][]*geometry.Patch) (*PatchMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("topology: empty patch matrix")
	}
	nCols := len(rows[0])
	for i, row := range rows {
		if len(row) != nCols {
			return nil, fmt.Errorf("topology: ragged patch matrix: row %d has %d columns, want %d",
				i, len(row), nCols)
		}
		for j, p := range row {
			if p == nil {
				return nil, fmt.Errorf("topology: patch matrix entry (%d,%d) is missing", i, j)
			}
			if !p.Filled() {
				return nil, fmt.Errorf("topology: patch %s at (%d,%d) has no cells", p.Name, i, j)
			}
			if p.NumRad() != rows[i][0].NumRad() {
				return nil, fmt.Errorf("topology: patch %s has %d radial vertices, row %d has %d",
					p.Name, p.NumRad(), i, rows[i][0].NumRad())
			}
			if p.NumPol() != rows[0][j].NumPol() {
				return nil, fmt.Errorf("topology: patch %s has %d poloidal vertices, column %d has %d",
					p.Name, p.NumPol(), j, rows[0][j].NumPol())
			}
		}
	}
	return &PatchMatrix{rows: rows}, nil
}

// NumRows is the radial patch count.
func (m *PatchMatrix) NumRows() int { return len(m.rows) }

// NumCols is the poloidal patch count.
func (m *PatchMatrix) NumCols() int { return len(m.rows[0]) }

// At returns the patch at radial row i (inside-out) and poloidal
// column j (west to east).
func (m *PatchMatrix) At(i, j int) *geometry.Patch { return m.rows[i][j] }

// TotalPol is the poloidal extent of the assembled global arrays,
// including the two guard columns.
func (m *PatchMatrix) TotalPol() int {
	n := 2
	for j := 0; j < m.NumCols(); j++ {
		n += m.rows[0][j].NumPol() - 1
	}
	return n
}

// TotalRad is the radial extent of the assembled global arrays,
// including the two guard rows.
func (m *PatchMatrix) TotalRad() int {
	n := 2
	for i := 0; i < m.NumRows(); i++ {
		n += m.rows[i][0].NumRad() - 1
	}
	return n
}

// sf45Region1 and sf45Region2 are the poloidal column orders of the two
// disconnected regions of the topology. Region 1 runs from the west
// plate around the core to the east plate; region 2 is the secondary
// private-flux dome between the second west and east plates.
var (
	sf45Region1 = []string{"A", "B", "C", "D", "E", "F", "I"}
	sf45Region2 = []string{"H", "G"}
)

// Matrices arranges the resolved, filled patches into the two region
// matrices consumed by grid assembly. All patches of both regions must
// be resolved and filled.
func (r *Result) Matrices() (region1, region2 *PatchMatrix, err error) {
	build := func(cols []string) (*PatchMatrix, error) {
		rows := make([][]*geometry.Patch, 3)
		for i := range rows {
			rows[i] = make([]*geometry.Patch, len(cols))
			for j, col := range cols {
				name := fmt.Sprintf("%s%d", col, i+1)
				p, ok := r.Patches[name]
				if !ok {
					return nil, fmt.Errorf("topology: patch %s is unresolved", name)
				}
				rows[i][j] = p
			}
		}
		return NewPatchMatrix(rows)
	}
	region1, err = build(sf45Region1)
	if err != nil {
		return nil, nil, err
	}
	region2, err = build(sf45Region2)
	if err != nil {
		return nil, nil, err
	}
	return region1, region2, nil
}

// PatchAliases maps descriptive region names onto the short patch tags
// used throughout the builder. Row 1 is innermost.
var PatchAliases = map[string]string{
	"westLegPF":     "A1",
	"westLegSOL":    "A2",
	"westLegOuter":  "A3",
	"westCore":      "B1",
	"westSOL":       "B2",
	"westOuterSOL":  "B3",
	"topWestCore":   "C1",
	"topWestSOL":    "C2",
	"topWestOuter":  "C3",
	"topEastCore":   "D1",
	"topEastSOL":    "D2",
	"topEastOuter":  "D3",
	"eastCore":      "E1",
	"eastSOL":       "E2",
	"eastOuterSOL":  "E3",
	"eastLegPF":     "F1",
	"eastLegInter":  "F2",
	"eastLegOuter":  "F3",
	"domeEastFloor": "G1",
	"domeEastMid":   "G2",
	"domeEastOuter": "G3",
	"domeWestFloor": "H1",
	"domeWestMid":   "H2",
	"domeWestOuter": "H3",
	"eastTargetPF":  "I1",
	"eastTargetMid": "I2",
	"eastTargetSOL": "I3",
}

// PatchByAlias resolves a descriptive name to its patch.
func (r *Result) PatchByAlias(alias string) (*geometry.Patch, error) {
	tag, ok := PatchAliases[alias]
	if !ok {
		return nil, fmt.Errorf("topology: unknown patch alias %q", alias)
	}
	return r.Patch(tag)
}

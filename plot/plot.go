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

// Package plot converts mesh structures into plain coordinate records
// for plotting front ends. The core packages never depend on it.
package plot

import (
	"github.com/fusionmodel/divgrid/geometry"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// Line converts a traced line to plottable records.
func Line(l geometry.Line) XYs {
	out := make(XYs, l.Len())
	for i, p := range l.P {
		out[i] = XY{X: p.X, Y: p.Y}
	}
	return out
}

// PatchBorder returns the closed outline of a patch.
func PatchBorder(p *geometry.Patch) XYs {
	border := p.Border()
	out := make(XYs, len(border))
	for i, pt := range border {
		out[i] = XY{X: pt.X, Y: pt.Y}
	}
	return out
}

// CellBorders returns one closed outline per cell of a filled patch,
// rows radially inside-out.
func CellBorders(p *geometry.Patch) []XYs {
	var out []XYs
	for _, row := range p.Cells {
		for _, cell := range row {
			border := cell.Border()
			xys := make(XYs, len(border))
			for i, pt := range border {
				xys[i] = XY{X: pt.X, Y: pt.Y}
			}
			out = append(out, xys)
		}
	}
	return out
}

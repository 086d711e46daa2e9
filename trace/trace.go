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

/*Package trace defines the flux-tracer service interface used by the
topology assembler and subgrid generator. The tracer follows either a
flux surface or the flux gradient from a start point until a boundary
condition is met; the numerical field evaluation behind it is an
external collaborator.*/
package trace

import (
	"errors"
	"fmt"

	"github.com/ctessum/geom"

	"github.com/fusionmodel/divgrid/geometry"
)

// ErrNoConvergence is returned when a trace does not meet its boundary
// condition within the tracer's bounded iteration budget.
var ErrNoConvergence = errors.New("trace: no convergence within iteration budget")

// Mode selects what a trace follows.
type Mode int

const (
	// AlongSurface follows a surface of constant psi (a theta trace).
	AlongSurface Mode = iota
	// AcrossSurfaces follows the flux gradient (a rho trace).
	AcrossSurfaces
	// ConstantR moves along a vertical line of fixed R.
	ConstantR
	// ConstantZ moves along a horizontal line of fixed Z.
	ConstantZ
)

func (m Mode) String() string {
	switch m {
	case AlongSurface:
		return "theta"
	case AcrossSurfaces:
		return "rho"
	case ConstantR:
		return "r_const"
	case ConstantZ:
		return "z_const"
	}
	return "unknown"
}

// Direction is the rotational sense of a trace.
type Direction int

const (
	CW Direction = iota
	CCW
)

func (d Direction) String() string {
	if d == CW {
		return "cw"
	}
	return "ccw"
}

// Condition is the boundary condition terminating a trace. The concrete
// types below are the only implementations.
type Condition interface {
	fmt.Stringer
	condition()
}

// PsiTarget terminates a trace at a normalized-flux level.
type PsiTarget struct{ Psi float64 }

// LineTarget terminates a trace where it crosses the given line.
type LineTarget struct{ Line geometry.Line }

// PsiAtConstZ terminates a fixed-Z trace at a normalized-flux level.
type PsiAtConstZ struct{ Psi float64 }

// PsiAtConstR terminates a fixed-R trace at a normalized-flux level.
type PsiAtConstR struct{ Psi float64 }

func (PsiTarget) condition()   {}
func (LineTarget) condition()  {}
func (PsiAtConstZ) condition() {}
func (PsiAtConstR) condition() {}

func (c PsiTarget) String() string   { return fmt.Sprintf("psi=%g", c.Psi) }
func (c LineTarget) String() string  { return fmt.Sprintf("line(%d samples)", c.Line.Len()) }
func (c PsiAtConstZ) String() string { return fmt.Sprintf("psi_horizontal=%g", c.Psi) }
func (c PsiAtConstR) String() string { return fmt.Sprintf("psi_vertical=%g", c.Psi) }

// PsiEvaluator reports the normalized poloidal flux at a point.
type PsiEvaluator interface {
	Psi(r, z float64) float64
}

// Tracer produces a line following the field from start until cond is
// met. Tracing blocks until it converges or fails; a failure to meet
// the condition within the tracer's own iteration budget is reported as
// an error wrapping ErrNoConvergence.
type Tracer interface {
	TraceLine(start geom.Point, cond Condition, mode Mode, dir Direction) (geometry.Line, error)
}

// XPoint is a magnetic null with the eight cardinal and diagonal seed
// points around it from which traces depart. The seeds come from the
// external equilibrium analysis.
type XPoint struct {
	Center                     geom.Point
	N, S, E, W, NE, NW, SE, SW geom.Point
}

// NewXPoint returns an X-point with axis-aligned seed points offset by
// eps from the center. Callers with knowledge of the local field
// orientation should overwrite the seeds directly.
func NewXPoint(center geom.Point, eps float64) XPoint {
	return XPoint{
		Center: center,
		N:      geom.Point{X: center.X, Y: center.Y + eps},
		S:      geom.Point{X: center.X, Y: center.Y - eps},
		E:      geom.Point{X: center.X + eps, Y: center.Y},
		W:      geom.Point{X: center.X - eps, Y: center.Y},
		NE:     geom.Point{X: center.X + eps, Y: center.Y + eps},
		NW:     geom.Point{X: center.X - eps, Y: center.Y + eps},
		SE:     geom.Point{X: center.X + eps, Y: center.Y - eps},
		SW:     geom.Point{X: center.X - eps, Y: center.Y - eps},
	}
}

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
	"github.com/sirupsen/logrus"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/trace"
)

// cornerSnap names one patch corner that must land exactly on an
// X-point center.
type cornerSnap struct {
	patch  string
	corner geometry.Corner
}

// Traces depart from seed points offset from the null, so the corners
// of the eight patches meeting each X-point end up a seed-offset away
// from the center. These tables pull them back onto the null exactly.
var xpt1Snaps = []cornerSnap{
	{"A1", geometry.NE}, {"A2", geometry.SE},
	{"B1", geometry.NW}, {"B2", geometry.SW},
	{"E1", geometry.NE}, {"E2", geometry.SE},
	{"F1", geometry.NW}, {"F2", geometry.SW},
}

var xpt2Snaps = []cornerSnap{
	{"F2", geometry.NE}, {"F3", geometry.SE},
	{"G2", geometry.NW}, {"G3", geometry.SW},
	{"H2", geometry.NE}, {"H3", geometry.SE},
	{"I2", geometry.NW}, {"I3", geometry.SW},
}

// SnapCorners moves the X-point-adjacent corners of every resolved
// patch onto the corresponding null center. Unresolved patches are
// skipped with a warning; snapping the remaining patches keeps a
// partial build inspectable.
func SnapCorners(patches map[string]*geometry.Patch, xpt1, xpt2 trace.XPoint) {
	for _, s := range xpt1Snaps {
		snapOne(patches, s, xpt1)
	}
	for _, s := range xpt2Snaps {
		snapOne(patches, s, xpt2)
	}
}

func snapOne(patches map[string]*geometry.Patch, s cornerSnap, x trace.XPoint) {
	p, ok := patches[s.patch]
	if !ok {
		logrus.WithField("patch", s.patch).Debug("topology: skipping corner snap for unresolved patch")
		return
	}
	if err := p.AdjustCorner(x.Center, s.corner); err != nil {
		logrus.WithField("patch", s.patch).WithError(err).Warn("topology: corner snap failed")
	}
}

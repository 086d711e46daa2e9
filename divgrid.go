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

/*Package divgrid generates block-structured meshes over diverted
tokamak equilibria. A topology of patches is constructed by tracing
flux surfaces between the separatrices, plates, and reference lines of
the configuration; each patch is subdivided into cells; and the cells
are assembled into the global coordinate arrays consumed by edge
transport codes.*/
package divgrid

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"

	"github.com/fusionmodel/divgrid/geometry"
	"github.com/fusionmodel/divgrid/subgrid"
	"github.com/fusionmodel/divgrid/topology"
	"github.com/fusionmodel/divgrid/trace"
)

// Generator runs the whole pipeline: topology construction, patch
// subdivision, and global assembly. The tracer and psi evaluator come
// from the caller's equilibrium representation; plates may be supplied
// directly or through the settings.
type Generator struct {
	Settings *Settings
	Tracer   trace.Tracer
	Psi      trace.PsiEvaluator

	// Optional programmatic plate geometry, overriding any plates
	// declared in the settings. Keys are W1, W2, E1, E2.
	Plates map[string]geometry.Line

	// Lenient downgrades violated cell-count pairings to warnings.
	Lenient bool

	// Resolution is the boundary refinement passed to patch
	// subdivision; zero selects the subgrid default.
	Resolution int

	// PlateTolerance bounds how far a plate-adjacent boundary may
	// stray from its declared plate before a warning is logged; zero
	// selects 1e-3.
	PlateTolerance float64
}

// plate fetches a plate by key, preferring programmatic geometry.
func (g *Generator) plate(key string) (geometry.Line, error) {
	if l, ok := g.Plates[key]; ok {
		return l, nil
	}
	ps, ok := g.Settings.TargetPlates[key]
	if !ok {
		return geometry.Line{}, fmt.Errorf("divgrid: no geometry for plate %s", key)
	}
	l, err := ps.Line()
	if err != nil {
		return geometry.Line{}, fmt.Errorf("divgrid: plate %s: %w", key, err)
	}
	return l, nil
}

// assemblerParams resolves the settings into topology parameters.
func (g *Generator) assemblerParams() (topology.Params, error) {
	gs := g.Settings.Grid
	pg := gs.PatchGeneration

	eps := pg.XptSeedEps
	if eps == 0 {
		eps = 1e-4
	}
	p := topology.Params{
		MagAxis: geom.Point{
			X: gs.RMagx + pg.RMagxShift,
			Y: gs.ZMagx + pg.ZMagxShift,
		},
		InnerTilt:  math.Pi + pg.MagxTilt1,
		OuterTilt:  pg.MagxTilt2,
		PsiMaxWest: gs.PsiMaxWest,
		PsiMaxEast: gs.PsiMaxEast,
		PsiMinCore: gs.PsiCore,
		PsiMinPF:   gs.PsiPF1,
		PsiPF2:     gs.PsiPF2,
		Xpt1:       trace.NewXPoint(geom.Point{X: gs.RXpt, Y: gs.ZXpt}, eps),
		Xpt2:       trace.NewXPoint(geom.Point{X: gs.RXpt2, Y: gs.ZXpt2}, eps),

		LimiterClosed: pg.StrikePointLoc == "limiter",
	}
	for key, dst := range map[string]*geometry.Line{
		"W1": &p.WestPlate1, "W2": &p.WestPlate2,
		"E1": &p.EastPlate1, "E2": &p.EastPlate2,
	} {
		l, err := g.plate(key)
		if err != nil && p.LimiterClosed {
			// In limiter mode the closed contour stands in for any
			// plate without its own geometry.
			l, err = g.Settings.Limiter.Line()
		}
		if err != nil {
			return topology.Params{}, err
		}
		*dst = l
	}
	return p, nil
}

// Generate produces the global mesh. Topology failures are reported
// collectively so a configuration problem shows every patch it
// affects.
func (g *Generator) Generate() (*Grid, error) {
	counts, err := g.Settings.Grid.GridGeneration.Resolve(g.Lenient)
	if err != nil {
		return nil, err
	}
	params, err := g.assemblerParams()
	if err != nil {
		return nil, err
	}
	asm := &topology.Assembler{Tracer: g.Tracer, Psi: g.Psi, Params: params}
	result, err := asm.Build()
	if err != nil {
		return nil, err
	}
	if len(result.Unresolved) > 0 {
		return nil, unresolvedError(result.Unresolved)
	}

	// Plate violations are reported, never fatal.
	tol := g.PlateTolerance
	if tol == 0 {
		tol = 1e-3
	}
	for _, rep := range asm.CheckPatches(result, tol) {
		if !rep.OK {
			logrus.WithFields(logrus.Fields{
				"patch": rep.Patch, "side": rep.Side.String(), "distance": rep.MaxDistance,
			}).Warn("divgrid: plate-adjacent boundary strays from its plate")
		}
	}
	if err := checkAlignment(result, tol); err != nil {
		return nil, err
	}

	sg := &subgrid.Generator{Tracer: g.Tracer, Psi: g.Psi, Resolution: g.Resolution}
	for _, name := range result.Order {
		p := result.Patches[name]
		npol := counts.Npol(name[0])
		nrad := counts.Nrad(name[1])
		logrus.WithFields(logrus.Fields{
			"patch": name, "npol": npol, "nrad": nrad,
		}).Info("divgrid: subdividing patch")
		if err := sg.Fill(p, npol, nrad); err != nil {
			return nil, fmt.Errorf("divgrid: subdividing patch %s: %w", name, err)
		}
	}

	region1, region2, err := result.Matrices()
	if err != nil {
		return nil, err
	}
	return AssembleGrid([]*topology.PatchMatrix{region1, region2}, g.Psi, counts.GuardCellEps)
}

// checkAlignment surfaces post-snap disagreement between the two
// renditions of any shared patch boundary as an error. Meshing on top
// of a misaligned topology would tear the grid at the seam.
func checkAlignment(r *topology.Result, tol float64) error {
	m := topology.VerifyBoundaries(r.Adjacency, r.Patches, tol)
	if len(m) == 0 {
		return nil
	}
	parts := make([]string, len(m))
	for i, mm := range m {
		parts[i] = mm.Error()
	}
	return fmt.Errorf("divgrid: %d misaligned patch boundaries: %s", len(m), strings.Join(parts, "; "))
}

// unresolvedError condenses per-patch topology failures into one error
// with a stable ordering.
func unresolvedError(unresolved map[string]error) error {
	names := make([]string, 0, len(unresolved))
	for name := range unresolved {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %v", name, unresolved[name])
	}
	return fmt.Errorf("divgrid: %d patches unresolved: %s", len(names), strings.Join(parts, "; "))
}

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

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fusionmodel/divgrid"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] settings.toml",
	Short: "Validate a settings file and print the resolved configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("lenient", false, "downgrade cell-count pairing violations to warnings")
}

func runCheck(cmd *cobra.Command, args []string) error {
	lenient, err := cmd.Flags().GetBool("lenient")
	if err != nil {
		return err
	}
	s, err := divgrid.LoadSettings(args[0])
	if err != nil {
		return err
	}
	counts, err := s.Grid.GridGeneration.Resolve(lenient)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "magnetic axis: (%g, %g)\n", s.Grid.RMagx, s.Grid.ZMagx)
	fmt.Fprintf(out, "primary X-point: (%g, %g)\n", s.Grid.RXpt, s.Grid.ZXpt)
	if s.Grid.NumXpt > 1 {
		fmt.Fprintf(out, "secondary X-point: (%g, %g)\n", s.Grid.RXpt2, s.Grid.ZXpt2)
	}
	fmt.Fprintf(out, "psi levels: core=%g pf1=%g pf2=%g sol_west=%g sol_east=%g\n",
		s.Grid.PsiCore, s.Grid.PsiPF1, s.Grid.PsiPF2, s.Grid.PsiMaxWest, s.Grid.PsiMaxEast)
	fmt.Fprintf(out, "cell counts: np core/sol/pf = %d/%d/%d, nr core/sol/pf = %d/%d/%d\n",
		counts.NpCore, counts.NpSOL, counts.NpPF, counts.NrCore, counts.NrSOL, counts.NrPF)
	fmt.Fprintf(out, "guard cell eps: %g\n", counts.GuardCellEps)

	keys := make([]string, 0, len(s.TargetPlates))
	for key := range s.TargetPlates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		l, err := s.TargetPlates[key].Line()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "plate %s: %d points, length %g\n", key, l.Len(), l.Length())
	}
	return nil
}

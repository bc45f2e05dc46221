/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/feorient/basis"
	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/orientation"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

type CoeffRequest struct {
	Cell         topology.Key
	Degree       int
	Dim, ID, Ort int
	PointType    lattice.PointType
}

// CoeffCmd represents the coeff command
var CoeffCmd = &cobra.Command{
	Use:   "coeff",
	Short: "Print the orientation matrix of one edge or face",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var req CoeffRequest
		if req.Cell, err = topology.NewKey(viper.GetString("coeff.cell")); err != nil {
			return
		}
		if req.PointType, err = lattice.NewPointType(viper.GetString("coeff.points")); err != nil {
			return
		}
		req.Degree = viper.GetInt("coeff.degree")
		req.Dim = viper.GetInt("coeff.dim")
		req.ID = viper.GetInt("coeff.id")
		req.Ort = viper.GetInt("coeff.ort")
		return RunCoeff(cmd.OutOrStdout(), req)
	},
}

func init() {
	rootCmd.AddCommand(CoeffCmd)
	CoeffCmd.Flags().StringP("cell", "c", "Quadrilateral", "cell topology: Triangle, Quadrilateral, Tetrahedron or Hexahedron")
	CoeffCmd.Flags().IntP("degree", "n", 5, "polynomial degree")
	CoeffCmd.Flags().Int("dim", 1, "subcell dimension, 1 = edge, 2 = face")
	CoeffCmd.Flags().Int("id", 0, "subcell ordinal within the cell")
	CoeffCmd.Flags().IntP("ort", "o", 1, "orientation code")
	CoeffCmd.Flags().StringP("points", "p", "Equispaced", "basis node placement: Equispaced or WarpBlend")
	for _, name := range []string{"cell", "degree", "dim", "id", "ort", "points"} {
		_ = viper.BindPFlag("coeff."+name, CoeffCmd.Flags().Lookup(name))
	}
}

func RunCoeff(w io.Writer, req CoeffRequest) (err error) {
	var (
		cell     *basis.Nodal
		subcells map[topology.Key]basis.Basis
		n        int
	)
	if cell, err = basis.NewBasis(req.Cell, req.Degree, req.PointType); err != nil {
		return
	}
	ct := cell.Topology()
	if n, err = orientation.CoeffMatrixSize(cell, req.Dim, req.ID); err != nil {
		return
	}
	if subcells, err = orientation.NewSubcellBases(ct, req.Degree, req.PointType); err != nil {
		return
	}
	sct, _ := ct.SubcellTopology(req.Dim, req.ID)
	if nOrt := orientation.NumOrientations(sct.Key()); req.Ort < 0 || req.Ort >= nOrt {
		return errors.Wrapf(orientation.ErrConfiguration, "orientation code %d out of range [0,%d) on %s",
			req.Ort, nOrt, sct.Name())
	}
	logger.Debug("coefficient matrix",
		zap.String("cell", ct.Name()),
		zap.String("subcell", sct.Name()),
		zap.Int("size", n))
	if n == 0 {
		fmt.Fprintf(w, "%s degree %d subcell (%d,%d) has no interior DOFs\n", ct.Name(), req.Degree, req.Dim, req.ID)
		return
	}
	X := utils.NewMatrix(n, n)
	if err = orientation.CoeffMatrix(X, subcells[sct.Key()], cell, req.Dim, req.ID, req.Ort); err != nil {
		return
	}
	X.SetReadOnly(fmt.Sprintf("%s[%d,%d] ort=%d", ct.Name(), req.Dim, req.ID, req.Ort))
	fmt.Fprintln(w, X.String())
	fmt.Fprintf(w, "cond = %8.3e\n", X.ConditionNumber())
	return
}

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
	"context"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/feorient/InputParameters"
	"github.com/notargets/feorient/orientation"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// TableCmd represents the table command
var TableCmd = &cobra.Command{
	Use:   "table",
	Short: "Build the orientation tables of a cell for a list of degrees",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ipFile string
			data   []byte
			ip     InputParameters.TableParameters
		)
		if ipFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if len(ipFile) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", exampleTableFile)
			return errors.New("must supply an input parameters file (-I, --inputConditionsFile)")
		}
		if data, err = ioutil.ReadFile(ipFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
		printMatrices, _ := cmd.Flags().GetBool("print")
		return RunTable(cmd.Context(), cmd.OutOrStdout(), &ip, printMatrices)
	},
}

const exampleTableFile = `
########################################
Title: "Hex tables"
Cell: Hexahedron
Degrees: [2, 3, 4]
PointType: WarpBlend # Can be Equispaced
Workers: 4
Tolerance: 1.e-14
########################################
`

func init() {
	rootCmd.AddCommand(TableCmd)
	TableCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the cell, degrees and point type")
	TableCmd.Flags().Bool("print", false, "print every matrix, not only the summary")
}

func RunTable(ctx context.Context, w io.Writer, ip *InputParameters.TableParameters, printMatrices bool) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	key, _ := ip.CellKey()
	pt, _ := ip.Points()
	ip.Print(w)
	var tc *orientation.TableCache
	tc, err = orientation.NewTableCache(1<<26, orientation.Options{
		Workers:       ip.Workers,
		DropTolerance: ip.Tolerance,
		Logger:        logger,
	})
	if err != nil {
		return
	}
	defer tc.Close()
	ct := topology.MustGet(key)
	for _, degree := range ip.Degrees {
		var tbl *orientation.Table
		if tbl, err = tc.Get(ctx, orientation.TableKey{Cell: key, Degree: degree, PointType: pt}); err != nil {
			return errors.Wrapf(err, "degree %d", degree)
		}
		for d := 1; d < ct.Dimension(); d++ {
			fmt.Fprintf(w, "degree %d: %d %s subcells, %dx%d matrices\n",
				degree, ct.SubcellCount(d), subcellName(ct, d), tbl.Size(d), tbl.Size(d))
			if !printMatrices || tbl.Size(d) == 0 {
				continue
			}
			for ord := 0; ord < ct.SubcellCount(d); ord++ {
				sct, _ := ct.SubcellTopology(d, ord)
				for ort := 0; ort < orientation.NumOrientations(sct.Key()); ort++ {
					X := tbl.Matrix(d, ord, ort)
					X.SetReadOnly(fmt.Sprintf("[%d,%d] ort=%d", d, ord, ort))
					fmt.Fprintln(w, X.String())
				}
			}
		}
	}
	logger.Debug("tables done",
		zap.Float64("cacheHitRatio", tc.HitRatio()),
		zap.String("mem", utils.GetMemUsage()))
	return
}

func subcellName(ct *topology.CellTopology, dim int) string {
	sct, err := ct.SubcellTopology(dim, 0)
	if err != nil {
		return "?"
	}
	return sct.Name()
}

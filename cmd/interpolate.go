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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/pgkyl/data"
)

// InterpolateCmd represents the interpolate command
var InterpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Interpolate modal DG data onto a nodal grid",
	Long: `
Evaluates the modal expansion of every cell at a tensor product of reference nodes
and writes the nodal values together with the refined grid.

pgkyl interpolate -f "field_*.gkz" --polyorder 2`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			files     []string
			output    string
			nodesList string
			opts      interpolateOptions
		)
		if files, err = cmd.Flags().GetStringSlice("filename"); err != nil {
			return
		}
		if output, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if opts.PolyOrder, err = cmd.Flags().GetInt("polyorder"); err != nil {
			return
		}
		if opts.Basis, err = cmd.Flags().GetString("basis"); err != nil {
			return
		}
		if nodesList, err = cmd.Flags().GetString("nodes"); err != nil {
			return
		}
		if opts.Nodes, err = parseNodes(nodesList); err != nil {
			return
		}
		opts.ParallelDegree = viper.GetInt("parallel")
		lo := loadOptions{
			Stack:     viper.GetBool("stack"),
			Comp:      viper.GetString("comp"),
			PolyOrder: opts.PolyOrder,
			Basis:     opts.Basis,
		}
		return runInterpolate(files, output, lo, opts)
	},
}

func init() {
	rootCmd.AddCommand(InterpolateCmd)
	InterpolateCmd.Flags().StringSliceP("filename", "f", nil, "one or more files to work with, wild cards allowed when quoted")
	InterpolateCmd.Flags().StringP("output", "o", "", "output file for a single input, defaults to <name>_interp.gkz")
	InterpolateCmd.Flags().IntP("polyorder", "p", -1, "polynomial order, defaults to the order stored with the data")
	InterpolateCmd.Flags().StringP("basis", "b", "", "basis family: ser, max or tensor, defaults to the stored basis")
	InterpolateCmd.Flags().String("nodes", "", "comma separated reference nodes in (-1,1), defaults to polyorder+1 cell-centered nodes")
}

func runInterpolate(files []string, output string, lo loadOptions, opts interpolateOptions) (err error) {
	var (
		sets []*data.GData
	)
	vlog("Starting interpolate")
	if len(files) == 0 {
		return fmt.Errorf("must supply at least one file (-f, --filename)")
	}
	if sets, err = loadDataSets(files, lo); err != nil {
		return
	}
	if len(output) != 0 && len(sets) > 1 {
		printWarning("--output ignored for %d data sets, writing <name>_interp.gkz", len(sets))
		output = ""
	}
	for i, gd := range sets {
		vlog("interpolate: data set #%d", i)
		if err = interpolateDataSet(gd, opts); err != nil {
			return
		}
		outName := output
		if len(outName) == 0 {
			outName = derivedName(gd.FileName, "_interp", ".gkz")
		}
		vlog("Writing '%s'", outName)
		if err = data.Save(gd, outName); err != nil {
			return
		}
	}
	vlog("Finishing interpolate")
	return
}

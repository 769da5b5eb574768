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

// WriteCmd represents the write command
var WriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write data to a text (.txt) or native (.gkz) file",
	Long: `
Writes the values of a data set, one row per point with the coordinates first.
With --interpolate the modal data is converted to nodal values before writing.

pgkyl write -f field.gkz -i -o field.txt`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			file, output string
			interpolate  bool
			opts         = interpolateOptions{PolyOrder: -1}
		)
		if file, err = cmd.Flags().GetString("filename"); err != nil {
			return
		}
		if output, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		if interpolate, err = cmd.Flags().GetBool("interpolate"); err != nil {
			return
		}
		opts.ParallelDegree = viper.GetInt("parallel")
		return runWrite(file, output, loadOptions{PolyOrder: -1, Comp: viper.GetString("comp")}, interpolate, opts)
	},
}

func init() {
	rootCmd.AddCommand(WriteCmd)
	WriteCmd.Flags().StringP("filename", "f", "", "file to work with")
	WriteCmd.Flags().StringP("output", "o", "", "output file, defaults to the input name with .txt")
	WriteCmd.Flags().BoolP("interpolate", "i", false, "interpolate modal data before writing")
}

func runWrite(file, output string, lo loadOptions, interpolate bool, opts interpolateOptions) (err error) {
	var (
		sets []*data.GData
	)
	vlog("Starting write")
	if len(file) == 0 {
		return fmt.Errorf("must supply a file (-f, --filename)")
	}
	if sets, err = loadDataSets([]string{file}, lo); err != nil {
		return
	}
	if len(sets) != 1 {
		return fmt.Errorf("write takes a single file, '%s' matched %d", file, len(sets))
	}
	gd := sets[0]
	if interpolate {
		if err = interpolateDataSet(gd, opts); err != nil {
			return
		}
	} else if _, ok := gd.PolyOrder(); ok {
		printWarning("'%s' holds modal coefficients, use --interpolate to write nodal values", file)
	}
	if len(output) == 0 {
		output = derivedName(file, "", ".txt")
	}
	vlog("Writing '%s'", output)
	if err = data.Save(gd, output); err != nil {
		return
	}
	vlog("Finishing write")
	return
}

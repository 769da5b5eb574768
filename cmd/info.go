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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/pgkyl/data"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print a summary of the loaded data sets",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			files []string
		)
		if files, err = cmd.Flags().GetStringSlice("filename"); err != nil {
			return
		}
		return runInfo(os.Stdout, files, loadOptions{PolyOrder: -1, Comp: viper.GetString("comp")})
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringSliceP("filename", "f", nil, "one or more files to work with, wild cards allowed when quoted")
}

func runInfo(w io.Writer, files []string, lo loadOptions) (err error) {
	var (
		sets []*data.GData
	)
	if len(files) == 0 {
		return fmt.Errorf("must supply at least one file (-f, --filename)")
	}
	if sets, err = loadDataSets(files, lo); err != nil {
		return
	}
	for _, gd := range sets {
		fmt.Fprint(w, gd.Info())
	}
	return
}

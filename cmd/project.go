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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/pgkyl/InputParameters"
	"github.com/notargets/pgkyl/data"
	"github.com/notargets/pgkyl/modalDG"
)

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project an analytic function onto modal DG coefficients",
	Long: `
Projects one of the built-in analytic functions onto the modal basis of a uniform
grid and writes the coefficients, producing input for the other commands.

pgkyl project -I params.yaml -o field.gkz`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			inputFile, outputFile string
		)
		if inputFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			return
		}
		if outputFile, err = cmd.Flags().GetString("output"); err != nil {
			return
		}
		return runProject(inputFile, outputFile)
	},
}

func init() {
	rootCmd.AddCommand(ProjectCmd)
	ProjectCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file describing the grid, basis and function")
	ProjectCmd.Flags().StringP("output", "o", "", "output file (.gkz or .txt), defaults to the input name with .gkz")
}

func readProjectParameters(inputFile string) (ip *InputParameters.ProjectParameters, err error) {
	var (
		fileData []byte
	)
	if len(inputFile) == 0 {
		exampleFile := `
########################################
Title: "Gaussian blob"
NumCells: [32, 32]
Lower: [-1, -1]
Upper: [1, 1]
PolynomialOrder: 2
Basis: ser # Can be "max" or "tensor"
Function:
  Type: gaussian # Can be constant, linear or sine
  Amplitude: 1.
  Width: 0.2
  Center: [0, 0]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile)")
	}
	if fileData, err = os.ReadFile(inputFile); err != nil {
		return
	}
	ip = &InputParameters.ProjectParameters{}
	if err = ip.Parse(fileData); err != nil {
		return nil, fmt.Errorf("%s: %w", inputFile, err)
	}
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", inputFile, err)
	}
	return
}

func runProject(inputFile, outputFile string) (err error) {
	var (
		ip *InputParameters.ProjectParameters
		bt modalDG.BasisType
		f  modalDG.Function
		mf *modalDG.ModalField
	)
	vlog("Starting project")
	if ip, err = readProjectParameters(inputFile); err != nil {
		return
	}
	if viper.GetBool("verbose") {
		ip.Print()
	}
	if bt, err = modalDG.NewBasisType(ip.Basis); err != nil {
		return
	}
	if f, err = modalDG.NewFunction(ip.Function, len(ip.NumCells)); err != nil {
		return
	}
	if mf, err = modalDG.Project(f, ip.Lower, ip.Upper, ip.NumCells, ip.PolynomialOrder, bt); err != nil {
		return
	}
	gd := data.FromModalField(mf)
	gd.Time = ip.Time
	if len(outputFile) == 0 {
		outputFile = derivedName(inputFile, "", ".gkz")
	}
	vlog("Writing '%s'", outputFile)
	if err = data.Save(gd, outputFile); err != nil {
		return
	}
	vlog("Finishing project")
	return
}

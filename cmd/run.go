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

	"github.com/notargets/hypersolver/InputParameters"
	"github.com/notargets/hypersolver/model_problems"
)

const exampleFile = `
########################################
Title: "Decaying Pulse"
Scheme: lax_friedrichs # lax_wendroff, method_of_characteristics or rk2
Stability: 0.9
TimeSpan: [0, 2]
Grid: {Min: 1, Max: 10, Points: 100}
Initial: {Type: indicator, Low: 4, High: 6} # constant, sine or gaussian
Flux: {Type: inverse, Value: 5} # constant, array, linear or ratio
Sink: {Type: linear, Value: -0.01}
########################################
`

// RunCmd solves a problem described by a YAML input file
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve a problem described in a YAML input file",
	Long: `Solve a problem described in a YAML input file, example:
` + exampleFile,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip     *InputParameters.InputParameters1D
			p      *model_problems.Problem
			file   string
			output string
			plot   bool
		)
		file, _ = cmd.Flags().GetString("inputConditionsFile")
		output, _ = cmd.Flags().GetString("output")
		plot, _ = cmd.Flags().GetBool("plot")
		if ip, err = processInput(file); err != nil {
			return
		}
		ip.Print()
		if p, err = model_problems.NewFromInput(ip); err != nil {
			return
		}
		scheme, _ := cmd.Flags().GetString("scheme")
		if err = (Settings{Scheme: scheme}).Apply(&p.Config); err != nil {
			return
		}
		return solveAndReport(p, output, plot)
	},
}

func processInput(file string) (ip *InputParameters.InputParameters1D, err error) {
	if len(file) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	var data []byte
	if data, err = os.ReadFile(file); err != nil {
		return
	}
	ip = &InputParameters.InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Scheme\n\t- Grid, Initial, Flux and Sink")
	RunCmd.Flags().StringP("scheme", "s", "", "scheme, overrides HS_METHOD and the input file")
	RunCmd.Flags().StringP("output", "o", "", "write the trajectory as CSV to this file, - for stdout")
	RunCmd.Flags().BoolP("plot", "p", false, "plot the final state in the terminal")
}

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
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/hypersolver/model_problems"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One Dimensional Model Problem Solutions",
	Long: `
Executes the hyperbolic solver for a catalogue of model problems,

hypersolver 1D -m decaying_pulse --scheme lax_wendroff --CFL 0.5`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m1d := &Model1D{}
		var model string
		model, _ = cmd.Flags().GetString("model")
		if m1d.ModelRun, err = model_problems.NewModelType(model); err != nil {
			return
		}
		m1d.Scheme, _ = cmd.Flags().GetString("scheme")
		m1d.CFL, _ = cmd.Flags().GetFloat64("CFL")
		m1d.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		m1d.Points, _ = cmd.Flags().GetInt("points")
		m1d.Output, _ = cmd.Flags().GetString("output")
		m1d.Plot, _ = cmd.Flags().GetBool("plot")
		m1d.Profile, _ = cmd.Flags().GetBool("profile")
		if m1d.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		return Run1D(m1d)
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	OneDCmd.Flags().StringP("model", "m", model_problems.M_DecayingPulse.String(),
		"model to run: "+strings.Join(model_problems.ModelNames(), ", "))
	OneDCmd.Flags().StringP("scheme", "s", "", "scheme, overrides HS_METHOD and the model default")
	OneDCmd.Flags().Float64("CFL", 0, "stability factor λ in (0, 1] - decrease for stability")
	OneDCmd.Flags().Float64("finalTime", 0, "FinalTime - the target end time for the sim, 0 takes the model default")
	OneDCmd.Flags().IntP("points", "n", 0, "number of grid points, 0 takes the model default")
	OneDCmd.Flags().StringP("output", "o", "", "write the trajectory as CSV to this file, - for stdout")
	OneDCmd.Flags().BoolP("plot", "p", false, "plot the final state in the terminal")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile to the working directory")
}

type Model1D struct {
	ModelRun       model_problems.ModelType
	Scheme         string
	CFL, FinalTime float64
	Points         int
	Output         string
	Plot, Profile  bool
}

func Run1D(m1d *Model1D) (err error) {
	var p *model_problems.Problem
	if p, err = model_problems.New(m1d.ModelRun, m1d.Points, m1d.FinalTime); err != nil {
		return
	}
	s := Settings{Scheme: m1d.Scheme, Stability: LimitCFL(m1d.CFL)}
	if err = s.Apply(&p.Config); err != nil {
		return
	}
	fmt.Printf("%s\nScheme: %s, Points = %d, FinalTime = %8.4f\n",
		p.Title, p.Config.Scheme, len(p.Grid), p.Span.End)
	return solveAndReport(p, m1d.Output, m1d.Plot)
}

// LimitCFL clamps the stability factor to the CFL limit of the explicit schemes
func LimitCFL(CFL float64) float64 {
	const CFLMax = 1.
	if CFL > CFLMax {
		fmt.Printf("Input CFL is higher than max CFL for this method\nReplacing with Max CFL: %8.2f\n", CFLMax)
		return CFLMax
	}
	return CFL
}

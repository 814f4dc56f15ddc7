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

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/notargets/gomms/InputParameters"
	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
)

type PointEval struct {
	X, Y, Z, Time float64
	Format        string
}

// EvaluateCmd represents the evaluate command
var EvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the manufactured solution at a point, the domain centroid by default",
	Long: `
Prints rho, u, v, w and p at the requested point. The yaml format adds the
temperature and the conserved variables rhoU, rhoV, rhoW and total energy
rhoE, and uses the flow solver's variable names.

gomms evaluate -x 0.25 -y 0.5 -z 0.75 --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersMMS
			pe = &PointEval{}
		)
		flags := cmd.Flags()
		pe.X, _ = flags.GetFloat64("x")
		pe.Y, _ = flags.GetFloat64("y")
		pe.Z, _ = flags.GetFloat64("z")
		pe.Time, _ = flags.GetFloat64("time")
		pe.Format, _ = flags.GetString("format")
		if ip, err = processInput(); err != nil {
			return
		}
		return RunEvaluate(cmd.OutOrStdout(), ip, pe)
	},
}

func init() {
	rootCmd.AddCommand(EvaluateCmd)
	c := 0.5 * manufactured_solution.DomainLength
	EvaluateCmd.Flags().Float64P("x", "x", c, "x coordinate")
	EvaluateCmd.Flags().Float64P("y", "y", c, "y coordinate")
	EvaluateCmd.Flags().Float64P("z", "z", c, "z coordinate")
	EvaluateCmd.Flags().Float64P("time", "t", 0, "time, accepted for completeness, the fields are steady")
	EvaluateCmd.Flags().StringP("format", "f", "text", "output format: text or yaml")
}

func RunEvaluate(w io.Writer, ip *InputParameters.InputParametersMMS, pe *PointEval) (err error) {
	var (
		ms *manufactured_solution.ManufacturedSolution
	)
	if ms, err = manufactured_solution.NewManufacturedSolution(ip.Scale, ip.RAir, ip.Gamma); err != nil {
		return
	}
	switch pe.Format {
	case "text":
		s := ms.GetState(pe.X, pe.Y, pe.Z)
		_, err = fmt.Fprintf(w, "rho= %v u= %v v= %v w= %v p= %v\n", s.Rho, s.U, s.V, s.W, s.P)
	case "yaml":
		var data []byte
		m := ms.RefFunction(pe.X, pe.Y, pe.Z, pe.Time)
		_, m["rhoU"], m["rhoV"], m["rhoW"], m["rhoE"] = ms.GetStateC(pe.X, pe.Y, pe.Z)
		if data, err = yaml.Marshal(m); err != nil {
			return
		}
		_, err = w.Write(data)
	default:
		err = fmt.Errorf("unknown output format %q, want text or yaml", pe.Format)
	}
	return
}

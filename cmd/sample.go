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
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gomms/InputParameters"
	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
	"github.com/notargets/gomms/utils"
	"github.com/notargets/gomms/verification"
)

// SampleCmd represents the sample command
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Evaluate the manufactured solution over a structured grid and write CSV",
	Long: `
Samples every field on an Nx x Ny x Nz lattice spanning the grid extent of the
input file, the unit cube by default.

gomms sample -n 33 -o reference.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip  *InputParameters.InputParametersMMS
			out io.Writer = cmd.OutOrStdout()
		)
		flags := cmd.Flags()
		if ip, err = processInput(); err != nil {
			return
		}
		if flags.Changed("n") {
			n, _ := flags.GetInt("n")
			ip.Grid.Nx, ip.Grid.Ny, ip.Grid.Nz = n, n, n
		}
		if flags.Changed("parallelDegree") {
			ip.ParallelDegree, _ = flags.GetInt("parallelDegree")
		}
		if prof, _ := flags.GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if outFile, _ := flags.GetString("out"); len(outFile) != 0 {
			var f *os.File
			if f, err = os.Create(outFile); err != nil {
				return
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			bw := bufio.NewWriter(f)
			defer func() {
				if ferr := bw.Flush(); err == nil {
					err = ferr
				}
			}()
			out = bw
		}
		return RunSample(out, ip)
	},
}

func init() {
	rootCmd.AddCommand(SampleCmd)
	SampleCmd.Flags().IntP("n", "n", InputParameters.DefaultNPts, "points per direction, overrides the input file grid")
	SampleCmd.Flags().IntP("parallelDegree", "p", 0, "number of goroutines, 0 = one per CPU")
	SampleCmd.Flags().StringP("out", "o", "", "CSV output file, stdout when empty")
	SampleCmd.Flags().Bool("profile", false, "write a CPU profile to the working directory")
}

func RunSample(w io.Writer, ip *InputParameters.InputParametersMMS) (err error) {
	var (
		ms *manufactured_solution.ManufacturedSolution
		g  verification.Grid
	)
	if ms, err = manufactured_solution.NewManufacturedSolution(ip.Scale, ip.RAir, ip.Gamma); err != nil {
		return
	}
	if g, err = verification.NewGrid(ip.Grid.Nx, ip.Grid.Ny, ip.Grid.Nz, ip.Grid.Min, ip.Grid.Max); err != nil {
		return
	}
	samples := verification.SampleGrid(ms, g, ip.ParallelDegree)
	if log.IsLevelEnabled(log.InfoLevel) {
		summary, _ := verification.Summarize(samples)
		names := make([]string, 0, len(summary))
		for name := range summary {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fs := summary[name]
			log.WithFields(log.Fields{
				"min":  fs.Min,
				"max":  fs.Max,
				"mean": fs.Mean,
			}).Info(name)
		}
		log.Info(utils.GetMemUsage())
	}
	return verification.WriteSamples(w, samples)
}

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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gomms/InputParameters"
	"github.com/notargets/gomms/model_problems/NavierStokes3D/manufactured_solution"
	"github.com/notargets/gomms/verification"
)

type VerifyCase struct {
	SolutionFile string
	Title        string
	Order        int
	Header       bool
}

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compute error norms of a solver's output against the manufactured solution",
	Long: `
Reads a CSV of solver output with a header naming the columns. x, y and z are
required, any of rho, p, T, vel.x, vel.y and vel.z are compared. Writes one row
of L1, L2 and Linf norms per field, ready to append to a convergence study.

gomms verify -s flow-0004.csv --title MMS --order 2 >> norms.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersMMS
			vc = &VerifyCase{}
		)
		flags := cmd.Flags()
		vc.SolutionFile, _ = flags.GetString("solution")
		vc.Title, _ = flags.GetString("title")
		vc.Order, _ = flags.GetInt("order")
		vc.Header, _ = flags.GetBool("header")
		if len(vc.SolutionFile) == 0 {
			return fmt.Errorf("must supply a solution file (-s, --solution) in CSV format")
		}
		if ip, err = processInput(); err != nil {
			return
		}
		return RunVerify(cmd.OutOrStdout(), ip, vc)
	},
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	VerifyCmd.Flags().StringP("solution", "s", "", "CSV file of solver output")
	VerifyCmd.Flags().String("title", "MMS", "study title written to each row")
	VerifyCmd.Flags().Int("order", 1, "polynomial order of the solver run, written to each row")
	VerifyCmd.Flags().Bool("header", false, "write the column header before the rows")
}

func RunVerify(w io.Writer, ip *InputParameters.InputParametersMMS, vc *VerifyCase) (err error) {
	var (
		ms      *manufactured_solution.ManufacturedSolution
		f       *os.File
		samples []verification.Sample
		fields  []string
		norms   map[string]verification.Norms
	)
	if ms, err = manufactured_solution.NewManufacturedSolution(ip.Scale, ip.RAir, ip.Gamma); err != nil {
		return
	}
	if f, err = os.Open(vc.SolutionFile); err != nil {
		return
	}
	defer f.Close()
	if samples, fields, err = verification.ReadSamples(f); err != nil {
		return fmt.Errorf("reading %s: %w", vc.SolutionFile, err)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%s has no columns to compare, want any of %v",
			vc.SolutionFile, manufactured_solution.FieldNames)
	}
	if norms, err = verification.ComputeNorms(ms, samples, fields); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"points": len(samples),
		"fields": fields,
	}).Info("computed error norms")
	return verification.WriteNorms(w, vc.Title, vc.Order, len(samples), norms, vc.Header)
}

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
	"sort"

	"github.com/spf13/cobra"

	"github.com/notargets/gomms/verification"
)

// OrderCmd represents the order command
var OrderCmd = &cobra.Command{
	Use:   "order",
	Short: "Observed order of accuracy from the norms of a convergence study",
	Long: `
Reads rows of title,npts,order,field,L1,L2,Linf as written by verify and prints
the observed order of accuracy between successive grids.

gomms order --csvFile norms.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		csvFile, _ := cmd.Flags().GetString("csvFile")
		if len(csvFile) == 0 {
			return fmt.Errorf("must supply a file of convergence study norms (--csvFile)")
		}
		return RunOrder(cmd.OutOrStdout(), csvFile)
	},
}

func init() {
	rootCmd.AddCommand(OrderCmd)
	OrderCmd.Flags().StringP("csvFile", "c", "", "file containing entries of a convergence study")
}

func RunOrder(w io.Writer, csvFile string) (err error) {
	var (
		f       *os.File
		studies map[string]*verification.ConvergenceStudy
	)
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	if studies, err = verification.ReadStudies(f); err != nil {
		return fmt.Errorf("reading %s: %w", csvFile, err)
	}
	keys := make([]string, 0, len(studies))
	for k := range studies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cs := studies[key]
		npts := cs.NumPTS()
		fmt.Fprintf(w, "Title = %s, Order = %d, Grids = %v\n", cs.Title, cs.Order, npts)
		if len(npts) < 2 {
			fmt.Fprintf(w, "\tneeds at least two grids\n")
			continue
		}
		for _, field := range cs.Fields() {
			fmt.Fprintf(w, "%s", field)
			for _, kind := range []verification.NormKind{verification.L1, verification.L2, verification.LInf} {
				var orders []float64
				if orders, err = cs.ObservedOrders(field, kind); err != nil {
					return
				}
				fmt.Fprintf(w, "\t%s:", kind)
				for _, p := range orders {
					fmt.Fprintf(w, " %6.3f", p)
				}
			}
			fmt.Fprintln(w)
		}
	}
	return
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tfcyoo/rangerts-ars/config"
)

// inspectFlags holds the flag values of the inspect command.
type inspectFlags struct {
	configPath string
	file       string
	backend    string
	dependent  []string
	validate   bool
	workers    int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rangerdata",
		Short:         "Inspect tabular training data for tree ensembles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInspectCmd())

	return root
}

func newInspectCmd() *cobra.Command {
	var f inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a table and print per-feature statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve()
			if err != nil {
				return err
			}
			d, err := cfg.Open()
			if err != nil {
				return err
			}
			if err = d.Sort(); err != nil {
				return err
			}
			rows, err := summarize(cmd.Context(), d, f.workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "samples=%d features=%d targets=%d backend=%s permuted=%v\n",
				d.NumRows(), d.NumCols(), d.NumYCols(), d.Backend(), d.HasPermutation())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "column\tname\tmin\tmax\tmean\tunique")
			for _, s := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%g\t%g\t%g\t%d\n", s.Col, s.Name, s.Min, s.Max, s.Mean, s.Unique)
			}

			return tw.Flush()
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML dataset config (overrides the other input flags)")
	fl.StringVarP(&f.file, "file", "f", "", "input table")
	fl.StringVar(&f.backend, "backend", "dense", "storage backend: dense or sparse")
	fl.StringSliceVar(&f.dependent, "dependent", nil, "dependent (target) column names")
	fl.BoolVar(&f.validate, "validate-nan-inf", false, "reject NaN/Inf cells")
	fl.IntVar(&f.workers, "workers", runtime.GOMAXPROCS(0), "concurrent column workers")

	return cmd
}

// resolve builds a validated config from either --config or the input flags.
func (f *inspectFlags) resolve() (*config.Config, error) {
	if f.workers < 1 {
		return nil, errors.New("--workers must be >= 1")
	}
	if f.configPath != "" {
		return config.Load(f.configPath)
	}
	cfg := &config.Config{
		File:           f.file,
		Backend:        f.backend,
		Dependent:      f.dependent,
		ValidateNaNInf: f.validate,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

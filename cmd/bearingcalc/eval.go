package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCmd(newLogger func() *zap.Logger) *cobra.Command {
	var (
		remote     remoteFlags
		asJSON     bool
		textReport string
	)
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate one bearing from a JSON request file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			log := newLogger()
			defer log.Sync()

			var res bearing.Result
			c, err := remote.connect(cmd.Context(), log)
			if err != nil {
				return err
			}
			if c != nil {
				res, err = c.Evaluate(cmd.Context(), in)
			} else {
				res, err = localEval(cmd.Context(), in)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if err := printResult(out, res); err != nil {
				return err
			}
			if textReport != "" {
				f, err := os.Create(textReport)
				if err != nil {
					return err
				}
				defer f.Close()
				return report.WriteText(f, report.NewMeta("", "", time.Now()), res)
			}
			return nil
		},
	}
	remote.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVar(&textReport, "report", "", "Also write a plain-text report to this path")
	return cmd
}

func readInput(stdin io.Reader, path string) (bearing.Input, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return bearing.Input{}, err
		}
		defer f.Close()
		r = f
	}
	var in bearing.Input
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return bearing.Input{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return in, nil
}

func printResult(w io.Writer, r bearing.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Bearing\t%s\n", r.BearingID)
	fmt.Fprintf(tw, "Mode\t%s (%s)\n", r.Mode, r.BearingType)
	fmt.Fprintf(tw, "Material\t%s\n", r.Material)
	fmt.Fprintf(tw, "S\t%.3f\n", r.Demand.ShapeFactor)
	fmt.Fprintf(tw, "sigma_m\t%.3f MPa\n", r.Demand.StressMPa)
	if r.Mode == bearing.ModeSeismic {
		fmt.Fprintf(tw, "Keff\t%.4f kN/mm\n", r.Seismic.EffStiffnessKNmm)
		fmt.Fprintf(tw, "xi_eff\t%.2f %%\n", r.Seismic.DampingPercent)
	} else {
		fmt.Fprintf(tw, "eps_t,d\t%.4f / %.4f\n", r.Demand.TotalStrain, r.Limits.StrainLimit)
		fmt.Fprintf(tw, "Kv / Kh\t%.1f / %.4f kN/mm\n", r.Stiffness.VerticalKNmm, r.Stiffness.HorizontalKNmm)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CHECK\tDEMAND\tCAPACITY\tPASS\tSEVERITY")
	for _, v := range r.Verdicts {
		capacity := fmt.Sprintf("%.4f", v.Capacity)
		if math.IsInf(v.Capacity, 1) {
			capacity = "unbounded"
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%t\t%s\n", v.Check, v.Demand, capacity, v.Pass, v.Severity)
	}
	fmt.Fprintf(tw, "\nOK\t%t (advisories: %d)\n", r.OK, r.Advisories)
	return tw.Flush()
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"Bearing/internal/calc/premium/batch"
	"Bearing/internal/calc/premium/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBatchCmd(newLogger func() *zap.Logger) *cobra.Command {
	var (
		remote remoteFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "batch IN.xlsx",
		Short: "Evaluate every bearing of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			parsed, err := importer.ParseWorkbook(f)
			f.Close()
			if err != nil {
				return err
			}
			for _, re := range parsed.RowErrors {
				fmt.Fprintf(cmd.ErrOrStderr(), "row %d: %s\n", re.Row, re.Error)
			}
			if len(parsed.Inputs) == 0 {
				return fmt.Errorf("%s: no readable rows", args[0])
			}

			var res batch.Result
			c, err := remote.connect(cmd.Context(), log)
			if err != nil {
				return err
			}
			if c != nil {
				res, err = c.Batch(cmd.Context(), batch.Input{Items: parsed.Inputs})
			} else {
				res, err = batch.Calculate(cmd.Context(), batch.Input{Items: parsed.Inputs}, localEval)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ROW\tBEARING\tOK\tADVISORIES\tERROR")
			for i, it := range res.Items {
				ok, adv := "-", "-"
				if it.Result != nil {
					ok, adv = fmt.Sprint(it.Result.OK), fmt.Sprint(it.Result.Advisories)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", parsed.Rows[i], it.BearingID, ok, adv, it.Error)
			}
			fmt.Fprintf(tw, "\n%d evaluated, %d passed, %d failed\n", res.Count, res.Passed, res.Failed)
			if err := tw.Flush(); err != nil {
				return err
			}

			if output == "" {
				return nil
			}
			data, err := importer.Export(res)
			if err != nil {
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	remote.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the results workbook to this path")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty import workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := importer.Template()
			if err != nil {
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "bearing-import.xlsx", "Output path")
	return cmd
}

package main

import (
	"fmt"
	"text/tabwriter"

	"Bearing/internal/calc/bearing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMaterialsCmd(newLogger func() *zap.Logger) *cobra.Command {
	var remote remoteFlags
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List steel grades, elastomers and isolator compounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.Sync()

			l := bearing.Materials()
			c, err := remote.connect(cmd.Context(), log)
			if err != nil {
				return err
			}
			if c != nil {
				if l, err = c.Materials(cmd.Context()); err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STEEL\tfy (MPa)\tEs (MPa)")
			for _, s := range l.Steels {
				fmt.Fprintf(tw, "%s\t%.0f\t%.0f\n", s.Key, s.FyMPa, s.EsMPa)
			}
			fmt.Fprintln(tw, "\nELASTOMER\tG (MPa)\tEb (MPa)\tNAME")
			for _, e := range l.Elastomers {
				fmt.Fprintf(tw, "%s\t%.2f\t%.0f\t%s\n", e.Key, e.GMPa, e.EbMPa, e.Name)
			}
			fmt.Fprintln(tw, "\nISOLATOR\tG (MPa)\tQd/A (MPa)\talpha\tNAME")
			for _, i := range l.Isolators {
				fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t%.2f\t%s\n", i.Key, i.GMPa, i.QdNormMPa, i.Alpha, i.Name)
			}
			return tw.Flush()
		},
	}
	remote.register(cmd)
	return cmd
}

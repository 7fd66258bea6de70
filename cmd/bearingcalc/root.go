package main

import (
	"context"
	"os"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/client"
	"Bearing/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type remoteFlags struct {
	server   string
	login    string
	password string
}

func (f *remoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", "", "Evaluate on a running service at this base URL instead of locally")
	cmd.Flags().StringVar(&f.login, "login", os.Getenv("BEARING_LOGIN"), "Service login (env BEARING_LOGIN)")
	cmd.Flags().StringVar(&f.password, "password", os.Getenv("BEARING_PASSWORD"), "Service password (env BEARING_PASSWORD)")
}

// connect returns nil when evaluation should run locally.
func (f *remoteFlags) connect(ctx context.Context, log *zap.Logger) (*client.Client, error) {
	if f.server == "" {
		return nil, nil
	}
	c := client.New(f.server, log)
	if f.login != "" {
		if err := c.Login(ctx, f.login, f.password); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func localEval(_ context.Context, in bearing.Input) (bearing.Result, error) {
	return bearing.Calculate(in)
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "bearingcalc",
		Short: "Verify laminated elastomeric bearings and seismic isolators",
		Long: `Verify laminated elastomeric bearings to EN 1337-3 and idealize
lead-rubber and high-damping isolators to EN 15129.

Examples:
  # Evaluate one bearing described in JSON
  bearingcalc eval bearing.json

  # Evaluate a workbook and write the results workbook
  bearingcalc batch bearings.xlsx -o results.xlsx

  # List steel grades, elastomers and isolator compounds
  bearingcalc materials`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")

	newLogger := func() *zap.Logger {
		l, err := logger.NewLogger(logLevel, "console", "bearingcalc")
		if err != nil {
			return zap.NewNop()
		}
		return l
	}

	root.AddCommand(
		newEvalCmd(newLogger),
		newBatchCmd(newLogger),
		newMaterialsCmd(newLogger),
		newTemplateCmd(),
	)
	return root
}

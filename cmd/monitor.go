package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
)

var monitorFlags struct {
	input        string
	positions    string
	history      string
	summary      string
	thresholdPct float64
	mode         string
	maxSteps     int
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Replay battery output and record low-battery positions and battery history",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		apply := func(cfg *config.Config) {
			m := &cfg.Monitor
			if f.Changed("input") {
				m.Input = monitorFlags.input
			}
			if f.Changed("positions") {
				m.Positions = monitorFlags.positions
			}
			if f.Changed("history") {
				m.History = monitorFlags.history
			}
			if f.Changed("summary") {
				m.Summary = monitorFlags.summary
			}
			if f.Changed("threshold-pct") {
				m.ThresholdPct = monitorFlags.thresholdPct
			}
			if f.Changed("mode") {
				m.Mode = monitorFlags.mode
			}
			if f.Changed("max-steps") {
				m.MaxSteps = monitorFlags.maxSteps
			}
		}
		return withService(apply, func(svc *app.Service) error {
			_, err := svc.Monitor(cmd.Context())
			return err
		})
	},
}

func init() {
	f := monitorCmd.Flags()
	f.StringVarP(&monitorFlags.input, "input", "i", "", "SUMO battery output to replay")
	f.StringVar(&monitorFlags.positions, "positions", "", "low-battery positions CSV")
	f.StringVar(&monitorFlags.history, "history", "", "battery level history CSV")
	f.StringVar(&monitorFlags.summary, "summary", "", "per-vehicle summary (.csv or .json)")
	f.Float64Var(&monitorFlags.thresholdPct, "threshold-pct", 0, "battery percentage considered low")
	f.StringVar(&monitorFlags.mode, "mode", "", "below records every reading at or below the threshold, exact only equal ones")
	f.IntVar(&monitorFlags.maxSteps, "max-steps", 0, "stop after this many steps (0 = until the end)")
	rootCmd.AddCommand(monitorCmd)
}

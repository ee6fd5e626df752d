package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
)

var extractFlags struct {
	input     string
	output    string
	threshold float64
	profile   string
	strict    bool
	ids       string
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write a POI file marking where each vehicle first ran low on battery",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		apply := func(cfg *config.Config) {
			if f.Changed("input") {
				cfg.Extract.Input = extractFlags.input
			}
			if f.Changed("output") {
				cfg.Extract.Output = extractFlags.output
			}
			if f.Changed("threshold") {
				cfg.Extract.Threshold = extractFlags.threshold
			}
			if f.Changed("profile") {
				cfg.Extract.Profile = extractFlags.profile
			}
			if f.Changed("strict") {
				cfg.Extract.Strict = extractFlags.strict
			}
			if f.Changed("ids") {
				cfg.Extract.IDs = extractFlags.ids
			}
		}
		return withService(apply, func(svc *app.Service) error {
			_, err := svc.Extract(cmd.Context())
			return err
		})
	},
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.input, "input", "i", "", "SUMO battery output (.xml or .xml.gz)")
	f.StringVarP(&extractFlags.output, "output", "o", "", "POI additional file to write")
	f.Float64Var(&extractFlags.threshold, "threshold", 0, "battery ratio at or below which a vehicle is low (0,1]")
	f.StringVar(&extractFlags.profile, "profile", "", "marker style: small or large")
	f.BoolVar(&extractFlags.strict, "strict", false, "abort on the first malformed record")
	f.StringVar(&extractFlags.ids, "ids", "", "marker id scheme: uuid or counter")
	rootCmd.AddCommand(extractCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
)

var sumocfgFlags struct {
	net           string
	routes        []string
	additional    []string
	batteryOutput string
	output        string
}

var sumocfgCmd = &cobra.Command{
	Use:   "sumocfg",
	Short: "Write a SUMO configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		apply := func(cfg *config.Config) {
			s := &cfg.SumoConfig
			if f.Changed("net") {
				s.Net = sumocfgFlags.net
			}
			if f.Changed("routes") {
				s.Routes = sumocfgFlags.routes
			}
			if f.Changed("additional") {
				s.Additional = sumocfgFlags.additional
			}
			if f.Changed("battery-output") {
				s.BatteryOutput = sumocfgFlags.batteryOutput
			}
			if f.Changed("output") {
				s.Output = sumocfgFlags.output
			}
		}
		return withService(apply, func(svc *app.Service) error { return svc.SumoConfig() })
	},
}

func init() {
	f := sumocfgCmd.Flags()
	f.StringVar(&sumocfgFlags.net, "net", "", "network file")
	f.StringSliceVar(&sumocfgFlags.routes, "routes", nil, "route files (repeatable)")
	f.StringSliceVar(&sumocfgFlags.additional, "additional", nil, "additional files (repeatable)")
	f.StringVar(&sumocfgFlags.batteryOutput, "battery-output", "", "battery output file written by SUMO")
	f.StringVarP(&sumocfgFlags.output, "output", "o", "", "configuration file to write")
	rootCmd.AddCommand(sumocfgCmd)
}

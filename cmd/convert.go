package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
)

var convertFlags struct {
	net    string
	input  string
	output string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Add network x/y columns to a CSV of lon/lat coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		apply := func(cfg *config.Config) {
			if f.Changed("net") {
				cfg.Convert.Net = convertFlags.net
			}
			if f.Changed("input") {
				cfg.Convert.Input = convertFlags.input
			}
			if f.Changed("output") {
				cfg.Convert.Output = convertFlags.output
			}
		}
		return withService(apply, func(svc *app.Service) error {
			_, err := svc.Convert()
			return err
		})
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.net, "net", "", "network file providing the projection")
	f.StringVarP(&convertFlags.input, "input", "i", "", "CSV with lon and lat columns")
	f.StringVarP(&convertFlags.output, "output", "o", "", "CSV to write")
	rootCmd.AddCommand(convertCmd)
}

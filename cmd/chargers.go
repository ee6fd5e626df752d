package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ashishpoonia369/EVs/app"
	"github.com/ashishpoonia369/EVs/config"
)

var chargersFlags struct {
	net    string
	output string
}

var chargersCmd = &cobra.Command{
	Use:   "chargers",
	Short: "Place the configured charging stations on the nearest network lanes",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		apply := func(cfg *config.Config) {
			if f.Changed("net") {
				cfg.Chargers.Net = chargersFlags.net
			}
			if f.Changed("output") {
				cfg.Chargers.Output = chargersFlags.output
			}
		}
		return withService(apply, func(svc *app.Service) error {
			_, err := svc.Chargers()
			return err
		})
	},
}

func init() {
	chargersCmd.Flags().StringVar(&chargersFlags.net, "net", "", "network file")
	chargersCmd.Flags().StringVarP(&chargersFlags.output, "output", "o", "", "additional file to write")
	rootCmd.AddCommand(chargersCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhagemann/symred/pkg/arch"
)

func newAutomCmd(flags *rootFlags) *cobra.Command {
	var emitGAP bool

	cmd := &cobra.Command{
		Use:   "autom <description.json>",
		Short: "Derive the automorphism group of an architecture description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			bsgsOpts, err := cfg.Solver.BSGSOptions()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			system, err := arch.ParseDescription(data)
			if err != nil {
				return err
			}
			logger.Debug("description parsed",
				"processors", system.NumProcessors(), "channels", system.NumChannels())

			group, err := system.Automorphisms(&arch.AutomorphismOptions{BSGS: bsgsOpts})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), group.String())
			if emitGAP {
				fmt.Fprintln(cmd.OutOrStdout(), system.ToGAP())
			}
			printSuccess("automorphism group of order %s", styleValue.Render(group.Order().String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&emitGAP, "gap", false, "also emit a GAP cross-check expression")
	return cmd
}

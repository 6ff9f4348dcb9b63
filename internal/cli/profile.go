package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lhagemann/symred/pkg/arch"
	"github.com/lhagemann/symred/pkg/task"
)

func newProfileCmd(flags *rootFlags) *cobra.Command {
	var (
		numRuns   int
		numCycles int
	)

	cmd := &cobra.Command{
		Use:   "profile <description.json> <allocations-file>",
		Short: "Measure repeated canonicalization runs",
		Long: `profile canonicalizes the given allocation batch num-cycles times per
run, num-runs times, and reports per-run wall-clock timings. Automorphism
derivation is timed separately from canonicalization.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			reprOpts, err := cfg.Solver.ReprOptions()
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

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			allocations, err := task.ParseAllocations(f)
			f.Close()
			if err != nil {
				return err
			}

			derivationStart := time.Now()
			group, err := system.Automorphisms(reprOpts.Automorphisms)
			if err != nil {
				return err
			}
			derivation := time.Since(derivationStart)
			logger.Info("automorphism group derived",
				"order", group.Order().String(), "took", derivation)

			results := table.New().Headers("RUN", "CYCLES", "ALLOCS", "ORBITS", "TIME")
			for run := 1; run <= numRuns; run++ {
				orbits := task.NewOrbits()
				start := time.Now()
				for cycle := 0; cycle < numCycles; cycle++ {
					for _, allocation := range allocations {
						if _, err := system.Repr(allocation, reprOpts, orbits); err != nil {
							return err
						}
					}
				}
				elapsed := time.Since(start)
				results.Row(
					fmt.Sprint(run),
					fmt.Sprint(numCycles),
					fmt.Sprint(len(allocations)),
					fmt.Sprint(orbits.Len()),
					elapsed.String(),
				)
			}

			fmt.Fprintln(cmd.OutOrStdout(), styleTitle.Render("profile results"))
			fmt.Fprintln(cmd.OutOrStdout(), results.Render())
			fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render(
				fmt.Sprintf("automorphism derivation: %s, method: %s",
					derivation, cfg.Solver.ReprMethod)))
			return nil
		},
	}

	cmd.Flags().IntVar(&numRuns, "num-runs", 1, "number of timed runs")
	cmd.Flags().IntVar(&numCycles, "num-cycles", 1, "canonicalization cycles per run")
	return cmd
}

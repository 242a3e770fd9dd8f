package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/director"
	"github.com/ivlev/actiondirector/internal/timeline"
)

func (a *app) playCmd() *cobra.Command {
	var (
		from     float64
		ticks    int
		backward bool
	)

	cmd := &cobra.Command{
		Use:   "play <asset>",
		Short: "Step the playhead through an asset and print the active clips per tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := director.ReadAsset(args[0], a.reg)
			if err != nil {
				return err
			}

			interval := a.cfg.StepInterval()
			current := from
			if a.cfg.MagnetSnapping {
				current = timeline.Snap(current, interval)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[*] Step %.4fs (%s) | Length %.2fs\n", interval, a.cfg.TimeStepMode, asset.Length())
			for i := 0; i < ticks; i++ {
				printSamples(out, current, timeline.Sample(asset, current))
				current = timeline.Step(current, asset.Length(), interval, !backward)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "Start time")
	cmd.Flags().IntVar(&ticks, "ticks", 10, "Number of steps")
	cmd.Flags().BoolVar(&backward, "backward", false, "Step backward")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/director"
	"github.com/ivlev/actiondirector/internal/timeline"
)

func (a *app) inspectCmd() *cobra.Command {
	var at float64

	cmd := &cobra.Command{
		Use:   "inspect <asset>",
		Short: "Print the timeline tree of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := director.ReadAsset(args[0], a.reg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTree(out, asset)
			if cmd.Flags().Changed("at") {
				printSamples(out, at, timeline.Sample(asset, at))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&at, "at", 0, "Also list the clips playing at this time")
	return cmd
}

func printTree(w io.Writer, asset *director.Asset) {
	fmt.Fprintf(w, "[*] Length: %.2fs | View: %.2f-%.2f | Nodes: %d\n",
		asset.Length(), asset.ViewTimeMin(), asset.ViewTimeMax(), len(asset.Directables()))

	for _, g := range asset.Groups() {
		fmt.Fprintf(w, "%s %s (%s)%s\n", g.ID(), g.Name(), g.TypeName(), flags(g))
		for _, t := range g.Tracks() {
			fmt.Fprintf(w, "  %s %s%s\n", t.ID(), t.Info(), flags(t))
			for _, c := range t.Clips() {
				fmt.Fprintf(w, "    %s %-16s [%6.2f, %6.2f]", c.ID(), c.Info(), c.StartTime(), c.EndTime())
				if c.CanCrossBlend() {
					fmt.Fprintf(w, " in %.2f out %.2f", c.BlendIn(), c.BlendOut())
				}
				if sub, ok := c.SubClip(); ok {
					fmt.Fprintf(w, " loop %.2fs", sub.LoopLength())
				}
				fmt.Fprintln(w)
			}
		}
	}

	for _, f := range asset.Faults() {
		fmt.Fprintf(w, "[!] %v\n", f)
	}
}

func flags(d director.Directable) string {
	var parts []string
	if !d.IsActive() {
		parts = append(parts, "inactive")
	}
	if d.IsLocked() {
		parts = append(parts, "locked")
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func printSamples(w io.Writer, at float64, samples []timeline.ClipSample) {
	fmt.Fprintf(w, "[*] At %.3fs: %d clip(s)\n", at, len(samples))
	for _, s := range samples {
		fmt.Fprintf(w, "    %-16s local %.3f weight %.3f", s.Clip.Info(), s.LocalTime, s.Weight)
		if s.SubClipTime >= 0 {
			fmt.Fprintf(w, " loop %.3f", s.SubClipTime)
		}
		fmt.Fprintln(w)
	}
}

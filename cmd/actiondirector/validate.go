package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/analyzer"
	"github.com/ivlev/actiondirector/internal/engine"
	"github.com/ivlev/actiondirector/internal/system"
)

func (a *app) validateCmd() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "validate [files or dirs...]",
		Short: "Load, validate and lint asset files (default: latest asset in the asset dir)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			start := time.Now()

			if len(args) == 0 {
				latest, err := system.FindLatestAsset(a.cfg.AssetDir)
				if err != nil {
					return fmt.Errorf("%w. Put assets into %s/", err, a.cfg.AssetDir)
				}
				fmt.Fprintf(out, "[*] Selected asset: %s\n", latest)
				args = []string{latest}
			}

			paths, err := engine.CollectFiles(args)
			if err != nil {
				return err
			}
			if len(paths) > 64 {
				system.InitResourceLimits()
			}

			checker, err := analyzer.NewChecker(variant)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "[*] Validating %d file(s) on %d worker(s)\n", len(paths), a.cfg.Workers)
			reports, err := engine.ValidateFilesWith(cmd.Context(), a.cfg, a.reg, checker, paths)
			if err != nil {
				return err
			}

			failed := engine.PrintReports(out, reports)
			if a.cfg.ShowStats {
				system.PrintStats(out, a.cfg.BuildVersion, time.Since(start), len(paths))
			}
			if failed > 0 {
				return fmt.Errorf("%d asset(s) failed validation", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&variant, "check", "all", "Checks to run: all, overlap, blend, subclip, faults")
	return cmd
}

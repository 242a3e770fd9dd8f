package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/director"
	"github.com/ivlev/actiondirector/internal/query"
)

func (a *app) queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <asset> <jsonpath>",
		Short: "Evaluate a JSONPath expression against an asset document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := director.ReadAsset(args[0], a.reg)
			if err != nil {
				return err
			}
			results, err := query.Run(asset, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), query.Render(results))
			return nil
		},
	}
}

func (a *app) checkTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-time <asset> <node-id> <start> <end>",
		Short: "Report whether a node may occupy [start, end] under its parent",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := director.ReadAsset(args[0], a.reg)
			if err != nil {
				return err
			}
			node, ok := asset.Find(args[1])
			if !ok {
				return fmt.Errorf("node %s not found", args[1])
			}
			start, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}
			end, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid end: %w", err)
			}

			out := cmd.OutOrStdout()
			if director.CanValidRange(node, start, end) {
				fmt.Fprintf(out, "[+] %s %q may occupy [%.3f, %.3f]\n", node.Kind(), node.Name(), start, end)
				return nil
			}
			fmt.Fprintf(out, "[-] %s %q may not occupy [%.3f, %.3f]\n", node.Kind(), node.Name(), start, end)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/director"
	"github.com/ivlev/actiondirector/internal/store"
)

func (a *app) storeCmd() *cobra.Command {
	var dbPath string

	open := func() (*store.Store, error) {
		path := a.cfg.StorePath
		if dbPath != "" {
			path = dbPath
		}
		return store.Open(path)
	}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the asset library",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Library database (default from config)")

	put := &cobra.Command{
		Use:   "put <asset> [name]",
		Short: "Import an asset file into the library",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := director.ReadAsset(args[0], a.reg)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if len(args) == 2 {
				name = args[1]
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Put(cmd.Context(), name, asset); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Stored %s (%.2fs)\n", name, asset.Length())
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <name> <output>",
		Short: "Export an asset from the library to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			asset, err := s.Get(cmd.Context(), args[0], a.reg)
			if err != nil {
				return err
			}
			if err := s.Touch(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := director.WriteAsset(asset, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Exported %s to %s\n", args[0], args[1])
			return nil
		},
	}

	var recent int
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			var entries []store.Entry
			if recent > 0 {
				entries, err = s.Recent(cmd.Context(), recent)
			} else {
				entries, err = s.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				opened := "never"
				if !e.OpenedAt.IsZero() {
					opened = e.OpenedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "%-24s %8.2fs  updated %s  opened %s\n",
					e.Name, e.Length, e.UpdatedAt.Format("2006-01-02 15:04:05"), opened)
			}
			fmt.Fprintf(out, "[*] %d asset(s)\n", len(entries))
			return nil
		},
	}
	list.Flags().IntVar(&recent, "recent", 0, "Only the N most recently opened assets")

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete an asset from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(put, get, list, rm)
	return cmd
}

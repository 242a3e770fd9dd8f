package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/actiondirector/internal/actions"
	"github.com/ivlev/actiondirector/internal/config"
	"github.com/ivlev/actiondirector/internal/director"
)

var version = "dev"

// app is the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	stats      bool

	cfg *config.Config
	reg *director.Registry
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[-] %v", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "actiondirector",
		Short:         "Inspect, validate and query action timeline assets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "actiondirector.yaml", "Path to preferences file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")
	root.PersistentFlags().BoolVar(&a.stats, "stats", false, "Print process statistics at the end")

	root.AddCommand(
		a.newCmd(),
		a.validateCmd(),
		a.inspectCmd(),
		a.playCmd(),
		a.queryCmd(),
		a.checkTimeCmd(),
		a.storeCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.BuildVersion = version
	if a.stats {
		cfg.ShowStats = true
	}
	a.cfg = cfg
	a.reg = actions.NewRegistry()

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	director.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

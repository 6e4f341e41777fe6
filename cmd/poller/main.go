package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/config"
)

// app carries what every subcommand needs
type app struct {
	cfg          *config.Config
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	quiet        bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "poller",
		Short:         "Watch headshot generations through the status API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.timeProvider = timeProvider.NewRealTimeProvider()
			if a.quiet {
				a.logger = logger.NewNoopLogger()
			} else {
				a.logger = logger.NewZapLogger(cfg.IsProduction(), coreport.ParseLogLevel(cfg.Logger.Level))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Flush()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "disable logging")

	root.AddCommand(newWatchCommand(a), newTokenCommand(a))
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/imbecility/tubesave/pkg/gateway"
	"github.com/imbecility/tubesave/pkg/logger"
)

var Version = "dev"

var (
	configPath string
	debug      bool
	jsonLogs   bool

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg gateway.Config
)

var rootCmd = &cobra.Command{
	Use:           "tubesave",
	Short:         "Fetch YouTube metadata and download audio or video",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := gateway.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			loaded.Debug = debug
		}
		if cmd.Flags().Changed("json-logs") {
			loaded.JSONLogs = jsonLogs
		}
		cfg = loaded
		logger.SetupGlobal(cfg.Debug, cfg.JSONLogs)
		log.Debug().Str("op", "cmd/root").Str("config", configPath).Msg("Configuration loaded")
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err.Error())
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tubesave", Version)
		},
	}
}

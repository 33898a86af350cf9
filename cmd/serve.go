package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/marianogappa/carioca-backend/internal/config"
	"github.com/marianogappa/carioca-backend/internal/logging"
	"github.com/marianogappa/carioca-backend/transport"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return transport.New(cfg.Addr, cfg.BotDelay, cfg.MatchSize, logger).Start()
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Duration("bot_delay", 1500*time.Millisecond, "delay before each bot action")
	serveCmd.Flags().Int("match_size", 1, "humans per room; empty seats are filled with bots when 1")
	serveCmd.Flags().String("log_level", "info", "debug, info, warn or error")
	rootCmd.AddCommand(serveCmd)
}

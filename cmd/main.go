package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/service-survey/logger"
)

var rootCmd = &cobra.Command{
	Use:           "survey-server",
	Short:         "Campus service survey backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	// không có subcommand thì chạy server
	RunE: runServe,
}

func main() {
	logger.Log = logger.New("service-survey")

	rootCmd.AddCommand(serveCmd, seedCmd, adminKeyCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vnkhanh/service-survey/config"
	"github.com/vnkhanh/service-survey/logger"
	"github.com/vnkhanh/service-survey/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert surveys, option sets and services from a YAML catalog",
	Long:  "Without --file the catalog embedded in the binary is used. Records are matched by name, so the command can be re-run.",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "path to a catalog YAML file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}

	cat, err := seed.Default()
	if seedFile != "" {
		cat, err = seed.LoadFile(seedFile)
	}
	if err != nil {
		return err
	}

	res, err := seed.Apply(cmd.Context(), db, cat)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"option_sets": res.OptionSets,
		"surveys":     res.Surveys,
		"questions":   res.Questions,
		"services":    res.Services,
	}).Info("catalog seeded")
	return nil
}

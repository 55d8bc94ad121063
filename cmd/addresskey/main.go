package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TFMV/AddressKey/internal/standardizer"
	"github.com/TFMV/AddressKey/pkg/config"
	"github.com/TFMV/AddressKey/pkg/utils"
)

var (
	configPath string
	cfg        *config.Config
	std        *standardizer.Standardizer
)

// errNotContained makes `contains` exit with status 1 without printing an error.
var errNotContained = eris.New("not contained")

var rootCmd = &cobra.Command{
	Use:           "addresskey",
	Short:         "Crush US postal addresses into canonical match keys",
	Long:          "Normalizes free-form US addresses into deterministic keys, expands house-number ranges and generates keys in bulk from CSV files or Postgres.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		logger, err := utils.NewLogger(cfg.Log)
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.ReplaceGlobals(logger)

		s, err := standardizer.FromConfig(cfg.Standardizer)
		if err != nil {
			return err
		}
		std = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to config file (default ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !eris.Is(err, errNotContained) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

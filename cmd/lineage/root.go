package main

import (
	"github.com/agenthands/lineage/internal/config"
	"github.com/agenthands/lineage/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "lineage.toml"

var (
	verbosity int
	cfgFile   string
	cfg       *config.Config

	rootCmd = &cobra.Command{
		Use:   "lineage",
		Short: "Correlate DNA matches with a GEDCOM family tree",
		Long: `lineage reads a GEDCOM family tree and a DNA match export, links each
match to a person in the tree by name and reports which matches share
ancestors.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadOrDefault(cfgFile)
			if err != nil {
				return err
			}
			loaded.ApplyEnv()
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded

			logging.Setup(logging.Options{
				Level:     cfg.Log.Level,
				Verbosity: verbosity,
				Pretty:    cfg.Log.Pretty,
			})
			log.Debug().Str("command", cmd.Name()).Str("config", cfgFile).Msg("command started")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "config file (TOML or YAML)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(ancestorsCmd)
	rootCmd.AddCommand(serveCmd)
}

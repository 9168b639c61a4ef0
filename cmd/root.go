package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/config"
)

var (
	configFile string
	verbose    bool

	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tcgoracle",
	Short: "Card search and deck rendering for trading card games",
	Long: `tcgoracle searches a trading card catalog with a small query language and
renders deck lists as balanced two-column summaries.

Queries are terms joined by '|'. A term is a card name fragment or a property
predicate such as 'type:spell' or 'atk>=2000', optionally negated with '!'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			config.SetConfigFilePath(configFile)
		}

		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		if verbose {
			zapConfig = zap.NewDevelopmentConfig()
		}

		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/tcgoracle/config.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadCatalog loads the config and the card table it points at.
func loadCatalog() (*config.Config, *card.Table, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Game == "" {
		return nil, nil, fmt.Errorf("no game configured; set 'game' in %s", config.GetConfigFilePath())
	}

	cards, err := card.LoadIndex(cfg.CardLibrary(), cfg.Game, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading card catalog: %w", err)
	}
	return cfg, card.NewTable(cards), nil
}

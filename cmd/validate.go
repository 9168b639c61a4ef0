package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tcgoracle/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [code | path]",
	Short: "Validate a deck against the card catalog",
	Long: `Validate checks that a deck file parses, that every card id exists in the
catalog of the configured game, and that the rendered deck fits its columns.
Errors make the command fail; warnings point at entries that will be ignored
or shown differently than expected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, table, err := loadCatalog()
		if err != nil {
			return err
		}

		deckPath, err := cfg.GetDeckPath(args[0])
		if err != nil {
			return err
		}

		v := validator.NewValidator(deckPath, table, cfg.DeckOptions())
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Deck '%s' is valid.\n", deckPath)
		} else {
			fmt.Printf("❌ Deck '%s' has %d validation errors:\n", deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

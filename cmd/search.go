package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tcgoracle/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the card catalog",
	Long: `Search runs a query against the card catalog of the configured game.

A query is a list of terms separated by '|'; a card must satisfy every term.
A term is either a name fragment or a property predicate:

  type:spell      the type contains "spell"
  atk>=2000       numeric comparison (<, <=, >, >=)
  !type:trap      negation

A single name that matches nothing falls back to the closest card name.

Examples:
  tcgoracle search "dark magician"
  tcgoracle search "type:spell|!quick"
  tcgoracle search "atk>2000|level<=7"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		cfg, table, err := loadCatalog()
		if err != nil {
			return err
		}

		aliases := search.NewAliasResolver(cfg.Aliases())
		res := search.Resolve(table.Cards(), query, aliases)
		logger.Debug("search",
			zap.String("query", query),
			zap.Int("results", len(res.Cards)),
			zap.Bool("fuzzy", res.Fuzzy))

		if len(res.Cards) == 0 {
			fmt.Printf("No results found for %s\n", colorize.HiWhiteString("%s", query))
			return nil
		}
		if res.Fuzzy {
			fmt.Println(colorize.YellowString("Did you mean: %s?", res.Suggestion))
		}

		if limit <= 0 {
			limit = len(res.Cards)
		}
		for _, c := range res.Cards[:min(limit, len(res.Cards))] {
			fmt.Printf("%s %s %s %s\n",
				colorize.HiBlackString("%-12s", c.ID),
				colorize.HiWhiteString("%s", c.Name),
				colorize.CyanString("(%s)", c.SetName),
				colorize.HiBlackString("· %s", c.DisplayType()))
		}
		if len(res.Cards) > limit {
			fmt.Printf("\n%d more results. Use --limit to show more.\n", len(res.Cards)-limit)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "n", 20, "maximum number of results to print (0 for all)")
}

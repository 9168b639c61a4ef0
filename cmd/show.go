package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/tcgoracle/internal/ansiart"
	"github.com/arcanaland/tcgoracle/internal/card"
	"github.com/arcanaland/tcgoracle/internal/config"
	"github.com/arcanaland/tcgoracle/internal/search"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id | name]",
	Short: "Display a card with ANSI art",
	Long: `Show displays a single card. The argument is looked up as a card id first
and then as a card name, with the same fallback to the closest name that
search uses.

When image_dir is set in the config and holds the card's image, the image is
drawn next to the card text. Converted art is cached under
$XDG_CACHE_HOME/tcgoracle/ansi_cache.

Examples:
  tcgoracle show LOB-005
  tcgoracle show "blue eyes white dragon"
  tcgoracle show --no-art "pot of greed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noArt, _ := cmd.Flags().GetBool("no-art")
		query := strings.Join(args, " ")

		cfg, table, err := loadCatalog()
		if err != nil {
			return err
		}

		c, suggestion, err := findCard(cfg, table, query)
		if err != nil {
			return err
		}

		var art string
		if !noArt && cfg.ImageDir != "" {
			art, err = cardArt(cfg, c)
			if err != nil {
				logger.Debug("no art for card", zap.String("id", c.ID), zap.Error(err))
			}
		}

		displayCard(c, table.SameName(c), art, suggestion)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "do not draw the card image")
}

// findCard resolves an id or a name to one card.
func findCard(cfg *config.Config, table *card.Table, query string) (*card.Card, string, error) {
	if c, ok := table.Lookup(query); ok {
		return c, "", nil
	}

	res := search.Resolve(table.Cards(), query, search.NewAliasResolver(cfg.Aliases()))
	if len(res.Cards) == 0 {
		return nil, "", fmt.Errorf("no card found for %q", query)
	}
	return res.Cards[0], res.Suggestion, nil
}

// cardArt returns the ANSI art for c, converting its image on first use.
func cardArt(cfg *config.Config, c *card.Card) (string, error) {
	imagePath, err := ansiart.Find(cfg.ImageDir, c.Image)
	if err != nil {
		return "", err
	}
	return ansiart.Cached(imagePath, config.GetANSICacheDir())
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// displayCard prints the card text, with the art on the left when there is any
func displayCard(c *card.Card, printings []*card.Card, art, suggestion string) {
	var ansiLines []string
	if art != "" {
		ansiLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
	}
	maxAnsiWidth := ansiart.Width(art)

	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	infoWidth := terminalWidth() - infoStartCol - 4
	if infoWidth < 20 {
		infoWidth = 20
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.Name))
	infoLines = append(infoLines, colorize.CyanString("ID:   ")+colorize.HiWhiteString("%s", c.ID))
	infoLines = append(infoLines, colorize.CyanString("Type: ")+colorize.HiWhiteString("%s", c.DisplayType()))
	infoLines = append(infoLines, colorize.CyanString("Set:  ")+colorize.HiWhiteString("%s", c.SetName))

	if c.Text != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Text:"))
		infoLines = append(infoLines, wrapText(c.Text, infoWidth)...)
	}

	var others []string
	for _, p := range printings {
		if p != c {
			others = append(others, fmt.Sprintf("%s (%s)", p.SetName, p.ID))
		}
	}
	if len(others) > 0 {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("See also:"))
		infoLines = append(infoLines, wrapText(strings.Join(others, ", "), infoWidth)...)
	}

	if suggestion != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.YellowString("Did you mean: %s?", suggestion))
	}

	fmt.Println()
	for i := 0; i < max(len(ansiLines), len(infoLines)); i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			fmt.Print(strings.Repeat(" ", infoStartCol-len([]rune(ansiart.Strip(ansiLines[i])))))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/tcgoracle/internal/config"
	"github.com/arcanaland/tcgoracle/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage and render decks in your deck library",
	Long: `Commands for the deck library. Decks are JSON files named <code>.json
mapping card ids to {"count": n} or {"group": {"<pile>": n, ...}}.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		libraryPath := cfg.DeckLibrary()
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Deck library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'tcgoracle deck init' to create it.")
			return nil
		}

		libraryPath, err = filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}

			d, err := deck.LoadDeck(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				logger.Warn("skipping deck", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}

			found++
			fmt.Printf("  %s (%d entries)\n", strings.TrimSuffix(entry.Name(), ".json"), len(d.Entries))
		}

		if found == 0 {
			fmt.Println("No decks found in your deck library.")
			fmt.Println("You can add decks by copying them to:", libraryPath)
		}
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())

		libraryPath := cfg.DeckLibrary()
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Println("Deck library initialized at:", libraryPath)
		fmt.Println("You can now add decks by copying them to this directory.")
		return nil
	},
}

// deckRenderCmd represents the deck render command
var deckRenderCmd = &cobra.Command{
	Use:   "render [code | path]",
	Short: "Render a deck as two balanced columns",
	Long: `Render groups a deck by pile and card type and lays the groups out in two
columns of similar length. The header pile (if configured) opens the left
column and the footer pile closes the right one.

Examples:
  tcgoracle deck render ABC123
  tcgoracle deck render ./my-deck.json`,
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

		d, err := deck.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		r := deck.Render(d, table, cfg.DeckOptions())
		if r == nil {
			fmt.Println("The deck contains no entries that can be displayed.")
			return nil
		}

		printColumns(r.Left, r.Right, terminalWidth())
		fmt.Println()
		fmt.Println(colorize.CyanString("Cards: %d • Copies: %s", r.UniqueEntries, deck.FormatQuantity(r.TotalCopies)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckRenderCmd)
}

// styleLine turns a "**title**" line into a bold terminal heading.
func styleLine(line string) string {
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
		return colorize.New(colorize.Bold, colorize.FgHiWhite).Sprint(line[2 : len(line)-2])
	}
	return line
}

// visibleLen is the on-screen width of a column line after styling.
func visibleLen(line string) int {
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
		line = line[2 : len(line)-2]
	}
	return len([]rune(line))
}

// printColumns prints both columns side by side when they fit in width, and
// one after the other otherwise.
func printColumns(left, right string, width int) {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	leftWidth := 0
	for _, l := range leftLines {
		leftWidth = max(leftWidth, visibleLen(l))
	}
	rightWidth := 0
	for _, l := range rightLines {
		rightWidth = max(rightWidth, visibleLen(l))
	}

	const gap = 4
	if leftWidth+gap+rightWidth > width {
		for _, l := range leftLines {
			fmt.Println(styleLine(l))
		}
		fmt.Println()
		for _, l := range rightLines {
			fmt.Println(styleLine(l))
		}
		return
	}

	for i := 0; i < max(len(leftLines), len(rightLines)); i++ {
		pad := leftWidth + gap
		if i < len(leftLines) {
			fmt.Print(styleLine(leftLines[i]))
			pad -= visibleLen(leftLines[i])
		}
		if i < len(rightLines) {
			fmt.Print(strings.Repeat(" ", pad))
			fmt.Print(styleLine(rightLines[i]))
		}
		fmt.Println()
	}
}

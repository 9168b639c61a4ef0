package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/tcgoracle/internal/bot"
)

var replyCmd = &cobra.Command{
	Use:   "reply [message]",
	Short: "Print the bot's answer to a chat message",
	Long: `Reply answers chat messages the way the chat bot does: "[name]" or
"[query]" looks cards up and "[deck: CODE]" renders a deck from the deck
library. Without arguments every line of standard input is answered.

Examples:
  tcgoracle reply "has anyone played [Pot of Greed] lately?"
  tcgoracle reply "[deck: https://www.tcgbuilder.net/?deck=ABC123]"
  cat messages.txt | tcgoracle reply`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, table, err := loadCatalog()
		if err != nil {
			return err
		}

		b := bot.New(cfg, table, bot.LibrarySource{Dir: cfg.DeckLibrary()}, logger)

		if len(args) > 0 {
			printReply(b.Reply(strings.Join(args, " ")))
			return nil
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			printReply(b.Reply(scanner.Text()))
		}
		return scanner.Err()
	},
}

func init() {
	RootCmd.AddCommand(replyCmd)
}

func printReply(reply string) {
	if reply == "" {
		return
	}
	fmt.Println(reply)
	fmt.Println()
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/catatuang/catatuang/internal/grammar"
	"github.com/catatuang/catatuang/internal/model"
	"github.com/catatuang/catatuang/internal/reply"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [message]",
		Short: "Classify a message without touching the database",
		Long: `Run a single message through the command grammar and print the
classification. Handy for checking how a phrasing will be interpreted:

  catat parse "50rb kopi"
  catat parse "+ 1jt gaji"
  catat parse "saldo awal 500rb"`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			parsed := grammar.Parse(strings.Join(args, " "))

			cmd.Printf("kind: %s\n", parsed.Kind)
			if parsed.IsTransaction() {
				cmd.Printf("direction: %s\n", parsed.Direction)
			}
			if parsed.IsTransaction() || parsed.Kind == model.CommandSetBalance {
				cmd.Printf("amount: %s\n", reply.FormatRupiah(parsed.Amount))
			}
			if parsed.Description != "" {
				cmd.Printf("description: %s\n", parsed.Description)
			}
			if parsed.Hint != "" {
				cmd.Printf("hint: %s\n", parsed.Hint)
			}
		},
	}
}

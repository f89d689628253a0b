package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"domcolor/pkg/expr"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FORMULA",
	Short: "Print the tokens of a formula",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := expr.Tokenize(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tokens (%d)\n", len(tokens))
		for _, tok := range tokens {
			fmt.Fprintln(out, " ", tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

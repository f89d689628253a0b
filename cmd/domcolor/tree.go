package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"domcolor/pkg/expr"
)

var treeFlags struct {
	mermaid bool
	folded  bool
}

var treeCmd = &cobra.Command{
	Use:   "tree FORMULA",
	Short: "Print the parsed expression tree of a formula",
	Long: `Print the fully parenthesised form of a formula's expression tree.

With --mermaid the tree is printed as a Mermaid flowchart instead, which can
be pasted into any Mermaid renderer. With --folded, constant subtrees are
evaluated first, showing the tree the renderer actually samples.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := expr.Parse(args[0])
		if err != nil {
			return err
		}
		if treeFlags.folded {
			tree = expr.Fold(tree)
		}
		out := cmd.OutOrStdout()
		if treeFlags.mermaid {
			fmt.Fprintln(out, expr.Mermaid(tree))
			return nil
		}
		fmt.Fprintln(out, tree)
		fmt.Fprintf(out, "nodes: %d, depends on z: %t\n", expr.Size(tree), expr.DependsOnZ(tree))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVar(&treeFlags.mermaid, "mermaid", false, "print a Mermaid flowchart")
	treeCmd.Flags().BoolVar(&treeFlags.folded, "folded", false, "fold constant subtrees first")
}

// List-trees command enumerates the established roots.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listTreesCmd = &cobra.Command{
	Use:   "list-trees",
	Short: "List all the trees kept in the database",
	Args:  cobra.NoArgs,
	RunE:  runListTrees,
}

func runListTrees(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trees, err := store.Trees()
	if err != nil {
		return fmt.Errorf("list trees: %w", err)
	}
	if len(trees) == 0 {
		fmt.Println("Looks like no trees have been added yet.")
		fmt.Println("Find a tree you'd like to add and type `otkeep establish`.")
		return nil
	}

	for _, tree := range trees {
		fmt.Println(tree.Root)
	}
	return nil
}

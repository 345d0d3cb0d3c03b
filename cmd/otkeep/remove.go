// Remove command deletes a script association from the current tree.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a script from the current tree",
	Long: `Remove deletes the named script association. The stored content stays
in the database; it may be shared with other trees.

Example:
  otkeep remove build`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	removed, err := store.RemoveAssociation(tree.TreeID, types.KindScript, name)
	if err != nil {
		return fmt.Errorf("remove script: %w", err)
	}
	if !removed {
		fmt.Printf("Didn't remove anything. %q probably doesn't exist.\n", name)
		return nil
	}

	fmt.Printf("Removed script %q\n", name)
	return nil
}

// Rename command renames a script association within the current tree.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename <current> <new>",
	Short: "Rename a script",
	Long: `Rename gives an existing script a new name within the current tree.
It fails when the new name is already taken.

Example:
  otkeep rename build build-all`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	err = store.RenameAssociation(tree.TreeID, types.KindScript, oldName, newName)
	switch {
	case errors.Is(err, types.ErrNotFound):
		return fmt.Errorf("no script named %q for the current tree", oldName)
	case errors.Is(err, types.ErrNameConflict):
		return fmt.Errorf("a script named %q already exists", newName)
	case err != nil:
		return fmt.Errorf("rename script: %w", err)
	}

	fmt.Printf("Renamed %q to %q\n", oldName, newName)
	return nil
}

// Clone command copies another tree's associations into the current tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var cloneSkipConflicts bool

var cloneCmd = &cobra.Command{
	Use:   "clone <tree>",
	Short: "Clone all scripts and files from another tree",
	Long: `Clone copies every script and file association from the tree rooted at
the given path into the tree governing the current directory, creating it
when none governs. The source tree is never modified.

By default the clone fails when the current tree already has an association
with a colliding name (clone_conflict: fail). With --skip-conflicts, or
clone_conflict: skip, colliding names are left untouched and reported.

Example:
  otkeep clone ~/src/myproject
  otkeep clone ~/src/myproject --skip-conflicts`,
	Args: cobra.ExactArgs(1),
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().BoolVar(&cloneSkipConflicts, "skip-conflicts", false, "skip colliding names instead of failing")
}

func runClone(cmd *cobra.Command, args []string) error {
	srcDir := args[0]

	if cloneSkipConflicts {
		configCloneConflict = types.PolicySkip
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	skipped, err := store.Clone(srcDir, cwd)
	switch {
	case errors.Is(err, types.ErrTreeNotFound):
		return fmt.Errorf("no tree established at %s", srcDir)
	case errors.Is(err, types.ErrNameConflict):
		return fmt.Errorf("clone would overwrite existing associations: %w", err)
	case err != nil:
		return fmt.Errorf("clone tree: %w", err)
	}

	if len(skipped) > 0 {
		fmt.Println("Skipped existing names:")
		for _, name := range skipped {
			fmt.Println("  " + name)
		}
	}
	fmt.Printf("Cloned associations from %s\n", srcDir)
	return nil
}

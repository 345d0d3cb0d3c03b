// Establish and unestablish commands manage tree roots.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/internal/sqlite"
	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var establishCmd = &cobra.Command{
	Use:   "establish",
	Short: "Establish the current directory as a tree root",
	Long: `Establish registers the current directory as a tree root. Scripts and
files added under this root are found from any of its subdirectories.

Example:
  cd ~/src/myproject && otkeep establish`,
	Args: cobra.NoArgs,
	RunE: runEstablish,
}

var unestablishCmd = &cobra.Command{
	Use:   "unestablish",
	Short: "Unestablish the current directory as a tree root",
	Long: `Unestablish removes the tree rooted at the current directory along with
all of its script and file associations. It must be run from the root
itself, not a subdirectory.`,
	Args: cobra.NoArgs,
	RunE: runUnestablish,
}

func runEstablish(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	tree, err := store.Establish(cwd)
	if errors.Is(err, types.ErrTreeExists) {
		return fmt.Errorf("there is already an otkeep tree root at %s", cwd)
	}
	if err != nil {
		return fmt.Errorf("establish tree root: %w", err)
	}

	fmt.Printf("Established %s\n", tree.Root)
	return nil
}

func runUnestablish(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	canonical, err := sqlite.CanonicalRoot(cwd)
	if err != nil {
		return err
	}
	if canonical != tree.Root {
		fmt.Fprintln(os.Stderr, "The current directory is not the root.")
		fmt.Fprintf(os.Stderr, "Go to %s\n", tree.Root)
		fmt.Fprintln(os.Stderr, "Then run this command again if you really want to unestablish")
		return nil
	}

	if err := store.RemoveTree(tree.TreeID); err != nil {
		return fmt.Errorf("unestablish tree root: %w", err)
	}

	fmt.Printf("Unestablished %s\n", tree.Root)
	return nil
}

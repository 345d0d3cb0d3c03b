// Cat and checkout commands read stored content back out.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var catCmd = &cobra.Command{
	Use:   "cat <name>",
	Short: "Write a script or file to standard out",
	Long: `Cat looks up the name among the current tree's scripts, then its saved
files, and writes the stored content to standard out.

Example:
  otkeep cat build`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <name>",
	Short: "Check out a copy of a script as a file",
	Long: `Checkout writes the named script's content into the current directory
under its name.

Example:
  otkeep checkout build`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckout,
}

func runCat(cmd *cobra.Command, args []string) error {
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

	body, err := store.ContentByName(tree.TreeID, types.KindScript, name)
	if errors.Is(err, types.ErrNotFound) {
		body, err = store.ContentByName(tree.TreeID, types.KindFile, name)
	}
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no script or file named %q for the current tree", name)
	}
	if err != nil {
		return fmt.Errorf("cat %q: %w", name, err)
	}

	_, err = os.Stdout.Write(body)
	return err
}

func runCheckout(cmd *cobra.Command, args []string) error {
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

	body, err := store.ContentByName(tree.TreeID, types.KindScript, name)
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no script named %q for the current tree", name)
	}
	if err != nil {
		return fmt.Errorf("checkout %q: %w", name, err)
	}

	if err := os.WriteFile(name, body, 0o755); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	fmt.Printf("Checked out %q\n", name)
	return nil
}

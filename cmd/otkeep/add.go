// Add and update commands store script content for the current tree.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var (
	addInline      bool
	addDescription string
	updateInline   bool
)

var addCmd = &cobra.Command{
	Use:   "add <name> <script>",
	Short: "Add a script for the current tree",
	Long: `Add stores a script under a name for the tree governing the current
directory, creating the tree when none governs it. The script argument is a
path unless --inline is given, in which case it is the literal content.

Whether add replaces an existing name is controlled by the
overwrite_on_add config key (default true).

Example:
  otkeep add build ./scripts/build.sh
  otkeep add greet -i 'echo hello' --description "says hello"`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

var updateCmd = &cobra.Command{
	Use:   "update <name> <script>",
	Short: "Update a script with new contents",
	Long: `Update replaces the stored content of an existing script, keeping its
description. Unlike add, it fails when the name is unknown.

Example:
  otkeep update build ./scripts/build-v2.sh`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdate,
}

func init() {
	addCmd.Flags().BoolVarP(&addInline, "inline", "i", false, "treat the script argument as literal content")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional description for the script")
	updateCmd.Flags().BoolVarP(&updateInline, "inline", "i", false, "treat the script argument as literal content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, source := args[0], args[1]

	body, err := readSource(source, addInline)
	if err != nil {
		return err
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

	tree, err := store.Add(cwd, types.KindScript, name, body, addDescription)
	if errors.Is(err, types.ErrNameConflict) {
		return fmt.Errorf("script %q already exists; use otkeep update, or enable overwrite_on_add", name)
	}
	if err != nil {
		return fmt.Errorf("add script: %w", err)
	}

	fmt.Printf("Added script %q for %s\n", name, tree.Root)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	name, source := args[0], args[1]

	body, err := readSource(source, updateInline)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	err = store.UpdateAssociation(tree.TreeID, types.KindScript, name, body)
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no script named %q for the current tree; use otkeep add", name)
	}
	if err != nil {
		return fmt.Errorf("update script: %w", err)
	}

	fmt.Printf("Updated script %q\n", name)
	return nil
}

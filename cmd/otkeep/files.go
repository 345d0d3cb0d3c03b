// Save and restore commands manage the file-kind associations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var saveInline bool

var saveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Save a file from the working tree",
	Long: `Save stores a file's content under its path for the current tree, so
it can be restored later with otkeep restore. Saved files are inert: they
are never looked up by run.

Example:
  otkeep save .env.local`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

var restoreCmd = &cobra.Command{
	Use:   "restore [path]",
	Short: "Restore a saved file to the working tree",
	Long: `Restore writes a saved file back to its path. Without an argument it
lists the saved files instead.

Example:
  otkeep restore .env.local`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	saveCmd.Flags().BoolVarP(&saveInline, "inline", "i", false, "treat the path argument as literal content named by itself")
}

func runSave(cmd *cobra.Command, args []string) error {
	path := args[0]

	body, err := readSource(path, saveInline)
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

	tree, err := store.Add(cwd, types.KindFile, path, body, "")
	if errors.Is(err, types.ErrNameConflict) {
		return fmt.Errorf("file %q already saved; enable overwrite_on_add to replace it", path)
	}
	if err != nil {
		return fmt.Errorf("save file: %w", err)
	}

	fmt.Printf("Saved %q for %s\n", path, tree.Root)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		printFileListing(store, tree)
		return nil
	}
	path := args[0]

	body, err := store.ContentByName(tree.TreeID, types.KindFile, path)
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no saved file named %q for the current tree", path)
	}
	if err != nil {
		return fmt.Errorf("restore file: %w", err)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Restored %q\n", path)
	return nil
}

// List command and the bare-invocation status listing.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/internal/sqlite"
	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var listFiles bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scripts kept for the current tree",
	Long: `List enumerates the scripts kept for the tree governing the current
directory, ordered by name. With --files, the saved files are listed
instead.

Example:
  otkeep list
  otkeep list --files`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listFiles, "files", false, "list saved files instead of scripts")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := requireTree(store)
	if err != nil {
		return err
	}

	kind := types.KindScript
	if listFiles {
		kind = types.KindFile
	}

	assocs, err := store.ListAssociations(tree.TreeID, kind)
	if err != nil {
		return fmt.Errorf("list %ss: %w", kind, err)
	}
	if len(assocs) == 0 {
		if kind == types.KindFile {
			fmt.Println("No files have been saved yet. To save one, use otkeep save.")
		} else {
			fmt.Println("No scripts have been added yet. To add one, use otkeep add.")
		}
		return nil
	}

	printAssociations(assocs)
	return nil
}

// runStatus is the bare-invocation behavior: list the current tree's scripts
// and files, or the established trees when no tree governs the directory.
func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	tree, err := store.ResolveDir(cwd)
	if errors.Is(err, types.ErrNoTree) {
		printEstablishedTrees(store)
		fmt.Println("No otkeep tree root governs this directory.")
		fmt.Println("To establish one, use otkeep establish.")
		return nil
	}
	if err != nil {
		return err
	}

	printScriptListing(store, tree)
	fmt.Println()
	printFileListing(store, tree)
	return nil
}

// printScriptListing writes the tree's script listing.
func printScriptListing(store *sqlite.Store, tree types.Tree) {
	scripts, err := store.ListAssociations(tree.TreeID, types.KindScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list scripts: %v\n", err)
		return
	}
	if len(scripts) == 0 {
		fmt.Println("No scripts have been added yet. To add one, use otkeep add.")
		return
	}
	fmt.Println("The following scripts are available (otkeep run):")
	fmt.Println()
	printAssociations(scripts)
}

// printFileListing writes the tree's saved-file listing.
func printFileListing(store *sqlite.Store, tree types.Tree) {
	files, err := store.ListAssociations(tree.TreeID, types.KindFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list files: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Println("No files have been saved yet. To save one, use otkeep save.")
		return
	}
	fmt.Println("The following files are available (otkeep restore):")
	fmt.Println()
	printAssociations(files)
}

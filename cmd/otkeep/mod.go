// Mod command modifies a script's metadata for the current tree.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

var modDescription string

var modCmd = &cobra.Command{
	Use:   "mod <name>",
	Short: "Modify a script's metadata",
	Long: `Mod updates metadata of an existing script.

Example:
  otkeep mod build --description "compiles everything"`,
	Args: cobra.ExactArgs(1),
	RunE: runMod,
}

func init() {
	modCmd.Flags().StringVar(&modDescription, "description", "", "description for the script")
}

func runMod(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !cmd.Flags().Changed("description") {
		fmt.Println("No modification option given, did nothing.")
		return nil
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

	err = store.SetDescription(tree.TreeID, types.KindScript, name, modDescription)
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("no script named %q for the current tree", name)
	}
	if err != nil {
		return fmt.Errorf("set description: %w", err)
	}

	fmt.Printf("%s => %s\n", name, modDescription)
	return nil
}

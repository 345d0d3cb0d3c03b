// Run command executes a stored script with forwarded arguments.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// treeRootEnv is set in the script's environment so scripts can locate the
// governing tree no matter which subdirectory they are run from.
const treeRootEnv = "OTKEEP_TREE_ROOT"

var runCmd = &cobra.Command{
	Use:   "run <name> [args...]",
	Short: "Run a stored script",
	Long: `Run resolves the current directory to its governing tree, looks up the
named script, and executes it with the remaining arguments forwarded. The
script's exit status becomes otkeep's exit status, and ` + treeRootEnv + `
is set to the tree root in its environment.

Example:
  otkeep run build
  otkeep run deploy --env staging`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	// Everything after the script name is forwarded verbatim, flags included.
	runCmd.Flags().SetInterspersed(false)
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	scriptArgs := args[1:]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	body, tree, err := store.RunLookup(cwd, name)
	switch {
	case errors.Is(err, types.ErrNoTree):
		printEstablishedTrees(store)
		return errors.New("no otkeep tree root was found; to establish one, use otkeep establish")
	case errors.Is(err, types.ErrNotFound):
		fmt.Fprintf(os.Stderr, "No script named %q for the current tree.\n\n", name)
		printScriptListing(store, tree)
		return errors.New("script not found")
	case err != nil:
		return fmt.Errorf("look up script: %w", err)
	}

	// Release the database before handing control to the script.
	if err := store.Close(); err != nil {
		return err
	}

	code, err := executeScript(body, tree.Root, scriptArgs)
	if err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// executeScript writes the script to an executable temp file, runs it with
// the given arguments, and returns its exit status.
func executeScript(body []byte, treeRoot string, args []string) (int, error) {
	dir, err := os.MkdirTemp("", "otkeep-run-")
	if err != nil {
		return 0, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "script")
	if err := os.WriteFile(path, body, 0o755); err != nil {
		return 0, fmt.Errorf("write script: %w", err)
	}

	proc := exec.Command(path, args...)
	proc.Stdin = os.Stdin
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	proc.Env = append(os.Environ(), treeRootEnv+"="+treeRoot)

	err = proc.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}
	return 0, nil
}

// Shared helpers for otkeep CLI commands.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/otkeep/internal/sqlite"
	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// openStore resolves the data directory and opens the store. The caller must
// defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:        dataDir,
		OverwriteOnAdd: configOverwriteOnAdd,
		CloneConflict:  configCloneConflict,
	}

	store := sqlite.NewStore()
	if err := store.Open(cfg); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return store, nil
}

// requireTree resolves the current directory to its governing tree. When no
// tree governs it, the established trees are printed as a hint and an error
// is returned.
func requireTree(store *sqlite.Store) (types.Tree, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return types.Tree{}, err
	}

	tree, err := store.ResolveDir(cwd)
	if errors.Is(err, types.ErrNoTree) {
		printEstablishedTrees(store)
		return types.Tree{}, errors.New("no otkeep tree root was found; to establish one, use otkeep establish")
	}
	if err != nil {
		return types.Tree{}, err
	}
	return tree, nil
}

// printEstablishedTrees lists the registered roots on stderr, if any.
func printEstablishedTrees(store *sqlite.Store) {
	trees, err := store.Trees()
	if err != nil || len(trees) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "The following trees are established:")
	for _, tree := range trees {
		fmt.Fprintln(os.Stderr, tree.Root)
	}
	fmt.Fprintln(os.Stderr)
}

// readSource returns the bytes to store for an add/update/save argument.
// With inline set, the argument itself is the content; otherwise it is a
// path, resolved against the current directory when relative.
func readSource(arg string, inline bool) ([]byte, error) {
	if inline {
		return []byte(arg), nil
	}

	// Abs resolves relative arguments against the current directory and
	// leaves absolute ones alone.
	path, err := filepath.Abs(arg)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}
	return body, nil
}

// printAssociations writes one kind's listing in "name - description" form.
func printAssociations(assocs []types.Association) {
	for _, a := range assocs {
		if a.Description == "" {
			fmt.Println(a.Name)
		} else {
			fmt.Printf("%s - %s\n", a.Name, a.Description)
		}
	}
}

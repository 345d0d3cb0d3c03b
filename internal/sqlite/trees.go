// Tree registry: maps canonical absolute root paths to tree IDs.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// CanonicalRoot normalizes a root path for registry comparison: absolute,
// cleaned, with symlinks resolved when the path exists. Two spellings of the
// same filesystem location canonicalize to the same string.
func CanonicalRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Clean(abs), nil
}

// ResolveOrCreateTree looks up a tree by canonical root path, creating it
// if absent.
func (s *Store) ResolveOrCreateTree(root string) (types.Tree, error) {
	db, err := s.conn()
	if err != nil {
		return types.Tree{}, err
	}

	canonical, err := CanonicalRoot(root)
	if err != nil {
		return types.Tree{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return types.Tree{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// A concurrent invocation may register the same root; the UNIQUE
	// constraint on root merges the insert and the read-back wins.
	if _, err := tx.Exec(
		"INSERT INTO trees (tree_id, root, created_at) VALUES (?, ?, ?) ON CONFLICT(root) DO NOTHING",
		generateUUID(), canonical, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return types.Tree{}, fmt.Errorf("inserting tree: %w", err)
	}

	tree, err := lookupTree(tx, canonical)
	if err != nil {
		return types.Tree{}, err
	}
	if err := tx.Commit(); err != nil {
		return types.Tree{}, fmt.Errorf("committing tree: %w", err)
	}
	return tree, nil
}

// LookupTree performs a read-only lookup of a tree by root path.
// Returns ErrTreeNotFound if the canonical root is not registered.
func (s *Store) LookupTree(root string) (types.Tree, error) {
	db, err := s.conn()
	if err != nil {
		return types.Tree{}, err
	}

	canonical, err := CanonicalRoot(root)
	if err != nil {
		return types.Tree{}, err
	}
	return lookupTree(db, canonical)
}

// querier is the subset of sql.DB and sql.Tx used by row lookups.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func lookupTree(q querier, canonical string) (types.Tree, error) {
	var t types.Tree
	var createdAt string
	err := q.QueryRow(
		"SELECT tree_id, root, created_at FROM trees WHERE root = ?", canonical,
	).Scan(&t.TreeID, &t.Root, &createdAt)
	if err == sql.ErrNoRows {
		return types.Tree{}, types.ErrTreeNotFound
	}
	if err != nil {
		return types.Tree{}, fmt.Errorf("looking up tree %s: %w", canonical, err)
	}
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return types.Tree{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return t, nil
}

// Trees returns every registered tree, ordered by root path.
func (s *Store) Trees() ([]types.Tree, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT tree_id, root, created_at FROM trees ORDER BY root")
	if err != nil {
		return nil, fmt.Errorf("querying trees: %w", err)
	}
	defer rows.Close()

	var trees []types.Tree
	for rows.Next() {
		var t types.Tree
		var createdAt string
		if err := rows.Scan(&t.TreeID, &t.Root, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning tree: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		trees = append(trees, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trees: %w", err)
	}
	return trees, nil
}

// RemoveTree deletes a tree and cascades to its script and file associations
// in one transaction. Blobs stay; they may be referenced by other trees.
// Returns ErrTreeNotFound if no tree exists with that ID.
func (s *Store) RemoveTree(treeID string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tree_scripts WHERE tree_id = ?", treeID); err != nil {
		return fmt.Errorf("deleting tree scripts: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM tree_files WHERE tree_id = ?", treeID); err != nil {
		return fmt.Errorf("deleting tree files: %w", err)
	}
	res, err := tx.Exec("DELETE FROM trees WHERE tree_id = ?", treeID)
	if err != nil {
		return fmt.Errorf("deleting tree: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return types.ErrTreeNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tree removal: %w", err)
	}
	return nil
}

// Association tables: named bindings of blobs to trees, one table per kind.
// Scripts and files share the same shape and invariants; within one tree a
// name is unique per kind.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// tableForKind maps an association kind to its table name. The returned
// string is interpolated into SQL, so it must come from this fixed set.
func tableForKind(kind types.Kind) (string, error) {
	switch kind {
	case types.KindScript:
		return "tree_scripts", nil
	case types.KindFile:
		return "tree_files", nil
	default:
		return "", types.ErrInvalidKind
	}
}

// PutAssociation stores content as a deduplicated blob and binds it to
// (treeID, name) for the given kind, in one transaction. When a row for the
// name already exists it is overwritten, unless overwrite is false, in which
// case ErrNameConflict is returned and nothing changes.
func (s *Store) PutAssociation(treeID string, kind types.Kind, name string, content []byte, description string, overwrite bool) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}
	if name == "" {
		return types.ErrInvalidName
	}

	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if !overwrite {
		var one int
		err := tx.QueryRow(
			"SELECT 1 FROM "+table+" WHERE tree_id = ? AND name = ?", treeID, name,
		).Scan(&one)
		if err == nil {
			return types.ErrNameConflict
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking name %q: %w", name, err)
		}
	}

	blobID, err := storeBlob(tx, content)
	if err != nil {
		return err
	}

	// Native upsert keeps the check-and-write atomic under concurrent
	// invocations.
	_, err = tx.Exec(
		"INSERT INTO "+table+" (tree_id, blob_id, name, description) VALUES (?, ?, ?, ?)"+
			" ON CONFLICT(tree_id, name) DO UPDATE SET blob_id = excluded.blob_id, description = excluded.description",
		treeID, blobID, name, description,
	)
	if err != nil {
		return fmt.Errorf("upserting %s %q: %w", kind, name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s %q: %w", kind, name, err)
	}
	return nil
}

// UpdateAssociation replaces the blob of an existing association, keeping
// its description. Returns ErrNotFound if no association has that name.
func (s *Store) UpdateAssociation(treeID string, kind types.Kind, name string, content []byte) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}

	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	blobID, err := storeBlob(tx, content)
	if err != nil {
		return err
	}

	res, err := tx.Exec(
		"UPDATE "+table+" SET blob_id = ? WHERE tree_id = ? AND name = ?",
		blobID, treeID, name,
	)
	if err != nil {
		return fmt.Errorf("updating %s %q: %w", kind, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s %q: %w", kind, name, err)
	}
	return nil
}

// GetAssociation performs an exact lookup by name.
// Returns ErrNotFound on a miss; that is an expected outcome, not a failure.
func (s *Store) GetAssociation(treeID string, kind types.Kind, name string) (types.Association, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return types.Association{}, err
	}

	db, err := s.conn()
	if err != nil {
		return types.Association{}, err
	}

	var a types.Association
	err = db.QueryRow(
		"SELECT tree_id, blob_id, name, description FROM "+table+" WHERE tree_id = ? AND name = ?",
		treeID, name,
	).Scan(&a.TreeID, &a.BlobID, &a.Name, &a.Description)
	if err == sql.ErrNoRows {
		return types.Association{}, types.ErrNotFound
	}
	if err != nil {
		return types.Association{}, fmt.Errorf("getting %s %q: %w", kind, name, err)
	}
	return a, nil
}

// ContentByName returns the blob content bound to (treeID, name, kind).
func (s *Store) ContentByName(treeID string, kind types.Kind, name string) ([]byte, error) {
	assoc, err := s.GetAssociation(treeID, kind, name)
	if err != nil {
		return nil, err
	}
	return s.BlobContent(assoc.BlobID)
}

// ListAssociations enumerates all associations of a kind for a tree,
// ordered by name.
func (s *Store) ListAssociations(treeID string, kind types.Kind) ([]types.Association, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT tree_id, blob_id, name, description FROM "+table+" WHERE tree_id = ? ORDER BY name",
		treeID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", kind, err)
	}
	defer rows.Close()

	var assocs []types.Association
	for rows.Next() {
		var a types.Association
		if err := rows.Scan(&a.TreeID, &a.BlobID, &a.Name, &a.Description); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		assocs = append(assocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %ss: %w", kind, err)
	}
	return assocs, nil
}

// RemoveAssociation deletes one association and reports whether a row was
// actually removed. The blob stays; it may be referenced elsewhere.
func (s *Store) RemoveAssociation(treeID string, kind types.Kind, name string) (bool, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return false, err
	}

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.Exec(
		"DELETE FROM "+table+" WHERE tree_id = ? AND name = ?", treeID, name,
	)
	if err != nil {
		return false, fmt.Errorf("removing %s %q: %w", kind, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking removed rows: %w", err)
	}
	return n > 0, nil
}

// RenameAssociation renames an association within its tree.
// Returns ErrNotFound if old is unknown, ErrNameConflict if new is taken.
func (s *Store) RenameAssociation(treeID string, kind types.Kind, oldName, newName string) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}
	if newName == "" {
		return types.ErrInvalidName
	}

	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow(
		"SELECT 1 FROM "+table+" WHERE tree_id = ? AND name = ?", treeID, newName,
	).Scan(&one)
	if err == nil {
		return types.ErrNameConflict
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking name %q: %w", newName, err)
	}

	res, err := tx.Exec(
		"UPDATE "+table+" SET name = ? WHERE tree_id = ? AND name = ?",
		newName, treeID, oldName,
	)
	if err != nil {
		return fmt.Errorf("renaming %s %q: %w", kind, oldName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking renamed rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing rename: %w", err)
	}
	return nil
}

// SetDescription updates an association's description.
// Returns ErrNotFound if no association has that name.
func (s *Store) SetDescription(treeID string, kind types.Kind, name, description string) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}

	db, err := s.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		"UPDATE "+table+" SET description = ? WHERE tree_id = ? AND name = ?",
		description, treeID, name,
	)
	if err != nil {
		return fmt.Errorf("describing %s %q: %w", kind, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking described rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Add stores content under name for the tree governing dir, resolving or
// creating the owning tree: the governing tree is used when one exists,
// otherwise dir itself becomes a new root. Overwrite behavior follows the
// store configuration.
func (s *Store) Add(dir string, kind types.Kind, name string, content []byte, description string) (types.Tree, error) {
	tree, err := s.ResolveDir(dir)
	if err == types.ErrNoTree {
		tree, err = s.ResolveOrCreateTree(dir)
	}
	if err != nil {
		return types.Tree{}, err
	}
	if err := s.PutAssociation(tree.TreeID, kind, name, content, description, s.Config().OverwriteOnAdd); err != nil {
		return types.Tree{}, err
	}
	return tree, nil
}

// RunLookup resolves dir to its governing tree and returns the named
// script's content for execution, along with the tree. Returns ErrNoTree or
// ErrNotFound as expected, distinguishable outcomes.
func (s *Store) RunLookup(dir, name string) ([]byte, types.Tree, error) {
	tree, err := s.ResolveDir(dir)
	if err != nil {
		return nil, types.Tree{}, err
	}
	content, err := s.ContentByName(tree.TreeID, types.KindScript, name)
	if err != nil {
		return nil, tree, err
	}
	return content, tree, nil
}

// List resolves dir to its governing tree and enumerates its associations
// of a kind, ordered by name.
func (s *Store) List(dir string, kind types.Kind) ([]types.Association, error) {
	tree, err := s.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	return s.ListAssociations(tree.TreeID, kind)
}

// Establish registers dir as a new tree root.
// Returns ErrTreeExists if the canonical root is already registered.
func (s *Store) Establish(dir string) (types.Tree, error) {
	_, err := s.LookupTree(dir)
	if err == nil {
		return types.Tree{}, types.ErrTreeExists
	}
	if err != types.ErrTreeNotFound {
		return types.Tree{}, err
	}
	return s.ResolveOrCreateTree(dir)
}

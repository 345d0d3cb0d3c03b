// Tree cloner: bulk copy of all script and file associations from one tree
// to another, used when a new tree should inherit an existing tree's set.
package sqlite

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// CloneTree copies every script and file association from the source tree to
// the destination tree, preserving name, blob reference, and description.
// The source is never touched. The copy is atomic: both kinds land in one
// transaction or none do.
//
// Name collisions on the destination follow policy: PolicyFail (the default)
// aborts with ErrNameConflict before copying anything; PolicySkip copies the
// non-colliding rows and returns the skipped names, sorted and without
// duplicates.
func (s *Store) CloneTree(srcTreeID, dstTreeID, policy string) ([]string, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if policy == "" {
		policy = types.PolicyFail
	}
	if policy != types.PolicyFail && policy != types.PolicySkip {
		return nil, types.ErrClonePolicyUnknown
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var skipped []string
	for _, table := range []string{"tree_scripts", "tree_files"} {
		collisions, err := cloneCollisions(tx, table, srcTreeID, dstTreeID)
		if err != nil {
			return nil, err
		}
		if len(collisions) > 0 && policy == types.PolicyFail {
			return nil, fmt.Errorf("%w: %v", types.ErrNameConflict, collisions)
		}
		skipped = append(skipped, collisions...)

		// The NOT EXISTS guard excludes colliding names, which is a no-op
		// under the fail policy since any collision already aborted.
		_, err = tx.Exec(
			"INSERT INTO "+table+" (tree_id, blob_id, name, description)"+
				" SELECT ?, src.blob_id, src.name, src.description FROM "+table+" AS src"+
				" WHERE src.tree_id = ? AND NOT EXISTS ("+
				" SELECT 1 FROM "+table+" AS dst WHERE dst.tree_id = ? AND dst.name = src.name)",
			dstTreeID, srcTreeID, dstTreeID,
		)
		if err != nil {
			return nil, fmt.Errorf("copying %s rows: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing clone: %w", err)
	}

	// A name can collide as both a script and a file; report it once.
	slices.Sort(skipped)
	return slices.Compact(skipped), nil
}

// cloneCollisions returns the names present in both trees for one table.
func cloneCollisions(tx *sql.Tx, table, srcTreeID, dstTreeID string) ([]string, error) {
	rows, err := tx.Query(
		"SELECT src.name FROM "+table+" AS src"+
			" INNER JOIN "+table+" AS dst ON dst.name = src.name"+
			" WHERE src.tree_id = ? AND dst.tree_id = ?",
		srcTreeID, dstTreeID,
	)
	if err != nil {
		return nil, fmt.Errorf("checking %s collisions: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collision: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collisions: %w", err)
	}
	return names, nil
}

// Clone resolves both directories to trees, creating the destination tree if
// absent, and copies the source tree's associations into it. The conflict
// policy comes from the store configuration.
// Returns ErrTreeNotFound if srcDir is not a registered root.
func (s *Store) Clone(srcDir, dstDir string) ([]string, error) {
	src, err := s.LookupTree(srcDir)
	if err != nil {
		return nil, err
	}
	dst, err := s.ResolveOrCreateTree(dstDir)
	if err != nil {
		return nil, err
	}
	return s.CloneTree(src.TreeID, dst.TreeID, s.Config().CloneConflict)
}

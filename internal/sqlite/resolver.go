// Tree resolver: maps a working directory to the registered tree that
// governs it.
package sqlite

import (
	"path/filepath"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// ResolveDir determines which registered tree governs dir. The directory
// itself is checked first, then each ancestor rootward, so when nested
// roots are both registered the deepest (longest-prefix) match wins.
// Returns ErrNoTree when no registered root is an ancestor of dir.
// Read-only: performs no writes.
func (s *Store) ResolveDir(dir string) (types.Tree, error) {
	db, err := s.conn()
	if err != nil {
		return types.Tree{}, err
	}

	canonical, err := CanonicalRoot(dir)
	if err != nil {
		return types.Tree{}, err
	}

	for p := canonical; ; {
		tree, err := lookupTree(db, p)
		if err == nil {
			return tree, nil
		}
		if err != types.ErrTreeNotFound {
			return types.Tree{}, err
		}
		parent := filepath.Dir(p)
		if parent == p {
			return types.Tree{}, types.ErrNoTree
		}
		p = parent
	}
}

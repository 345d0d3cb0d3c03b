package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// seedTree fills a tree with a few script and file associations.
func seedTree(t *testing.T, s *Store, treeID string, scripts, files map[string]string) {
	t.Helper()
	for name, body := range scripts {
		require.NoError(t, s.PutAssociation(treeID, types.KindScript, name, []byte(body), "", true))
	}
	for name, body := range files {
		require.NoError(t, s.PutAssociation(treeID, types.KindFile, name, []byte(body), "", true))
	}
}

func countAssociations(t *testing.T, s *Store, treeID string) int {
	t.Helper()
	scripts, err := s.ListAssociations(treeID, types.KindScript)
	require.NoError(t, err)
	files, err := s.ListAssociations(treeID, types.KindFile)
	require.NoError(t, err)
	return len(scripts) + len(files)
}

func TestCloneTree(t *testing.T) {
	t.Run("copies both kinds preserving name, blob, and description", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")

		require.NoError(t, s.PutAssociation(src, types.KindScript, "build", []byte("make"), "runs make", true))
		require.NoError(t, s.PutAssociation(src, types.KindFile, "env", []byte("KEY=1"), "local env", true))

		skipped, err := s.CloneTree(src, dst, types.PolicyFail)
		require.NoError(t, err)
		assert.Empty(t, skipped)

		assoc, err := s.GetAssociation(dst, types.KindScript, "build")
		require.NoError(t, err)
		assert.Equal(t, "runs make", assoc.Description)
		got, err := s.BlobContent(assoc.BlobID)
		require.NoError(t, err)
		assert.Equal(t, []byte("make"), got)

		file, err := s.GetAssociation(dst, types.KindFile, "env")
		require.NoError(t, err)
		assert.Equal(t, "local env", file.Description)
	})

	t.Run("source rows are untouched", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")
		seedTree(t, s, src, map[string]string{"a": "1", "b": "2"}, map[string]string{"f": "3"})

		_, err := s.CloneTree(src, dst, types.PolicyFail)
		require.NoError(t, err)

		assert.Equal(t, 3, countAssociations(t, s, src))
	})

	t.Run("fail policy aborts atomically on any collision", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")
		seedTree(t, s, src,
			map[string]string{"a": "1", "b": "2", "c": "3"},
			map[string]string{"f1": "4", "f2": "5"})

		// One colliding file name on the destination.
		require.NoError(t, s.PutAssociation(dst, types.KindFile, "f2", []byte("mine"), "", true))

		_, err := s.CloneTree(src, dst, types.PolicyFail)
		assert.ErrorIs(t, err, types.ErrNameConflict)

		// Nothing copied: destination keeps exactly its one prior row.
		assert.Equal(t, 1, countAssociations(t, s, dst))
		got, err := s.ContentByName(dst, types.KindFile, "f2")
		require.NoError(t, err)
		assert.Equal(t, []byte("mine"), got)
	})

	t.Run("skip policy copies the rest and reports skipped names", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")
		seedTree(t, s, src,
			map[string]string{"a": "1", "b": "2"},
			map[string]string{"f": "3"})

		require.NoError(t, s.PutAssociation(dst, types.KindScript, "b", []byte("mine"), "", true))

		skipped, err := s.CloneTree(src, dst, types.PolicySkip)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, skipped)

		// Destination keeps its own b, gains a and f.
		got, err := s.ContentByName(dst, types.KindScript, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("mine"), got)
		assert.Equal(t, 3, countAssociations(t, s, dst))
	})

	t.Run("name colliding as both script and file is reported once", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")
		seedTree(t, s, src,
			map[string]string{"env": "theirs", "build": "make"},
			map[string]string{"env": "theirs too"})
		seedTree(t, s, dst,
			map[string]string{"env": "mine"},
			map[string]string{"env": "mine too"})

		skipped, err := s.CloneTree(src, dst, types.PolicySkip)
		require.NoError(t, err)
		assert.Equal(t, []string{"env"}, skipped)

		// The non-colliding script still lands.
		got, err := s.ContentByName(dst, types.KindScript, "build")
		require.NoError(t, err)
		assert.Equal(t, []byte("make"), got)
	})

	t.Run("cloning into an empty tree copies everything", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")
		seedTree(t, s, src,
			map[string]string{"a": "1", "b": "2", "c": "3"},
			map[string]string{"f1": "4", "f2": "5"})

		skipped, err := s.CloneTree(src, dst, types.PolicyFail)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, 5, countAssociations(t, s, dst))
	})

	t.Run("unknown policy rejected", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		dst := addTree(t, s, "/dst")

		_, err := s.CloneTree(src, dst, "merge")
		assert.ErrorIs(t, err, types.ErrClonePolicyUnknown)
	})
}

func TestClone(t *testing.T) {
	t.Run("creates the destination tree if absent", func(t *testing.T) {
		s := newTestStore(t)
		src := addTree(t, s, "/src")
		seedTree(t, s, src, map[string]string{"build": "make"}, nil)

		skipped, err := s.Clone("/src", "/brand-new")
		require.NoError(t, err)
		assert.Empty(t, skipped)

		dst, err := s.LookupTree("/brand-new")
		require.NoError(t, err)
		got, err := s.ContentByName(dst.TreeID, types.KindScript, "build")
		require.NoError(t, err)
		assert.Equal(t, []byte("make"), got)
	})

	t.Run("unregistered source returns ErrTreeNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Clone("/nowhere", "/dst")
		assert.ErrorIs(t, err, types.ErrTreeNotFound)
	})
}

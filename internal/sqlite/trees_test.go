package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

func TestCanonicalRoot(t *testing.T) {
	t.Run("cleans redundant path elements", func(t *testing.T) {
		got, err := CanonicalRoot("/repo//sub/../sub/")
		require.NoError(t, err)
		assert.Equal(t, "/repo/sub", got)
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		got, err := CanonicalRoot("some/dir")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("symlinks resolve to their target", func(t *testing.T) {
		base := t.TempDir()
		target := filepath.Join(base, "target")
		require.NoError(t, os.Mkdir(target, 0o755))
		link := filepath.Join(base, "link")
		require.NoError(t, os.Symlink(target, link))

		gotLink, err := CanonicalRoot(link)
		require.NoError(t, err)
		gotTarget, err := CanonicalRoot(target)
		require.NoError(t, err)
		assert.Equal(t, gotTarget, gotLink)
	})
}

func TestResolveOrCreateTree(t *testing.T) {
	t.Run("creates a tree on first use", func(t *testing.T) {
		s := newTestStore(t)

		tree, err := s.ResolveOrCreateTree("/repo")
		require.NoError(t, err)
		assert.NotEmpty(t, tree.TreeID)
		assert.Equal(t, "/repo", tree.Root)
		assert.False(t, tree.CreatedAt.IsZero())
	})

	t.Run("returns the existing tree on repeat use", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.ResolveOrCreateTree("/repo")
		require.NoError(t, err)
		second, err := s.ResolveOrCreateTree("/repo")
		require.NoError(t, err)
		assert.Equal(t, first.TreeID, second.TreeID)
	})

	t.Run("different spellings of one location resolve to one tree", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.ResolveOrCreateTree("/repo/sub")
		require.NoError(t, err)
		second, err := s.ResolveOrCreateTree("/repo//sub/../sub")
		require.NoError(t, err)
		assert.Equal(t, first.TreeID, second.TreeID)
	})
}

func TestLookupTree(t *testing.T) {
	t.Run("read-only lookup does not create", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.LookupTree("/repo")
		assert.ErrorIs(t, err, types.ErrTreeNotFound)

		trees, err := s.Trees()
		require.NoError(t, err)
		assert.Empty(t, trees)
	})

	t.Run("finds a registered root", func(t *testing.T) {
		s := newTestStore(t)

		created, err := s.ResolveOrCreateTree("/repo")
		require.NoError(t, err)

		found, err := s.LookupTree("/repo")
		require.NoError(t, err)
		assert.Equal(t, created.TreeID, found.TreeID)
	})
}

func TestTrees(t *testing.T) {
	s := newTestStore(t)

	for _, root := range []string{"/zebra", "/alpha", "/middle"} {
		_, err := s.ResolveOrCreateTree(root)
		require.NoError(t, err)
	}

	trees, err := s.Trees()
	require.NoError(t, err)
	require.Len(t, trees, 3)
	assert.Equal(t, "/alpha", trees[0].Root)
	assert.Equal(t, "/middle", trees[1].Root)
	assert.Equal(t, "/zebra", trees[2].Root)
}

func TestRemoveTree(t *testing.T) {
	t.Run("cascades to associations", func(t *testing.T) {
		s := newTestStore(t)

		tree, err := s.Add("/repo", types.KindScript, "build", []byte("make"), "")
		require.NoError(t, err)
		_, err = s.Add("/repo", types.KindFile, "notes", []byte("text"), "")
		require.NoError(t, err)

		require.NoError(t, s.RemoveTree(tree.TreeID))

		_, err = s.LookupTree("/repo")
		assert.ErrorIs(t, err, types.ErrTreeNotFound)
		_, err = s.List("/repo", types.KindScript)
		assert.ErrorIs(t, err, types.ErrNoTree)
	})

	t.Run("unknown tree returns ErrTreeNotFound", func(t *testing.T) {
		s := newTestStore(t)
		assert.ErrorIs(t, s.RemoveTree("no-such-tree"), types.ErrTreeNotFound)
	})

	t.Run("blobs survive tree removal", func(t *testing.T) {
		s := newTestStore(t)

		tree, err := s.Add("/repo", types.KindScript, "build", []byte("make"), "")
		require.NoError(t, err)
		assocs, err := s.ListAssociations(tree.TreeID, types.KindScript)
		require.NoError(t, err)
		require.Len(t, assocs, 1)

		require.NoError(t, s.RemoveTree(tree.TreeID))

		got, err := s.BlobContent(assocs[0].BlobID)
		require.NoError(t, err)
		assert.Equal(t, []byte("make"), got)
	})
}

func TestEstablish(t *testing.T) {
	t.Run("registers a new root", func(t *testing.T) {
		s := newTestStore(t)

		tree, err := s.Establish("/repo")
		require.NoError(t, err)
		assert.Equal(t, "/repo", tree.Root)
	})

	t.Run("rejects an already established root", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Establish("/repo")
		require.NoError(t, err)
		_, err = s.Establish("/repo")
		assert.ErrorIs(t, err, types.ErrTreeExists)
	})
}

package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

func TestStoreBlobDedup(t *testing.T) {
	t.Run("identical content yields the same blob ID", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.StoreBlob([]byte("echo hi"))
		require.NoError(t, err)
		second, err := s.StoreBlob([]byte("echo hi"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different content yields distinct blob IDs", func(t *testing.T) {
		s := newTestStore(t)

		first, err := s.StoreBlob([]byte("echo hi"))
		require.NoError(t, err)
		second, err := s.StoreBlob([]byte("echo bye"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("content round-trips", func(t *testing.T) {
		s := newTestStore(t)

		body := []byte{0x00, 0xff, 0x7f, '\n'}
		id, err := s.StoreBlob(body)
		require.NoError(t, err)

		got, err := s.BlobContent(id)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("unknown blob ID returns ErrNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.BlobContent("no-such-blob")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("dedup across association kinds and trees", func(t *testing.T) {
		s := newTestStore(t)

		body := []byte("shared payload")
		_, err := s.Add("/one", types.KindScript, "s", body, "")
		require.NoError(t, err)
		_, err = s.Add("/two", types.KindFile, "f", body, "")
		require.NoError(t, err)

		scripts, err := s.List("/one", types.KindScript)
		require.NoError(t, err)
		files, err := s.List("/two", types.KindFile)
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		require.Len(t, files, 1)
		assert.Equal(t, scripts[0].BlobID, files[0].BlobID)
	})
}

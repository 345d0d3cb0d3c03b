// Content-addressed blob storage. Blobs are immutable, deduplicated by
// exact content equality, and never deleted by normal operations.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/otkeep/pkg/types"
)

// storeBlob persists content and returns its blob ID, reusing the existing
// row when byte-identical content is already stored. The insert relies on
// the UNIQUE constraint on content, so two concurrent invocations storing
// identical novel content converge on a single row.
func storeBlob(tx *sql.Tx, content []byte) (string, error) {
	id := generateUUID()
	if _, err := tx.Exec(
		"INSERT INTO blobs (blob_id, content) VALUES (?, ?) ON CONFLICT(content) DO NOTHING",
		id, content,
	); err != nil {
		return "", fmt.Errorf("inserting blob: %w", err)
	}

	// The ON CONFLICT clause may have discarded the insert; read back the
	// winning row's ID either way.
	var stored string
	if err := tx.QueryRow(
		"SELECT blob_id FROM blobs WHERE content = ?", content,
	).Scan(&stored); err != nil {
		return "", fmt.Errorf("reading blob ID: %w", err)
	}
	return stored, nil
}

// StoreBlob persists content in its own transaction and returns the blob ID.
func (s *Store) StoreBlob(content []byte) (string, error) {
	db, err := s.conn()
	if err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := storeBlob(tx, content)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing blob: %w", err)
	}
	return id, nil
}

// BlobContent returns the raw content of a blob.
// Returns ErrNotFound if no blob exists with that ID.
func (s *Store) BlobContent(blobID string) ([]byte, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var content []byte
	err = db.QueryRow(
		"SELECT content FROM blobs WHERE blob_id = ?", blobID,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", blobID, err)
	}
	return content, nil
}

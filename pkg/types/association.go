package types

import (
	"errors"
	"time"
)

// Kind distinguishes the two association tables. Scripts are executable entry
// points looked up by run; files are inert payloads saved for later restore.
type Kind string

// Association kinds.
const (
	KindScript Kind = "script"
	KindFile   Kind = "file"
)

// ErrInvalidKind is returned when a Kind is neither script nor file.
var ErrInvalidKind = errors.New("invalid association kind")

// Valid reports whether k is a known association kind.
func (k Kind) Valid() bool {
	return k == KindScript || k == KindFile
}

// Tree is a registered working-tree root. Root is the canonical absolute
// path of the directory and is immutable once the tree is created.
type Tree struct {
	TreeID    string    `json:"tree_id"`
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"created_at"`
}

// Association binds a named blob to a tree, as either a script or a file.
// Within one tree, Name is unique per kind.
type Association struct {
	TreeID      string `json:"tree_id"`
	BlobID      string `json:"blob_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

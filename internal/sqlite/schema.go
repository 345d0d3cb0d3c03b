// Schema DDL for the otkeep database.
package sqlite

// The database persists across invocations, so all DDL is IF NOT EXISTS.
const (
	createBlobs = `CREATE TABLE IF NOT EXISTS blobs (
    blob_id TEXT PRIMARY KEY,
    content BLOB NOT NULL UNIQUE
);`

	createTrees = `CREATE TABLE IF NOT EXISTS trees (
    tree_id TEXT PRIMARY KEY,
    root TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);`

	createTreeScripts = `CREATE TABLE IF NOT EXISTS tree_scripts (
    tree_id TEXT NOT NULL,
    blob_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (tree_id, name),
    FOREIGN KEY (tree_id) REFERENCES trees(tree_id),
    FOREIGN KEY (blob_id) REFERENCES blobs(blob_id)
);`

	createTreeFiles = `CREATE TABLE IF NOT EXISTS tree_files (
    tree_id TEXT NOT NULL,
    blob_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (tree_id, name),
    FOREIGN KEY (tree_id) REFERENCES trees(tree_id),
    FOREIGN KEY (blob_id) REFERENCES blobs(blob_id)
);`
)

// Index DDL for common queries.
const (
	idxTreeScriptsBlob = `CREATE INDEX IF NOT EXISTS idx_tree_scripts_blob ON tree_scripts(blob_id);`
	idxTreeFilesBlob   = `CREATE INDEX IF NOT EXISTS idx_tree_files_blob ON tree_files(blob_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createBlobs,
	createTrees,
	createTreeScripts,
	createTreeFiles,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTreeScriptsBlob,
	idxTreeFilesBlob,
}

package types

import "errors"

// Clone conflict policies. PolicyFail aborts the clone when the destination
// tree already has an association with a colliding name; PolicySkip copies
// the non-colliding rows and reports the skipped names.
const (
	PolicyFail = "fail"
	PolicySkip = "skip"
)

// Config holds the settings for opening a Store.
type Config struct {
	// DataDir is the directory holding otkeep.db. Created if absent.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OverwriteOnAdd controls whether add replaces an existing association
	// under the same name. Defaults to true.
	OverwriteOnAdd bool `json:"overwrite_on_add" yaml:"overwrite_on_add"`

	// CloneConflict selects the clone conflict policy: "fail" or "skip".
	// Empty means "fail".
	CloneConflict string `json:"clone_conflict" yaml:"clone_conflict"`
}

// Config validation errors.
var (
	ErrDataDirEmpty       = errors.New("data dir must not be empty")
	ErrClonePolicyUnknown = errors.New("unknown clone conflict policy")
)

// DefaultConfig returns a Config with the documented defaults applied.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		OverwriteOnAdd: true,
		CloneConflict:  PolicyFail,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	switch c.CloneConflict {
	case "", PolicyFail, PolicySkip:
		return nil
	default:
		return ErrClonePolicyUnknown
	}
}

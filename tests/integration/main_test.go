// Package integration provides CLI integration tests for otkeep. The binary
// is built once in TestMain and driven as a subprocess with isolated config
// and data directories.
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// otkeepBin is the path to the built otkeep binary.
	otkeepBin string
	// buildErr captures any build error.
	buildErr error
)

// findProjectRoot finds the project root by walking up and looking for go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func TestMain(m *testing.M) {
	root, err := findProjectRoot()
	if err != nil {
		buildErr = fmt.Errorf("find project root: %w", err)
		os.Exit(m.Run())
	}

	binDir, err := os.MkdirTemp("", "otkeep-it-bin-")
	if err != nil {
		buildErr = fmt.Errorf("create bin dir: %w", err)
		os.Exit(m.Run())
	}
	defer os.RemoveAll(binDir)

	otkeepBin = filepath.Join(binDir, "otkeep")
	build := exec.Command("go", "build", "-o", otkeepBin, "./cmd/otkeep")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		buildErr = fmt.Errorf("build otkeep: %w: %s", err, out)
	}

	os.Exit(m.Run())
}

// requireBinary skips nothing: a broken build fails every test loudly.
func requireBinary(t *testing.T) {
	t.Helper()
	if buildErr != nil {
		t.Fatalf("otkeep binary unavailable: %v", buildErr)
	}
}

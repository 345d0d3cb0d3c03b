package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// env holds the isolated directories one test case runs against.
type env struct {
	configDir string
	dataDir   string
}

// newEnv creates isolated config and data directories for one test.
func newEnv(t *testing.T) *env {
	t.Helper()
	base := t.TempDir()
	return &env{
		configDir: filepath.Join(base, "config"),
		dataDir:   filepath.Join(base, "data"),
	}
}

// result captures one otkeep invocation.
type result struct {
	stdout   string
	stderr   string
	exitCode int
}

// run invokes otkeep in dir with the given arguments against the test env.
func (e *env) run(t *testing.T, dir string, args ...string) result {
	t.Helper()
	requireBinary(t)

	cmd := exec.Command(otkeepBin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"OTKEEP_CONFIG_DIR="+e.configDir,
		"OTKEEP_DATA_DIR="+e.dataDir,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("run otkeep %v: %v", args, err)
	}

	return result{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		exitCode: code,
	}
}

// runOK invokes otkeep and fails the test on a nonzero exit.
func (e *env) runOK(t *testing.T, dir string, args ...string) result {
	t.Helper()
	res := e.run(t, dir, args...)
	require.Zero(t, res.exitCode,
		"otkeep %v failed\nstdout: %s\nstderr: %s", args, res.stdout, res.stderr)
	return res
}

// mkTree creates a directory tree under the test temp dir and returns its root.
func mkTree(t *testing.T, subdirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, sub := range subdirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, sub), 0o755))
	}
	return root
}

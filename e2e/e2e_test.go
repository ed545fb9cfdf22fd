//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var imprintBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "imprint-e2e-*")
	if err != nil {
		panic(err)
	}

	imprintBinary = filepath.Join(tmpDir, "imprint")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", imprintBinary, "./cmd/imprint")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build imprint binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(imprintBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	// Every script drives a fake container CLI that records its arguments.
	env.Setenv("PLUGIN_DOCKER", filepath.Join(env.WorkDir, "docker.sh"))
	env.Setenv("DOCKER_LOG", filepath.Join(env.WorkDir, "calls.log"))

	return nil
}

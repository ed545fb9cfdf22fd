package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		env          map[string]string
		args         []string
		expectedExit int
	}{
		{
			name:         "Fingerprint with valid config",
			env:          map[string]string{"PLUGIN_REPO": "acme/app", "PLUGIN_FILES": "input.txt"},
			args:         []string{"imprint", "fingerprint"},
			expectedExit: 0,
		},
		{
			name:         "Plan with commit fallback",
			env:          map[string]string{"PLUGIN_REPO": "acme/app", "DRONE_COMMIT_AFTER": "deadbeef"},
			args:         []string{"imprint", "plan"},
			expectedExit: 0,
		},
		{
			name:         "Missing repository",
			env:          map[string]string{"PLUGIN_FILES": "input.txt"},
			args:         []string{"imprint", "fingerprint"},
			expectedExit: 1,
		},
		{
			name:         "Missing input file",
			env:          map[string]string{"PLUGIN_REPO": "acme/app", "PLUGIN_FILES": "missing.txt"},
			args:         []string{"imprint", "fingerprint"},
			expectedExit: 1,
		},
		{
			name:         "Version",
			args:         []string{"imprint", "version"},
			expectedExit: 0,
		},
		{
			name:         "Unknown command",
			args:         []string{"imprint", "deploy"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "input.txt"), []byte("content"), 0o600))
			t.Chdir(tmpDir)

			for _, k := range []string{"PLUGIN_REPO", "PLUGIN_FILES", "DRONE_COMMIT_AFTER", "DRONE_COMMIT_SHA", "PLUGIN_FORCETAG"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}

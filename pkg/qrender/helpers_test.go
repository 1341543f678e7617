package qrender

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeFakeRenderer writes a shell script that echoes its arguments, standing
// in for the renderer binary. Its last line is "pid <pid>".
func writeFakeRenderer(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake renderer is a POSIX shell script")
	}
	path := filepath.Join(dir, "renderer")
	script := "#!/bin/sh\necho \"rendering $*\"\necho \"to stderr\" 1>&2\necho \"pid $$\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake renderer: %v", err)
	}
	return path
}

// writeDocument creates an empty saved document and returns its path.
func writeDocument(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scene.blend")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}
	return path
}

// waitForLog polls path until it contains want; the renderer runs detached.
func waitForLog(t *testing.T, path, want string) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, _ := os.ReadFile(path)
		if strings.Contains(string(data), want) {
			return string(data)
		}
		if time.Now().After(deadline) {
			t.Fatalf("log %s never contained %q, got %q", path, want, data)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

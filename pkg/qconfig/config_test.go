package qconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/quatton/qrender/pkg/qrender"
)

func TestLoad_ProjectConfig(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	projectConfig := `
executable: /opt/blender/blender
outputDir: out/frames
mode: internal
animate: false
frame: 42
`
	os.WriteFile("qrender.yaml", []byte(projectConfig), 0644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Executable != "/opt/blender/blender" {
		t.Errorf("Expected executable /opt/blender/blender, got %s", cfg.Executable)
	}
	if cfg.OutputDir != "out/frames" {
		t.Errorf("Expected outputDir out/frames, got %s", cfg.OutputDir)
	}

	req := cfg.Request("/proj/scene.blend")
	if req.Mode != qrender.ModeInternal || req.Animate || req.Frame != 42 {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestLoad_LocalOverride(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	os.WriteFile("qrender.yaml", []byte("executable: /opt/blender/blender\nmode: external\n"), 0644)

	os.MkdirAll(ConfigRoot, 0755)
	os.WriteFile(filepath.Join(ConfigRoot, "config.yaml"), []byte("executable: /home/me/blender\n"), 0644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Local override should win
	if cfg.Executable != "/home/me/blender" {
		t.Errorf("Expected executable /home/me/blender (from local override), got %s", cfg.Executable)
	}
	if cfg.Mode != "external" {
		t.Errorf("Expected mode external (from project config), got %s", cfg.Mode)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Executable != DefaultExecutable(runtime.GOOS) {
		t.Errorf("Expected default executable %s, got %s", DefaultExecutable(runtime.GOOS), cfg.Executable)
	}
	if cfg.Mode != "external" || !cfg.Animate {
		t.Errorf("Expected external animation by default, got mode=%s animate=%v", cfg.Mode, cfg.Animate)
	}
	if cfg.Artifacts.Bucket != "renders" {
		t.Errorf("Expected default bucket renders, got %s", cfg.Artifacts.Bucket)
	}
}

func TestLoad_Env(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	t.Setenv("QRENDER_EXECUTABLE", "/env/blender")
	t.Setenv("QRENDER_OUTPUTDIR", "/env/renders")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Executable != "/env/blender" {
		t.Errorf("Expected executable from env, got %s", cfg.Executable)
	}
	if cfg.OutputDir != "/env/renders" {
		t.Errorf("Expected outputDir from env, got %s", cfg.OutputDir)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	customPath := filepath.Join(tempDir, "custom-config.yaml")
	os.WriteFile(customPath, []byte("executable: /custom/blender\nartifacts:\n  endpoint: localhost:9000\n  bucket: frames\n"), 0644)

	cfg, err := Load(customPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Executable != "/custom/blender" {
		t.Errorf("Expected executable /custom/blender, got %s", cfg.Executable)
	}
	if cfg.Artifacts.Endpoint != "localhost:9000" || cfg.Artifacts.Bucket != "frames" {
		t.Errorf("unexpected artifacts config %+v", cfg.Artifacts)
	}
	if cfg.ConfigFileUsed() != customPath {
		t.Errorf("Expected config file %s, got %s", customPath, cfg.ConfigFileUsed())
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	tempDir := t.TempDir()
	customPath := filepath.Join(tempDir, "bad.yaml")
	os.WriteFile(customPath, []byte("mode: cloud\n"), 0644)

	if _, err := Load(customPath); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

package qrender

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quatton/qrender/pkg/qrender/qerr"
)

const (
	LogFileName          = "render_log.txt"
	OutputPrefix         = "render_"
	FramePlaceholder     = "#####"
	DefaultOutputDirName = "renders"
)

// Resolve validates req and prepares its output directory.
//
// Checks run in a fixed order: the document must be saved, then (external
// mode only) the renderer executable must exist, and only then is the output
// directory created. A request that fails either check leaves the
// filesystem untouched.
func Resolve(req Request) (ValidatedRequest, error) {
	if strings.TrimSpace(req.DocumentPath) == "" {
		return ValidatedRequest{}, qerr.Newf(qerr.CodeDocumentNotSaved,
			"please save your document before rendering")
	}

	doc, err := filepath.Abs(req.DocumentPath)
	if err != nil {
		return ValidatedRequest{}, qerr.New(qerr.CodeDocumentNotSaved,
			fmt.Errorf("resolving document path %s: %w", req.DocumentPath, err))
	}

	var exe string
	if req.Mode == ModeExternal {
		if exe, err = resolveExecutable(req.ExecutablePath); err != nil {
			return ValidatedRequest{}, err
		}
	}

	outDir := req.OutputDirectory
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(doc), DefaultOutputDirName)
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return ValidatedRequest{}, qerr.New(qerr.CodeOutputUnavailable, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ValidatedRequest{}, qerr.New(qerr.CodeOutputUnavailable,
			fmt.Errorf("failed to create output directory: %w", err))
	}

	return ValidatedRequest{
		DocumentPath:    doc,
		OutputDirectory: outDir,
		OutputPattern:   OutputPattern(outDir),
		LogPath:         filepath.Join(outDir, LogFileName),
		ExecutablePath:  exe,
		Mode:            req.Mode,
		Animate:         req.Animate,
		Frame:           req.Frame,
		SceneOutput:     req.SceneOutput,
	}, nil
}

// resolveExecutable checks existence only; executability is left to the OS
// at spawn time.
func resolveExecutable(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", qerr.Newf(qerr.CodeExecutableNotFound, "no renderer executable configured")
	}
	if _, err := os.Stat(path); err != nil {
		return "", qerr.Newf(qerr.CodeExecutableNotFound, "renderer executable not found at: %s", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", qerr.New(qerr.CodeExecutableNotFound, err)
	}
	return abs, nil
}

// OutputPattern is the per-frame file name pattern inside dir. The renderer
// expands the placeholder itself.
func OutputPattern(dir string) string {
	return filepath.Join(dir, OutputPrefix+FramePlaceholder)
}

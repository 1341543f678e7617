package qart

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quatton/qrender/pkg/qrender"
)

// PublishOptions control how an output directory is published.
type PublishOptions struct {
	Name       string        // render set name; defaults to the directory name
	Replace    bool          // delete previously published files under the same name first
	PresignTTL time.Duration // when > 0, fill Artifact.URL
}

// RenderOutputs lists the files a render wrote into dir: every render_* frame
// and the render log, sorted by name.
func RenderOutputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), qrender.OutputPrefix) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Publish uploads the render outputs of dir to store.
func Publish(ctx context.Context, store Store, dir string, opts PublishOptions) ([]*Artifact, error) {
	name := opts.Name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		name = filepath.Base(abs)
	}
	if name == "" || name == "." || name == string(filepath.Separator) || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	files, err := RenderOutputs(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNothingToPublish, dir)
	}

	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensuring bucket: %w", err)
	}
	if opts.Replace {
		if err := store.DeletePrefix(ctx, RenderPrefix(name)); err != nil {
			return nil, fmt.Errorf("removing previous artifacts: %w", err)
		}
	}

	artifacts := make([]*Artifact, 0, len(files))
	for _, filename := range files {
		key := RenderArtifactKey(name, filename)
		a, err := uploadFile(ctx, store, filepath.Join(dir, filename), key)
		if err != nil {
			return artifacts, fmt.Errorf("uploading %s: %w", filename, err)
		}
		if opts.PresignTTL > 0 {
			if a.URL, err = store.GetPresignedURL(ctx, key, opts.PresignTTL); err != nil {
				return artifacts, fmt.Errorf("presigning %s: %w", filename, err)
			}
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

func uploadFile(ctx context.Context, store Store, path, key string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if filepath.Base(path) == qrender.LogFileName {
		contentType = "text/plain"
	}

	return store.Upload(ctx, key, f, stat.Size(), contentType, map[string]string{
		"source": filepath.Base(path),
	})
}

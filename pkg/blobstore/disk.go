package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Disk stores blobs as files under a root directory. Refs are slash-separated
// paths relative to the root.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve blob root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Disk{root: abs}, nil
}

func (d *Disk) Save(ctx context.Context, content io.Reader, suggestedName string) (Ref, error) {
	dir, ext := splitSuggestedName(suggestedName)
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	rel := name
	if dir != "" {
		rel = dir + "/" + name
	}

	abs := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(abs)
		return "", fmt.Errorf("write blob file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("close blob file: %w", err)
	}

	return Ref(rel), nil
}

func (d *Disk) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	abs, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", ref, err)
	}
	return f, nil
}

func (d *Disk) Delete(ctx context.Context, ref Ref) error {
	abs, err := d.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete blob %s: %w", ref, err)
	}

	d.pruneEmptyDirs(filepath.Dir(abs))
	return nil
}

// resolve maps a ref to an absolute path and rejects refs that would escape
// the root.
func (d *Disk) resolve(ref Ref) (string, error) {
	rel := filepath.FromSlash(string(ref))
	if rel == "" || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid blob ref %q", ref)
	}

	abs := filepath.Join(d.root, rel)
	if !strings.HasPrefix(abs, d.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob ref %q", ref)
	}
	return abs, nil
}

func (d *Disk) pruneEmptyDirs(dir string) {
	for dir != d.root && strings.HasPrefix(dir, d.root) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

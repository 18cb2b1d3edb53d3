// Package blobstore persists attachment bytes outside the relational
// database and hands back opaque references to them.
package blobstore

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// Ref is an opaque handle to stored bytes. Callers never inspect its format.
type Ref string

func (r Ref) String() string { return string(r) }

type Store interface {
	// Save persists the content and returns the handle to retrieve it later.
	// suggestedName is only a naming hint; the stored name is always made safe
	// and unique.
	Save(ctx context.Context, content io.Reader, suggestedName string) (Ref, error)
	Open(ctx context.Context, ref Ref) (io.ReadCloser, error)
	// Delete removes the stored bytes. Deleting a ref that no longer exists
	// is not an error.
	Delete(ctx context.Context, ref Ref) error
}

// SniffContentType detects the MIME type from the first bytes of content and
// returns a reader that replays everything read so far.
func SniffContentType(content io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}

	head = head[:n]
	return http.DetectContentType(head), io.MultiReader(strings.NewReader(string(head)), content), nil
}

// splitSuggestedName separates a naming hint into a cleaned directory prefix
// and a safe lowercase extension. Path traversal segments are dropped.
func splitSuggestedName(name string) (dir string, ext string) {
	name = strings.ReplaceAll(name, "\\", "/")
	segs := strings.Split(name, "/")

	cleanDirs := make([]string, 0, len(segs)-1)
	for _, s := range segs[:len(segs)-1] {
		s = cleanSegment(s)
		if s == "" {
			continue
		}
		cleanDirs = append(cleanDirs, s)
	}

	return strings.Join(cleanDirs, "/"), sanitizeExtension(filepath.Ext(segs[len(segs)-1]))
}

func cleanSegment(s string) string {
	if s == "." || s == ".." {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, s)
	if strings.Trim(cleaned, "_") == "" {
		return ""
	}
	return cleaned
}

func sanitizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	if len(ext) < 2 || len(ext) > 10 || ext[0] != '.' {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

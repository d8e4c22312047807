// Package source reads raw text units from a note corpus. The current
// implementation walks a directory of markdown files and splits YAML
// frontmatter from the body, but the orchestrator only depends on the
// Reader interface and the Unit shape.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoSourceDir is returned when the configured source directory does
// not exist or cannot be read.
var ErrNoSourceDir = errors.New("source directory not readable")

// Unit is one bounded chunk of note text handed to the extractor,
// together with the metadata that gives the model context about it.
type Unit struct {
	// ID identifies the unit across runs; for file-backed corpora it is
	// the path relative to the corpus root.
	ID string

	// Path is the absolute path of the backing file.
	Path string

	// Text is the note body with any frontmatter stripped.
	Text string

	// Meta holds the parsed YAML frontmatter, if any.
	Meta map[string]any

	// ModTime is the last modification time of the backing file.
	ModTime time.Time
}

// Reader yields all currently available source units.
type Reader interface {
	Units(ctx context.Context) ([]Unit, error)
}

// DirReader reads every markdown file under a root directory.
type DirReader struct {
	root string
}

// NewDirReader creates a DirReader rooted at dir.
func NewDirReader(dir string) *DirReader {
	return &DirReader{root: dir}
}

// Units walks the corpus recursively and returns one Unit per markdown
// file. A file that cannot be read aborts the walk: an unreadable corpus
// is a configuration problem, not a per-item failure.
func (r *DirReader) Units(ctx context.Context) ([]Unit, error) {
	if _, err := os.Stat(r.root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoSourceDir, r.root, err)
	}

	var units []Unit
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			rel = path
		}

		meta, body := SplitFrontmatter(string(stripBOM(raw)))
		units = append(units, Unit{
			ID:      filepath.ToSlash(rel),
			Path:    path,
			Text:    body,
			Meta:    meta,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// SplitFrontmatter separates a leading YAML frontmatter block from the
// markdown body. Content without frontmatter, or with frontmatter that is
// not valid YAML, is returned unchanged with nil metadata.
func SplitFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---") {
		return nil, content
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, content
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, content
	}
	return meta, strings.TrimSpace(parts[2])
}

// stripBOM drops a UTF-8 byte order mark some editors prepend.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

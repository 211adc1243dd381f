// Package corpus builds the index from text files on the local filesystem.
// Directories are walked recursively and every .txt or .text file becomes one
// location; positions are assigned in document order within each file.
package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/text"
	"github.com/dkarwin/scour/pkg/work"
)

// textPattern matches text files at any depth.
const textPattern = "**/*.{txt,text}"

// Builder indexes filesystem text files into the shared index. With a pool
// attached, each file is one task building a private index that is merged
// under the write lock; without one, files are indexed inline.
type Builder struct {
	idx   *index.SafeInvertedIndex
	queue *work.Queue // nil in single-threaded mode
}

// New creates a corpus builder. queue may be nil.
func New(idx *index.SafeInvertedIndex, queue *work.Queue) *Builder {
	return &Builder{idx: idx, queue: queue}
}

// Build indexes root. A directory is searched recursively for text files; a
// plain file is indexed directly regardless of its extension. When a pool is
// attached, Build waits for all file tasks before returning.
func (b *Builder) Build(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("corpus: stat %s: %w", root, err)
	}

	var files []string

	if info.IsDir() {
		files, err = findTextFiles(root)
		if err != nil {
			return err
		}
	} else {
		files = []string{root}
	}

	for _, path := range files {
		if b.queue == nil {
			b.indexFile(path)
			continue
		}

		p := path
		b.queue.Execute(func() { b.indexFile(p) })
	}

	if b.queue != nil {
		b.queue.Finish()
	}

	return nil
}

// findTextFiles returns the matching files under root in sorted order, so
// single-threaded builds are deterministic end to end.
func findTextFiles(root string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(root, textPattern))
	if err != nil {
		return nil, fmt.Errorf("corpus: glob %s: %w", root, err)
	}

	files := matches[:0]

	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}

		files = append(files, m)
	}

	sort.Strings(files)

	return files, nil
}

// indexFile builds a private index for one file and merges it. Read failures
// are logged; the shared index is never partially mutated.
func (b *Builder) indexFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("corpus: read failed", "path", path, "error", err)
		return
	}

	words := text.ParseAndStem(string(data))

	local := index.New()
	local.AddWords(words, path)

	b.idx.AddAll(local)

	slog.Debug("corpus: file indexed", "path", path, "words", len(words))
}

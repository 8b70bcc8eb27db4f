package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/edgeboard/internal/domain/table"
)

// FileSource reads datasets from a directory tree. Ids are slash-separated
// paths below the root.
type FileSource struct {
	root string
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{root: dir}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context, id string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, terminal(id, err)
	}
	rel := filepath.FromSlash(id)
	if !filepath.IsLocal(rel) {
		return nil, terminal(id, fmt.Errorf("%w: %q", ErrInvalidDataset, id))
	}

	f, err := os.Open(filepath.Join(s.root, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, terminal(id, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if err != nil {
		return nil, retryable(id, fmt.Errorf("%w: %v", ErrFetch, err))
	}
	defer func() { _ = f.Close() }()

	t, err := Decode(id, f)
	if err != nil {
		return nil, terminal(id, err)
	}
	return t, nil
}

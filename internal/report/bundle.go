package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
)

// File is a named document placed in a bundle.
type File struct {
	Name    string
	Content []byte
}

// WriteZip writes files into a zip archive on w.
func WriteZip(ctx context.Context, w io.Writer, files []File) error {
	dir, err := os.MkdirTemp("", "bundle-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	onDisk := make(map[string]string, len(files))
	for _, f := range files {
		name := filepath.Base(f.Name)
		if _, dup := onDisk[filepath.Join(dir, name)]; dup {
			return fmt.Errorf("duplicate file %q in bundle", name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return err
		}
		onDisk[path] = name
	}

	infos, err := archives.FilesFromDisk(ctx, nil, onDisk)
	if err != nil {
		return err
	}
	return archives.Zip{}.Archive(ctx, w, infos)
}

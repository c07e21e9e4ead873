package extraction

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// ExtractArchive extracts the contents of an archive (zip, tar, tar.gz, 7z, rar...)
// to a temporary directory. It returns the extracted file paths and the directory,
// which the caller must remove. OS metadata files are skipped.
func ExtractArchive(ctx context.Context, archivePath string) ([]string, string, error) {
	destDir, err := os.MkdirTemp("", "extract-*")
	if err != nil {
		return nil, "", err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}

	var files []string
	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && ShouldIgnore(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if ShouldIgnore(d.Name()) {
			return nil
		}

		destPath := filepath.Join(destDir, filepath.FromSlash(path))
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return nil
		}
		if err := copyFile(fsys, path, destPath); err != nil {
			return err
		}

		files = append(files, destPath)
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}

	return files, destDir, nil
}

// ShouldIgnore reports whether a file is OS metadata rather than content:
// hidden files, macOS resource forks and Windows thumbnails.
func ShouldIgnore(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return true
	}
	if name == "__MACOSX" {
		return true
	}
	return strings.EqualFold(name, "thumbs.db")
}

func copyFile(fsys fs.FS, path, destPath string) error {
	reader, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}

	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, reader)
	return err
}

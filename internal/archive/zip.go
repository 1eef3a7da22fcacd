package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for members whose path escapes the destination.
var ErrUnsafePath = errors.New("archive member escapes destination")

// Extract unpacks every member of the zip file at zipPath under destDir.
//
// It returns the relative, slash-separated names of the extracted regular
// files in archive order. Directories are created as needed; existing files
// are overwritten.
func Extract(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		if errors.Is(err, zip.ErrInsecurePath) && r != nil {
			r.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnsafePath, err)
		}
		return nil, err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	var files []string
	for _, f := range r.File {
		name, err := memberName(f.Name)
		if err != nil {
			return files, err
		}
		if name == "" {
			continue
		}

		target := filepath.Join(destDir, filepath.FromSlash(name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return files, err
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return files, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		files = append(files, name)
	}

	return files, nil
}

// memberName cleans a zip entry name and rejects absolute or parent paths.
func memberName(raw string) (string, error) {
	name := strings.ReplaceAll(raw, "\\", "/")
	if strings.HasPrefix(name, "/") || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, raw)
	}

	name = path.Clean(name)
	if name == "." {
		return "", nil
	}
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, raw)
	}
	return name, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

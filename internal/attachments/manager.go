package attachments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the directory, relative to the static root, that holds uploads.
// Stored attachment paths are always Dir + "/" + name.
const Dir = "uploads"

// Upload is one submitted file.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// FromBytes builds an Upload over an in-memory payload.
func FromBytes(filename string, data []byte) Upload {
	return Upload{
		Filename: filename,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Manager filters, names and persists uploaded files under a static root.
type Manager struct {
	staticDir string
	logger    *slog.Logger
}

// NewManager creates a manager rooted at staticDir.
func NewManager(staticDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{staticDir: staticDir, logger: logger}
}

// Save writes every acceptable upload and returns their relative paths in
// input order. Files with a disallowed extension, or a name that sanitizes to
// nothing, are skipped silently. A name repeated in the batch overwrites the
// earlier file and yields the same path twice.
func (m *Manager) Save(ctx context.Context, uploads []Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	if len(uploads) == 0 {
		return paths, nil
	}

	dir := filepath.Join(m.staticDir, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if up.Filename == "" || !Allowed(up.Filename) {
			m.logger.Debug("dropping upload with disallowed extension", "filename", up.Filename)
			continue
		}
		name := SecureFilename(up.Filename)
		if name == "" {
			m.logger.Debug("dropping upload with unusable name", "filename", up.Filename)
			continue
		}

		if err := m.write(filepath.Join(dir, name), up); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}
		paths = append(paths, path.Join(Dir, name))
	}
	return paths, nil
}

func (m *Manager) write(dst string, up Upload) error {
	src, err := up.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Resolve maps a stored relative path to its location on disk. It refuses
// anything that is not a flat entry of the uploads directory.
func (m *Manager) Resolve(rel string) (string, error) {
	dir, name := path.Split(rel)
	if dir != Dir+"/" || name == "" || name != SecureFilename(name) {
		return "", fmt.Errorf("invalid attachment path %q", rel)
	}
	return filepath.Join(m.staticDir, Dir, name), nil
}

// Remove unlinks each path. It keeps going after failures and returns one
// error per path that could not be removed. Missing files are not failures.
func (m *Manager) Remove(paths []string) []error {
	var errs []error
	for _, rel := range paths {
		if strings.TrimSpace(rel) == "" {
			continue
		}
		abs, err := m.Resolve(rel)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", rel, err))
		}
	}
	return errs
}

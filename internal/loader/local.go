package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// loadFile reads a document from disk. A leading `~/` expands to the home
// directory since paths are usually typed at the composer prompt.
func loadFile(ctx context.Context, name string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rest, ok := strings.CutPrefix(name, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("loader: expand %s: %w", name, err)
		}
		name = filepath.Join(home, rest)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: %s is a directory", abs)
	}
	return os.ReadFile(abs)
}

// loadFromFS reads name from files. Names are cleaned first so `./post.md`
// resolves like `post.md`.
func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("loader: fs is nil")
	}
	clean := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
	if name == "" || !fs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("loader: invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(files, clean)
}

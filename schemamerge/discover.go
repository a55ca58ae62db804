package schemamerge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Discover returns the paths of all regular files named name below root.
//
// Directories are read in the order the filesystem returns their entries,
// which is not sorted and may differ between runs and platforms. Merged
// output does not depend on this order because it is canonicalized.
func Discover(ctx context.Context, root, name string) ([]string, error) {
	return discoverAll(ctx, slog.Default(), root, name)
}

func discoverAll(ctx context.Context, logger *slog.Logger, root, name string) ([]string, error) {
	var paths []string

	err := discover(ctx, logger, root, name, &paths)
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func discover(ctx context.Context, logger *slog.Logger, dir, name string, paths *[]string) error {
	err := ctx.Err()
	if err != nil {
		return err //nolint:wrapcheck // Context errors are returned as-is.
	}

	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	// File.ReadDir, unlike os.ReadDir, does not sort.
	entries, err := f.ReadDir(-1)

	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			err := discover(ctx, logger, path, name, paths)
			if err != nil {
				return err
			}
		case entry.Type().IsRegular() && entry.Name() == name:
			logger.DebugContext(ctx, "discovered fragment", slog.String("path", path))

			*paths = append(*paths, path)
		}
	}

	return nil
}

// AddDir discovers every fragment below root (see [Discover]) and merges
// them in discovery order, stopping at the first error.
func (m *Merger) AddDir(ctx context.Context, root string) error {
	paths, err := discoverAll(ctx, m.log(), root, m.fileName)
	if err != nil {
		return err
	}

	for _, path := range paths {
		err := ctx.Err()
		if err != nil {
			return err //nolint:wrapcheck // Context errors are returned as-is.
		}

		m.log().InfoContext(ctx, "merging from file", slog.String("path", path))

		err = m.AddFile(path)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes the result to path, replacing any existing file only
// once the complete result has been written.
func (m *Merger) WriteFile(path string) error {
	out, err := m.Result()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = tmp.Write(out)

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}

	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}

	m.log().Info("wrote merged schema", slog.String("path", abs))

	return nil
}

package syncer

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wallstop/docwiki/internal/config"
	derrors "github.com/wallstop/docwiki/internal/errors"
	"github.com/wallstop/docwiki/internal/logfields"
)

const gitDir = ".git"

// CleanDest removes everything in dest except the .git directory. A missing
// dest is not an error. Entries that cannot be removed are logged and the
// first such error is returned after the rest have been tried.
func CleanDest(dest string, dryRun bool, log *slog.Logger) error {
	entries, err := os.ReadDir(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return derrors.ReadFailed(dest, err)
	}

	var first error
	for _, e := range entries {
		if e.Name() == gitDir {
			continue
		}
		p := filepath.Join(dest, e.Name())
		if dryRun {
			log.Info("Would remove", logfields.Path(p), logfields.DryRun(true))
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			log.Warn("Could not remove", logfields.Path(p), logfields.Error(err))
			if first == nil {
				first = derrors.WriteFailed(p, err)
			}
			continue
		}
		log.Debug("Removed", logfields.Path(p))
	}
	return first
}

// writeFile writes content to path, creating parent directories.
func writeFile(path, content string, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return derrors.WriteFailed(path, err)
	}
	// #nosec G306 -- wiki pages are published content.
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return derrors.WriteFailed(path, err)
	}
	return nil
}

// CopyAssets replaces dest/assets with the files found under src. The
// layout is flattened to match the assets/<filename> links produced by the
// link rewriter; when two files share a name the first in walk order wins.
// It returns the number of files copied. A missing src is reported with
// copied=0 and no error.
func CopyAssets(src, dest string, dryRun bool, log *slog.Logger) (int, error) {
	info, err := os.Stat(src)
	if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
		log.Warn("Assets directory not found", logfields.Source(src))
		return 0, nil
	}
	if err != nil {
		return 0, derrors.ReadFailed(src, err)
	}

	target := filepath.Join(dest, config.AssetsDirName)
	if dryRun {
		log.Info("Would copy assets", logfields.Source(src), logfields.Dest(target), logfields.DryRun(true))
		return 0, nil
	}
	if err := os.RemoveAll(target); err != nil {
		return 0, derrors.WriteFailed(target, err)
	}
	if err := os.MkdirAll(target, 0o750); err != nil {
		return 0, derrors.WriteFailed(target, err)
	}

	seen := make(map[string]string)
	copied := 0
	err = filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if prev, dup := seen[d.Name()]; dup {
			log.Warn("Duplicate asset name; keeping first", logfields.Path(p), logfields.Source(prev))
			return nil
		}
		seen[d.Name()] = p
		if err := copyFile(p, filepath.Join(target, d.Name())); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, derrors.WriteFailed(target, err)
	}
	log.Info("Copied assets", logfields.Source(src), logfields.Dest(target), logfields.Count(copied))
	return copied, nil
}

func copyFile(src, dst string) error {
	// #nosec G304 -- src comes from walking the assets directory.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	// #nosec G302 G304 -- assets are published content.
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skel-dev/skel/internal/logging"
	"github.com/spf13/afero"
)

// templateFile is a regular file found under a template root.
type templateFile struct {
	Path string      // path on the filesystem
	Rel  string      // slash-separated path relative to the template root
	Mode os.FileMode // mode of the file (or of the symlink's target)
}

// walkFiles calls fn for every regular file under root in lexical order.
// Symlinks to regular files are followed; directories only matter for the
// files they contain, so empty directories yield nothing.
func walkFiles(fsys afero.Fs, root string, fn func(templateFile) error) error {
	logger := logging.GetLogger("scaffold")

	root, err := resolveRoot(fsys, root)
	if err != nil {
		return err
	}

	return afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if info.IsDir() {
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := fsys.Stat(path)
			if statErr != nil {
				logger.Debug().Str("path", path).Err(statErr).Msg("skipping dangling symlink")
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("skipping non-regular file")
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}

		return fn(templateFile{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Mode: info.Mode(),
		})
	})
}

// resolveRoot follows a symlinked template root so the walk descends into
// its target. afero.Walk lstats the root and would otherwise see a link.
func resolveRoot(fsys afero.Fs, root string) (string, error) {
	lst, ok := fsys.(afero.Lstater)
	if !ok {
		return root, nil
	}
	info, lstatCalled, err := lst.LstatIfPossible(root)
	if err != nil || !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
		return root, nil
	}
	if _, ok := fsys.(*afero.OsFs); !ok {
		return root, nil
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("resolving template %s: %w", root, err)
	}
	return resolved, nil
}

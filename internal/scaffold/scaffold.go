package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/skel-dev/skel/internal/logging"
	"github.com/skel-dev/skel/internal/placeholder"
	"github.com/skel-dev/skel/internal/platform"
	"github.com/spf13/afero"
)

const dirPerm = 0755

// Options tunes a Copy.
type Options struct {
	// DryRun performs the copy against an in-memory overlay of fsys so the
	// result can be reported without writing anything.
	DryRun bool
}

// Result holds the outcome of a Copy. Paths are relative to the destination.
type Result struct {
	Source      string
	Destination string
	Written     []string
	Skipped     []string
	DryRun      bool
}

// Copy copies every file under src to dst, interpolating values into each
// file's relative path and contents. Existing destination paths are skipped.
//
// Copy is not transactional: on error, files written before the failure stay
// in place and the rest are absent.
func Copy(fsys afero.Fs, src, dst string, values map[string]string, opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")
	defer logging.LogOperationStart(logger, "copy")()

	info, err := fsys.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", src, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template %s is not a directory", src)
	}
	if err := checkNotNested(src, dst); err != nil {
		return nil, err
	}

	target := fsys
	if opts.DryRun {
		target = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fsys), afero.NewMemMapFs())
	}

	result := &Result{
		Source:      src,
		Destination: dst,
		DryRun:      opts.DryRun,
	}

	err = walkFiles(fsys, src, func(f templateFile) error {
		rel, err := targetPath(f.Rel, values)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, rel)

		if err := target.MkdirAll(filepath.Dir(dstPath), dirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", dstPath, err)
		}

		exists, err := afero.Exists(target, dstPath)
		if err != nil {
			return fmt.Errorf("checking %s: %w", dstPath, err)
		}
		if exists {
			logger.Info().Str("target", dstPath).Msg("exists; not overwriting")
			result.Skipped = append(result.Skipped, rel)
			return nil
		}

		data, err := afero.ReadFile(fsys, f.Path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", f.Path, err)
		}
		if err := afero.WriteFile(target, dstPath, placeholder.Interpolate(data, values), f.Mode.Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
		// WriteFile is subject to the umask; restore the template's exact bits.
		if err := platform.Chmod(target, dstPath, f.Mode); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", dstPath, err)
		}

		logger.Info().Str("source", f.Path).Str("target", dstPath).Bool("dry_run", opts.DryRun).Msg("wrote")
		result.Written = append(result.Written, rel)
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

// targetPath interpolates a slash-separated template path and checks that the
// result is a non-empty path that stays inside the destination. Empty
// segments collapse wherever they occur, including the first one.
func targetPath(rel string, values map[string]string) (string, error) {
	out := filepath.Join(".", filepath.FromSlash(placeholder.InterpolateString(rel, values)))
	if out == "." || !filepath.IsLocal(out) {
		return "", fmt.Errorf("template path %q interpolates to %q, which is not a file inside the destination", rel, out)
	}
	return out, nil
}

// checkNotNested rejects destinations inside the template, which would make
// the walk pick up its own output.
func checkNotNested(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dst, err)
	}
	rel, err := filepath.Rel(absSrc, absDst)
	if err != nil {
		return nil
	}
	if rel == "." || filepath.IsLocal(rel) {
		return fmt.Errorf("destination %s is inside template %s", dst, src)
	}
	return nil
}

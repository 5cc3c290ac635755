package scaffold

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/README.md":           "# <%NAME%>\n\nby <%AUTHOR%>, about <%NAME%>\n",
		"/tmpl/setup.py":            "name='<%NAME%>'\n",
		"/tmpl/<%PKG%>/__init__.py": "",
		"/tmpl/static.txt":          "no placeholders here",
	})

	vars, err := Scan(fsys, "/tmpl")
	require.NoError(t, err)

	assert.Equal(t, []string{"AUTHOR", "NAME", "PKG"}, Names(vars))
	assert.Equal(t, []string{"README.md"}, vars[0].Files)
	assert.Equal(t, []string{"README.md", "setup.py"}, vars[1].Files)
	assert.Equal(t, []string{"<%PKG%>/__init__.py"}, vars[2].Files)
}

func TestScanEmptyTemplate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/tmpl/empty/nested", 0755))

	vars, err := Scan(fsys, "/tmpl")
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(afero.NewMemMapFs(), "/nope")
	require.Error(t, err)
}

func TestCopyInterpolatesContents(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/greeting.txt":    "Hello, <%NAME%>!",
		"/tmpl/docs/static.txt": "byte-identical \x00\xff",
		"/tmpl/unknown.txt":     "[<%UNKNOWN%>]",
	})

	result, err := Copy(fsys, "/tmpl", "/out", map[string]string{"NAME": "World"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("docs", "static.txt"),
		"greeting.txt",
		"unknown.txt",
	}, result.Written)
	assert.Empty(t, result.Skipped)

	assertFile(t, fsys, "/out/greeting.txt", "Hello, World!")
	assertFile(t, fsys, "/out/docs/static.txt", "byte-identical \x00\xff")
	assertFile(t, fsys, "/out/unknown.txt", "[]")
}

func TestCopyInterpolatesPaths(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/<%PKG%>/__init__.py": "# <%PKG%>\n",
		"/tmpl/bin/<%NAME%>-cli.sh": "exec <%NAME%>\n",
	})

	values := map[string]string{"PKG": "mypkg", "NAME": "tool"}
	result, err := Copy(fsys, "/tmpl", "/out", values, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Written, 2)

	assertFile(t, fsys, "/out/mypkg/__init__.py", "# mypkg\n")
	assertFile(t, fsys, "/out/bin/tool-cli.sh", "exec tool\n")
}

func TestCopySkipsExistingFiles(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/a.txt": "new <%X%>",
		"/tmpl/b.txt": "new <%X%>",
	})
	require.NoError(t, afero.WriteFile(fsys, "/out/a.txt", []byte("keep me"), 0644))

	result, err := Copy(fsys, "/tmpl", "/out", map[string]string{"X": "1"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, result.Written)
	assert.Equal(t, []string{"a.txt"}, result.Skipped)
	assertFile(t, fsys, "/out/a.txt", "keep me")
	assertFile(t, fsys, "/out/b.txt", "new 1")
}

func TestCopyIsIdempotent(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/one.txt":     "<%V%>",
		"/tmpl/sub/two.txt": "<%V%><%V%>",
	})
	values := map[string]string{"V": "v"}

	first, err := Copy(fsys, "/tmpl", "/out", values, Options{})
	require.NoError(t, err)
	require.Len(t, first.Written, 2)

	second, err := Copy(fsys, "/tmpl", "/out", map[string]string{"V": "changed"}, Options{})
	require.NoError(t, err)
	assert.Empty(t, second.Written)
	assert.Equal(t, first.Written, second.Skipped)

	assertFile(t, fsys, "/out/one.txt", "v")
	assertFile(t, fsys, "/out/sub/two.txt", "vv")
}

func TestCopyDryRunWritesNothing(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/a.txt":     "<%X%>",
		"/tmpl/sub/b.txt": "<%X%>",
	})
	require.NoError(t, afero.WriteFile(fsys, "/out/a.txt", []byte("existing"), 0644))

	dry, err := Copy(fsys, "/tmpl", "/out", map[string]string{"X": "1"}, Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, dry.DryRun)
	assert.Equal(t, []string{filepath.Join("sub", "b.txt")}, dry.Written)
	assert.Equal(t, []string{"a.txt"}, dry.Skipped)

	exists, err := afero.Exists(fsys, "/out/sub")
	require.NoError(t, err)
	assert.False(t, exists, "dry run must not create directories")

	applied, err := Copy(fsys, "/tmpl", "/out", map[string]string{"X": "1"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, dry.Written, applied.Written)
	assert.Equal(t, dry.Skipped, applied.Skipped)
}

func TestCopyIgnoresEmptyDirectories(t *testing.T) {
	fsys := newTemplate(t, map[string]string{"/tmpl/file.txt": "x"})
	require.NoError(t, fsys.MkdirAll("/tmpl/empty", 0755))

	_, err := Copy(fsys, "/tmpl", "/out", nil, Options{})
	require.NoError(t, err)

	exists, err := afero.Exists(fsys, "/out/empty")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyRejectsEscapingPaths(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		values map[string]string
	}{
		{"parent traversal", "/tmpl/<%DIR%>/x.txt", map[string]string{"DIR": "../.."}},
		{"absolute", "/tmpl/<%DIR%>/x.txt", map[string]string{"DIR": "/etc"}},
		{"empty name", "/tmpl/<%NAME%>", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newTemplate(t, map[string]string{tt.file: "x"})
			_, err := Copy(fsys, "/tmpl", "/out", tt.values, Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not a file inside the destination")
		})
	}
}

func TestCopyRejectsDestinationInsideTemplate(t *testing.T) {
	fsys := newTemplate(t, map[string]string{"/tmpl/a.txt": "x"})

	_, err := Copy(fsys, "/tmpl", "/tmpl/out", nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inside template")
}

func TestCopyMissingTemplate(t *testing.T) {
	_, err := Copy(afero.NewMemMapFs(), "/nope", "/out", nil, Options{})
	require.Error(t, err)
}

func TestCopyOsFsPreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no unix permission bits")
	}

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.WriteFile(filepath.Join(src, "run-<%NAME%>.sh"), []byte("#!/bin/sh\necho <%NAME%>\n"), 0755))

	result, err := Copy(afero.NewOsFs(), src, dst, map[string]string{"NAME": "demo"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"run-demo.sh"}, result.Written)

	info, err := os.Stat(filepath.Join(dst, "run-demo.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dst, "run-demo.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho demo\n", string(data))
}

func TestScanAndCopySymlinkedTemplate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "x.txt"), []byte("n=<%N%>"), 0644))
	link := filepath.Join(t.TempDir(), "tmpl")
	require.NoError(t, os.Symlink(target, link))

	fsys := afero.NewOsFs()
	vars, err := Scan(fsys, link)
	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, Names(vars))
	assert.Equal(t, []string{"x.txt"}, vars[0].Files)

	dst := filepath.Join(t.TempDir(), "out")
	result, err := Copy(fsys, link, dst, map[string]string{"N": "1"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, result.Written)

	data, err := os.ReadFile(filepath.Join(dst, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "n=1", string(data))
}

func TestCopyEmptyLeadingSegment(t *testing.T) {
	fsys := newTemplate(t, map[string]string{
		"/tmpl/<%PREFIX%>/a.txt": "a",
	})

	result, err := Copy(fsys, "/tmpl", "/out", map[string]string{"PREFIX": ""}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, result.Written)
	assertFile(t, fsys, "/out/a.txt", "a")
}

func TestTargetPath(t *testing.T) {
	values := map[string]string{"A": "x", "NESTED": "a/b", "EMPTY": ""}

	tests := []struct {
		rel     string
		want    string
		wantErr bool
	}{
		{"plain.txt", "plain.txt", false},
		{"<%A%>/file", filepath.Join("x", "file"), false},
		{"<%NESTED%>.txt", filepath.Join("a", "b.txt"), false},
		{"dir/<%EMPTY%>/file", filepath.Join("dir", "file"), false},
		{"<%EMPTY%>/file", "file", false},
		{"<%EMPTY%>/<%A%>/file", filepath.Join("x", "file"), false},
		{"<%EMPTY%>/../file", "", true},
		{"<%EMPTY%>", "", true},
		{"../escape", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got, err := targetPath(tt.rel, values)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func newTemplate(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	return fsys
}

func assertFile(t *testing.T, fsys afero.Fs, path, want string) {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err, "reading %s", path)
	assert.Equal(t, want, string(data))
}

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Project is a template directory.
type Project struct {
	Name string // directory name, used on the command line
	Path string // full path on the filesystem
}

// UnknownProjectError is returned by Find when no project has the requested name.
type UnknownProjectError struct {
	Name    string
	Choices []string
}

func (e *UnknownProjectError) Error() string {
	if len(e.Choices) == 0 {
		return fmt.Sprintf("unknown project %q: no projects found", e.Name)
	}
	return fmt.Sprintf("unknown project %q (choose from %s)", e.Name, strings.Join(e.Choices, ", "))
}

// Discover returns the projects under root, sorted by name. Hidden
// directories (leading ".") are not projects.
func Discover(fsys afero.Fs, root string) ([]Project, error) {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory %s: %w", root, err)
	}

	var projects []Project
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if !isDir(fsys, entry, path) {
			continue
		}
		projects = append(projects, Project{Name: entry.Name(), Path: path})
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// Find returns the project called name.
func Find(projects []Project, name string) (*Project, error) {
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, &UnknownProjectError{Name: name, Choices: Names(projects)}
}

// Names returns the names of projects, preserving order.
func Names(projects []Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(fsys afero.Fs, entry os.FileInfo, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Mode()&os.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

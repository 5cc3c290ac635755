package scaffold

import (
	"fmt"
	"sort"

	"github.com/skel-dev/skel/internal/placeholder"
	"github.com/spf13/afero"
)

// Variable is a template variable and the template files that reference it,
// either in their contents or in their relative path.
type Variable struct {
	Name  string
	Files []string
}

// Scan returns every distinct variable referenced under root, sorted by name.
func Scan(fsys afero.Fs, root string) ([]Variable, error) {
	usage := make(map[string][]string)

	err := walkFiles(fsys, root, func(f templateFile) error {
		data, err := afero.ReadFile(fsys, f.Path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", f.Path, err)
		}

		names := placeholder.Names([]byte(f.Rel))
		names = append(names, placeholder.Names(data)...)

		seen := make(map[string]bool, len(names))
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			usage[name] = append(usage[name], f.Rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	vars := make([]Variable, 0, len(usage))
	for name, files := range usage {
		vars = append(vars, Variable{Name: name, Files: files})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	return vars, nil
}

// Names returns just the variable names, preserving order.
func Names(vars []Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

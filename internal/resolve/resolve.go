package resolve

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// Source identifies where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceDefault Source = "default"
	SourcePrompt  Source = "prompt"
)

// LookupFunc looks up an environment variable by exact name.
type LookupFunc func(name string) (string, bool)

// Sources holds everything a value may be resolved from.
type Sources struct {
	Explicit  map[string]string // values passed as --NAME flags
	LookupEnv LookupFunc        // nil means os.LookupEnv
	Defaults  map[string]string // entries from the defaults file
	Prompter  Prompter          // nil disables prompting
}

// Lookup resolves a single name without prompting.
func (s Sources) Lookup(name string) (string, Source, bool) {
	if v, ok := s.Explicit[name]; ok {
		return v, SourceFlag, true
	}
	lookupEnv := s.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if v, ok := lookupEnv(name); ok {
		return v, SourceEnv, true
	}
	if v, ok := s.Defaults[name]; ok {
		return v, SourceDefault, true
	}
	return "", "", false
}

// Table is an immutable mapping from variable name to resolved value.
type Table struct {
	names   []string
	values  map[string]string
	sources map[string]Source
}

// Names returns the resolved names in the order they were requested.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Lookup returns the value for name.
func (t *Table) Lookup(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Source returns where name's value came from.
func (t *Table) Source(name string) Source {
	return t.sources[name]
}

// Values returns a copy of the name → value mapping.
func (t *Table) Values() map[string]string {
	return maps.Clone(t.values)
}

// MissingError reports variables that have no value from any source.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	flags := make([]string, len(e.Names))
	for i, name := range e.Names {
		flags[i] = "--" + name
	}
	if len(e.Names) == 1 {
		return fmt.Sprintf("missing required value for template variable %s: pass %s or set %s in the environment",
			e.Names[0], flags[0], e.Names[0])
	}
	return fmt.Sprintf("missing required values for template variables %s: pass %s or set them in the environment",
		strings.Join(e.Names, ", "), strings.Join(flags, ", "))
}

// Resolve resolves every name in names. If any remain unresolved after all
// sources (including the prompter) have been tried, it returns a
// *MissingError naming all of them, sorted.
func Resolve(names []string, src Sources) (*Table, error) {
	t := &Table{
		names:   slices.Clone(names),
		values:  make(map[string]string, len(names)),
		sources: make(map[string]Source, len(names)),
	}

	var missing []string
	for _, name := range names {
		v, source, ok := src.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		t.values[name] = v
		t.sources[name] = source
	}

	if len(missing) > 0 && src.Prompter != nil {
		for _, name := range missing {
			v, err := src.Prompter.Ask(name)
			if err != nil {
				return nil, fmt.Errorf("prompting for %s: %w", name, err)
			}
			t.values[name] = v
			t.sources[name] = SourcePrompt
		}
		missing = nil
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, &MissingError{Names: missing}
	}
	return t, nil
}

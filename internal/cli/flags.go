package cli

import (
	"fmt"
	"io"

	"github.com/skel-dev/skel/internal/resolve"
	"github.com/spf13/pflag"
)

// installOptions are the fixed arguments of the install command.
type installOptions struct {
	Project      string
	Destination  string
	Verbose      bool
	TemplatesDir string
	EnvFile      string
	DryRun       bool
	Interactive  bool
	Help         bool

	positionals []string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("install", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

func addInstallFlags(fs *pflag.FlagSet, o *installOptions) {
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "Log extra information")
	fs.StringVar(&o.TemplatesDir, "templates", "", "Directory whose subdirectories are the projects")
	fs.StringVar(&o.EnvFile, "env-file", "", "Dotenv file with fallback variable values")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Report what would be written without writing anything")
	fs.BoolVarP(&o.Interactive, "interactive", "i", false, "Prompt for variables that have no value")
	fs.BoolVarP(&o.Help, "help", "h", false, "Show help")
}

// parseFixed is the first parsing phase. Template variable flags are not
// known yet, so unknown flags (and their values) are skipped.
func parseFixed(args []string) (*installOptions, error) {
	o := &installOptions{}
	fs := newFlagSet()
	fs.ParseErrorsWhitelist.UnknownFlags = true
	addInstallFlags(fs, o)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.positionals = fs.Args()
	if len(o.positionals) > 0 {
		o.Project = o.positionals[0]
	}
	if len(o.positionals) > 1 {
		o.Destination = o.positionals[1]
	}
	return o, nil
}

// checkPositionals reports a usage error unless exactly a project and a
// destination were given.
func (o *installOptions) checkPositionals() error {
	if len(o.positionals) != 2 {
		return fmt.Errorf("expected <project> <destination>, got %d argument(s)", len(o.positionals))
	}
	return nil
}

// variableFlagSet builds the second-phase flag set: the fixed flags plus one
// string flag per template variable. A variable's flag default is the
// environment variable of the same name, for help output.
func variableFlagSet(o *installOptions, names []string, lookupEnv resolve.LookupFunc) (*pflag.FlagSet, map[string]*string, error) {
	fs := newFlagSet()
	addInstallFlags(fs, o)

	values := make(map[string]*string, len(names))
	for _, name := range names {
		if fs.Lookup(name) != nil {
			return nil, nil, fmt.Errorf("template variable %s conflicts with the built-in --%s flag", name, name)
		}
		def, _ := lookupEnv(name)
		values[name] = fs.String(name, def, "Template variable")
	}
	return fs, values, nil
}

// parseVariables is the second parsing phase. It returns only the variables
// given explicitly on the command line; unknown flags are now an error.
func parseVariables(args []string, o *installOptions, names []string, lookupEnv resolve.LookupFunc) (map[string]string, error) {
	fs, values, err := variableFlagSet(o, names, lookupEnv)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := make(map[string]string)
	for name, v := range values {
		if fs.Changed(name) {
			explicit[name] = *v
		}
	}
	return explicit, nil
}

// variableUsages renders help lines for the variable flags only.
func variableUsages(names []string, lookupEnv resolve.LookupFunc) string {
	fs := newFlagSet()
	for _, name := range names {
		usage := "Template variable (required)"
		def, ok := lookupEnv(name)
		if ok {
			usage = "Template variable"
		}
		fs.String(name, def, usage)
	}
	return fs.FlagUsages()
}

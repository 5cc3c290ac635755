package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/skel-dev/skel/internal/config"
	"github.com/skel-dev/skel/internal/logging"
	"github.com/skel-dev/skel/internal/project"
	"github.com/skel-dev/skel/internal/resolve"
	"github.com/skel-dev/skel/internal/scaffold"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// lookupEnv is the environment lookup used for template variables.
var lookupEnv resolve.LookupFunc = os.LookupEnv

func runInstall(cmd *cobra.Command, args []string) error {
	opts, err := parseFixed(args)
	if err != nil {
		return err
	}
	if opts.Help {
		return printInstallHelp(cmd, opts)
	}
	if err := opts.checkPositionals(); err != nil {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, cmd.CommandPath())
	}

	logging.Setup(cmd.ErrOrStderr(), opts.Verbose)
	logger := logging.GetLogger("install")
	checkVersionConstraint(logger, config.VersionConstraint(), buildVersion)

	proj, err := findProject(opts.TemplatesDir, opts.Project)
	if err != nil {
		return err
	}
	logger.Info().Str("project", proj.Name).Str("template", proj.Path).Msg("using template")

	vars, err := scaffold.Scan(appFs, proj.Path)
	if err != nil {
		return fmt.Errorf("scanning template: %w", err)
	}
	names := scaffold.Names(vars)
	logger.Debug().Strs("variables", names).Msg("scanned template")

	explicit, err := parseVariables(args, opts, names, lookupEnv)
	if err != nil {
		return err
	}

	defaults, err := loadDefaults(opts.EnvFile)
	if err != nil {
		return err
	}

	src := resolve.Sources{
		Explicit:  explicit,
		LookupEnv: lookupEnv,
		Defaults:  defaults,
	}
	if opts.Interactive {
		prompter, err := newPrompter(cmd)
		if err != nil {
			return err
		}
		src.Prompter = prompter
	}

	table, err := resolve.Resolve(names, src)
	if err != nil {
		return err
	}
	for _, name := range table.Names() {
		logger.Debug().Str("variable", name).Str("source", string(table.Source(name))).Msg("resolved")
	}

	result, err := scaffold.Copy(appFs, proj.Path, opts.Destination, table.Values(), scaffold.Options{DryRun: opts.DryRun})
	if err != nil {
		return err
	}

	logger.Info().
		Int("written", len(result.Written)).
		Int("skipped", len(result.Skipped)).
		Msg(summary(result))
	return nil
}

// findProject resolves the templates root and selects a project in it.
func findProject(templatesFlag, name string) (*project.Project, error) {
	root, err := templatesRoot(templatesFlag)
	if err != nil {
		return nil, err
	}
	projects, err := project.Discover(appFs, root)
	if err != nil {
		return nil, err
	}
	return project.Find(projects, name)
}

// templatesRoot picks the directory holding the projects: the --templates
// flag, then config/SKEL_TEMPLATES_DIR, then the executable's directory.
func templatesRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if dir := config.TemplatesDir(); dir != "" {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// loadDefaults reads the defaults file named by --env-file, or the
// configured one. Only an explicitly named file must exist.
func loadDefaults(envFile string) (map[string]string, error) {
	if envFile != "" {
		return resolve.LoadDefaults(envFile, true)
	}
	path, explicit := config.DefaultsFile()
	return resolve.LoadDefaults(path, explicit)
}

// newPrompter prompts on the command's input. A real stdin must be a
// terminal; any other reader (tests, embedding) is used as is.
func newPrompter(cmd *cobra.Command) (resolve.Prompter, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return resolve.NewTerminalPrompter(f, cmd.ErrOrStderr())
	}
	return resolve.NewLinePrompter(in, cmd.ErrOrStderr()), nil
}

func summary(r *scaffold.Result) string {
	if r.DryRun {
		return printer.Sprintf("dry run: %d file(s) would be written to %s, %d skipped",
			len(r.Written), r.Destination, len(r.Skipped))
	}
	return printer.Sprintf("done: %d file(s) written to %s, %d skipped",
		len(r.Written), r.Destination, len(r.Skipped))
}

func printInstallHelp(cmd *cobra.Command, opts *installOptions) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintf(out, "\nUsage:\n  %s\n  %s [command]\n", cmd.UseLine(), cmd.CommandPath())
	fmt.Fprintf(out, "\nExamples:\n%s\n", cmd.Example)

	fixed := newFlagSet()
	addInstallFlags(fixed, &installOptions{})
	fmt.Fprintf(out, "\nFlags:\n%s", fixed.FlagUsages())

	if opts.Project != "" {
		proj, err := findProject(opts.TemplatesDir, opts.Project)
		if err != nil {
			return err
		}
		vars, err := scaffold.Scan(appFs, proj.Path)
		if err != nil {
			return fmt.Errorf("scanning template: %w", err)
		}
		if len(vars) > 0 {
			fmt.Fprintf(out, "\nTemplate variables for %s:\n%s", proj.Name, variableUsages(scaffold.Names(vars), lookupEnv))
		}
	}

	fmt.Fprintf(out, "\nCommands:\n")
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			fmt.Fprintf(out, "  %-12s %s\n", c.Name(), c.Short)
		}
	}
	return nil
}

// checkVersionConstraint warns when the running release falls outside the
// configured constraint.
func checkVersionConstraint(logger zerolog.Logger, constraint, version string) {
	if constraint == "" {
		return
	}
	ok, err := satisfiesConstraint(version, constraint)
	if err != nil {
		logger.Debug().Err(err).Str("constraint", constraint).Msg("skipping version check")
		return
	}
	if !ok {
		logger.Warn().
			Str("version", version).
			Str("constraint", constraint).
			Msg("this release does not satisfy the configured version_constraint")
	}
}

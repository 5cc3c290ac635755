package cli

import (
	"fmt"

	"github.com/skel-dev/skel/internal/branding"
	"github.com/skel-dev/skel/internal/config"
	"github.com/skel-dev/skel/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// appFs is the filesystem every command reads templates from and writes to.
var appFs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project> <destination> [--VARIABLE value ...]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` copies a project template to a destination directory, replacing
<%VARIABLE%> placeholders in file contents and file names.

Each variable becomes a --VARIABLE flag. A variable with no flag falls back to
the environment variable of the same name, then to the defaults file
(~/.skel/defaults.env). Files that already exist at the destination are
never overwritten.`,
	Example: `  skel python ~/src/newlib --NAME newlib
  NAME=newlib skel python ~/src/newlib --dry-run
  skel vars python`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	// The install flags depend on the chosen template, so parsing is done
	// in two phases by runInstall itself.
	DisableFlagParsing: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// runInstall reconfigures this once --verbose is parsed.
		logging.Setup(cmd.ErrOrStderr(), false)
		config.Load()
	},
	RunE: runInstall,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/skel-dev/skel/internal/project"
	"github.com/skel-dev/skel/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	listTemplatesDir string
	listJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available projects",
	Long: `List the projects (template directories) found in the templates directory.

The templates directory is --templates, else the templates_dir setting
(or SKEL_TEMPLATES_DIR), else the directory containing the skel binary.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTemplatesDir, "templates", "", "Directory whose subdirectories are the projects")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a project for display.
type listEntry struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Variables int    `json:"variables"`
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := templatesRoot(listTemplatesDir)
	if err != nil {
		return err
	}

	projects, err := project.Discover(appFs, root)
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No projects found in %s.\n", root)
		return nil
	}

	entries := make([]listEntry, 0, len(projects))
	for _, p := range projects {
		vars, err := scaffold.Scan(appFs, p.Path)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p.Name, err)
		}
		entries = append(entries, listEntry{Name: p.Name, Path: p.Path, Variables: len(vars)})
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tVARIABLES\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Variables, e.Path)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

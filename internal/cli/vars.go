package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/skel-dev/skel/internal/resolve"
	"github.com/skel-dev/skel/internal/scaffold"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	varsTemplatesDir string
	varsEnvFile      string
	varsOutput       string
)

var varsCmd = &cobra.Command{
	Use:   "vars <project>",
	Short: "Show the variables a project uses",
	Long: `Show every <%VARIABLE%> a project references, the files that use it, and
whether the environment or the defaults file already provides a value.

Variables with no source must be passed as --VARIABLE when installing.`,
	Args: cobra.ExactArgs(1),
	RunE: runVars,
}

func init() {
	varsCmd.Flags().StringVar(&varsTemplatesDir, "templates", "", "Directory whose subdirectories are the projects")
	varsCmd.Flags().StringVar(&varsEnvFile, "env-file", "", "Dotenv file with fallback variable values")
	varsCmd.Flags().StringVarP(&varsOutput, "output", "o", "text", "Output format: text, json, or yaml")
	rootCmd.AddCommand(varsCmd)
}

// varEntry describes one template variable for display.
type varEntry struct {
	Name   string   `json:"name" yaml:"name"`
	Source string   `json:"source,omitempty" yaml:"source,omitempty"`
	Files  []string `json:"files" yaml:"files"`
}

func runVars(cmd *cobra.Command, args []string) error {
	proj, err := findProject(varsTemplatesDir, args[0])
	if err != nil {
		return err
	}

	vars, err := scaffold.Scan(appFs, proj.Path)
	if err != nil {
		return fmt.Errorf("scanning template: %w", err)
	}

	defaults, err := loadDefaults(varsEnvFile)
	if err != nil {
		return err
	}
	src := resolve.Sources{LookupEnv: lookupEnv, Defaults: defaults}

	entries := make([]varEntry, 0, len(vars))
	for _, v := range vars {
		entry := varEntry{Name: v.Name, Files: v.Files}
		if _, source, ok := src.Lookup(v.Name); ok {
			entry.Source = string(source)
		}
		entries = append(entries, entry)
	}

	out := cmd.OutOrStdout()
	switch varsOutput {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling variables: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling variables: %w", err)
		}
		return enc.Close()
	case "text":
		if len(entries) == 0 {
			fmt.Fprintf(out, "Project %s has no variables.\n", proj.Name)
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "VARIABLE\tSOURCE\tFILES")
		for _, e := range entries {
			source := e.Source
			if source == "" {
				source = "required"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, source, strings.Join(e.Files, ", "))
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", varsOutput)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngcomp/internal/config"
	"github.com/mvp-joe/ngcomp/internal/discover"
)

var inspectJSONFlag bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [paths or globs...]",
	Short: "Show the component metadata ngcomp recognizes",
	Long: `Inspect prints the selector, templateUrl, styleUrls and class name found in
component class files, and lists the fields that are missing. 'ngcomp extract'
leaves missing fields unchanged and warns, or fails with --strict.

Directories are searched using paths.components and paths.ignore from the
project config. Files are inspected as given. Other arguments are glob
patterns. With no arguments the current directory is searched.

Examples:
  ngcomp inspect
  ngcomp inspect src/app/user-page/user-page.component.ts
  ngcomp inspect 'src/**/*.component.ts' --json
`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSONFlag, "json", false, "Print JSON instead of text")
}

func runInspect(cmd *cobra.Command, args []string) error {
	project, _, err := loadConfigs()
	if err != nil {
		return err
	}
	return executeInspect(project, afero.NewOsFs(), args, cmd.OutOrStdout(), inspectJSONFlag)
}

func executeInspect(project *config.Config, fs afero.Fs, args []string, out io.Writer, asJSON bool) error {
	d, err := discover.New(fs, project.Paths.Components, project.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid component patterns: %w", err)
	}

	files, err := d.Resolve(args)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}

	components, err := discover.InspectAll(fs, files)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(components)
	}

	if len(components) == 0 {
		fmt.Fprintln(out, "No component files found")
		return nil
	}

	for i, c := range components {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printComponent(out, c)
	}
	return nil
}

func printComponent(out io.Writer, c *discover.Component) {
	fmt.Fprintln(out, c.Path)
	fmt.Fprintf(out, "  selector:    %s\n", orNone(c.Metadata.Selector))
	fmt.Fprintf(out, "  templateUrl: %s\n", orNone(c.Metadata.TemplateURL))
	fmt.Fprintf(out, "  styleUrls:   %s\n", orNone(strings.Join(c.Metadata.StyleURLs, ", ")))
	fmt.Fprintf(out, "  class:       %s\n", orNone(c.Metadata.ClassName))
	if !c.Complete() {
		fmt.Fprintf(out, "  missing:     %s\n", strings.Join(c.Missing, ", "))
	}
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngcomp/internal/config"
	"github.com/mvp-joe/ngcomp/internal/naming"
)

// nameCmd represents the name command
var nameCmd = &cobra.Command{
	Use:   "name <raw>",
	Short: "Show the names ngcomp derives from a component name",
	Long: `Name prints the dashed and classified forms of a component name together with
the directory, selector and class name an extraction would use.

Example:
  ngcomp name UserCard
`,
	Args: cobra.ExactArgs(1),
	RunE: runName,
}

func init() {
	rootCmd.AddCommand(nameCmd)
}

func runName(cmd *cobra.Command, args []string) error {
	project, _, err := loadConfigs()
	if err != nil {
		return err
	}
	return executeName(project, args[0], cmd.OutOrStdout())
}

func executeName(project *config.Config, raw string, out io.Writer) error {
	name, err := naming.Parse(raw)
	if err != nil {
		return err
	}

	layout := project.Layout()
	fmt.Fprintf(out, "dashed:     %s\n", name.Dashed)
	fmt.Fprintf(out, "classified: %s\n", name.Classified)
	fmt.Fprintf(out, "directory:  %s/\n", name.Dashed)
	fmt.Fprintf(out, "selector:   %s\n", name.Dashed)
	fmt.Fprintf(out, "class:      %s\n", layout.ClassName(name.Classified))
	fmt.Fprintf(out, "template:   %s\n", layout.TemplateURL(name.Dashed))
	return nil
}

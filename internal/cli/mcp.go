package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngcomp/internal/guard"
	"github.com/mvp-joe/ngcomp/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for component extraction",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can extract
and inspect components.

The MCP server:
- Provides the extract_component and inspect_component tools
- Uses the project config of the working directory
- Shares the target guard with 'ngcomp extract' through the lock directory
- Communicates via stdio (standard MCP transport); logs go to stderr

Example:
  ngcomp mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	project, global, err := loadConfigs()
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.ServerConfig{
		Version: Version,
		Project: project,
		Guard:   guard.New(global.GuardConfig()),
		FS:      afero.NewOsFs(),
		Logger:  logrus.StandardLogger(),
	})

	return server.Serve(cmd.Context())
}

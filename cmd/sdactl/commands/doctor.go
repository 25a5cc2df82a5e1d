package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/sdactl/cmd/sdactl/handlers"
)

// Doctor returns the command for checking a deployment project.
//
// Optional flags:
//
//	--dir, -d: Project directory (default: current directory)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var dir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check tools, project layout and deployment documents",
		Long: `Check that a deployment project is ready to run.

  - Required client tools are installed and recent enough
  - The config/ and ansible/ layout is complete
  - Fabric and policy documents load and validate
  - No example addresses are left in the inventory or documents
  - .gitignore covers the vault password and env files

Examples:
  # Check the current directory
  sdactl doctor

  # Check another project and get JSON
  sdactl doctor --dir ../site-b --json`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(dir, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

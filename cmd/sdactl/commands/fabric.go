package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/sdactl/cmd/sdactl/handlers"
)

const defaultFabricDocument = "config/fabric-config.json"

// Fabric returns the command group for the fabric controller.
func Fabric(opts *handlers.GlobalOptions) *cobra.Command {
	var conn handlers.ConnectionOptions

	cmd := &cobra.Command{
		Use:   "fabric",
		Short: "Manage the SD-Access fabric on the fabric controller",
	}
	bindConnection(cmd, &conn)

	cmd.AddCommand(fabricDeploy(opts, &conn))
	cmd.AddCommand(&cobra.Command{
		Use:   "devices",
		Short: "List the controller's device inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.FabricDevices(cmd.Context(), opts, conn)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sites",
		Short: "List configured fabric sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.FabricSites(cmd.Context(), opts, conn)
		},
	})

	return cmd
}

// fabricDeploy returns the command that runs the fabric pipeline.
//
// Optional flags:
//
//	--config, -c: Path to the fabric document (default: config/fabric-config.json)
func fabricDeploy(opts *handlers.GlobalOptions, conn *handlers.ConnectionOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create the fabric site, device roles, virtual networks and IP pools",
		Long: `Deploy the fabric described by a fabric document.

The run creates the fabric site, then assigns control-plane, border and edge
roles, creates each virtual network with its IP pool, and finally provisions
every device. A failed item is reported and the run continues; only a failed
fabric site stops it.

Examples:
  # Deploy using the default document
  sdactl fabric deploy --host dnac.example.com -u admin

  # Deploy a specific document and keep the report
  sdactl fabric deploy -c site-a.yaml --report s3://sda-reports/site-a.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.FabricDeploy(cmd.Context(), opts, *conn, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultFabricDocument, "Path to fabric document (JSON or YAML)")

	return cmd
}

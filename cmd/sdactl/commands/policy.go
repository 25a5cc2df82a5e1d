package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/sdactl/cmd/sdactl/handlers"
)

const defaultPolicyDocument = "config/ise-config.json"

// Policy returns the command group for the policy controller.
func Policy(opts *handlers.GlobalOptions) *cobra.Command {
	var conn handlers.ConnectionOptions
	var configPath string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage segmentation policy on the policy controller",
	}
	bindConnection(cmd, &conn)
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPolicyDocument, "Path to policy document (JSON or YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "deploy",
		Short: "Create security groups, network devices, SGACLs and authorization profiles",
		Long: `Deploy the identity policy described by a policy document.

Egress policies are not created by this command; run "sdactl policy egress"
once the security groups and SGACLs exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PolicyDeploy(cmd.Context(), opts, conn, configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "egress",
		Short: "Create the egress matrix cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PolicyEgress(cmd.Context(), opts, conn, configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sgts",
		Short: "List security group tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PolicySGTs(cmd.Context(), opts, conn)
		},
	})

	return cmd
}

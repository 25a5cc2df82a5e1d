// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/sdactl/cmd/sdactl/handlers"
)

// Root returns the root command for the sdactl CLI.
//
// The root command owns the flags shared by every subcommand and organizes
// the command hierarchy.
func Root() *cobra.Command {
	opts := &handlers.GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "sdactl",
		Short:         "Deploy SD-Access fabrics and segmentation policy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ProfilePath, "profile", "", "Path to controller profile (default: sdactl.yaml if present)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log every event and request to stderr")
	flags.StringVar(&opts.ReportPath, "report", "", "Write the run report as JSON to a file or s3://bucket/key")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flags.BoolVar(&opts.Plain, "plain", false, "Print line-oriented progress instead of the live dashboard")

	// Deployment commands
	cmd.AddCommand(Fabric(opts))
	cmd.AddCommand(Policy(opts))

	// Utility commands
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// bindConnection registers the controller connection flags on cmd.
func bindConnection(cmd *cobra.Command, conn *handlers.ConnectionOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&conn.Host, "host", "", "Controller host or URL")
	flags.StringVarP(&conn.Username, "username", "u", "", "Controller username")
	flags.StringVarP(&conn.Password, "password", "p", "", "Controller password (default: $"+handlers.PasswordEnv+" or prompt)")
	flags.BoolVar(&conn.VerifyTLS, "verify-tls", false, "Verify the controller's TLS certificate")
}

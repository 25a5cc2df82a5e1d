// Package main is the entry point for the sdactl CLI.
//
// sdactl deploys an SD-Access fabric from declarative documents. It drives
// the fabric controller (sites, device roles, virtual networks, IP pools,
// provisioning) and the policy controller (security groups, network devices,
// SGACLs, authorization profiles, egress matrix).
//
// Commands: fabric, policy, doctor, version, completion.
//
// For detailed usage information, run:
//
//	sdactl --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/sdactl/cmd/sdactl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

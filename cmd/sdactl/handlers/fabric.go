package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/dnac"
	"github.com/imamik/sdactl/internal/platform/rest"
	"github.com/imamik/sdactl/internal/provisioning"
	"github.com/imamik/sdactl/internal/provisioning/fabric"
)

// loadFabricDocument reads the fabric document (for testing injection).
var loadFabricDocument = config.LoadFabricFile

// FabricDeploy loads the fabric document, logs in to the fabric controller
// and runs the fabric pipeline.
func FabricDeploy(ctx context.Context, g *GlobalOptions, conn ConnectionOptions, configPath string) error {
	logger := newLogger(g)
	observer := newObserver(g, logger)

	doc, err := loadFabricDocument(configPath)
	if err != nil {
		report, runErr := provisioning.FailedReport(fabric.Pipeline, observer, fmt.Errorf("%w: %w", provisioning.ErrConfigLoad, err))
		return finishRun(ctx, g, "Fabric deployment", report, runErr)
	}

	client, sess, err := fabricSession(ctx, g, conn)
	if err != nil {
		report, runErr := provisioning.FailedReport(fabric.Pipeline, observer, err)
		return finishRun(ctx, g, "Fabric deployment", report, runErr)
	}

	timeouts := loadTimeouts()
	waiter := provisioning.FixedDelay{
		AfterSite:    timeouts.SiteSettle,
		BetweenItems: timeouts.ItemSettle,
	}

	report, runErr := runPipeline(ctx, g, logger, "Deploying fabric site "+doc.FabricSite.SiteHierarchy, fabric.PlannedItems(doc),
		func(ctx context.Context, obs provisioning.Observer) (*provisioning.Report, error) {
			deployer := fabric.NewDeployer(client, sess, fabric.WithObserver(obs), fabric.WithWaiter(waiter))
			return deployer.Deploy(ctx, doc)
		})
	return finishRun(ctx, g, "Fabric deployment", report, runErr)
}

// FabricDevices prints the fabric controller's device inventory.
func FabricDevices(ctx context.Context, g *GlobalOptions, conn ConnectionOptions) error {
	client, sess, err := fabricSession(ctx, g, conn)
	if err != nil {
		return err
	}

	devices, err := dnac.ListDevices(ctx, client, sess)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, []string{d.Hostname, d.ManagementIPAddress, d.PlatformID, d.SoftwareVersion, d.Role, d.ReachabilityStatus})
	}
	printTable([]string{"HOSTNAME", "IP", "PLATFORM", "VERSION", "ROLE", "REACHABILITY"}, rows)
	return nil
}

// FabricSites prints the configured fabric sites.
func FabricSites(ctx context.Context, g *GlobalOptions, conn ConnectionOptions) error {
	client, sess, err := fabricSession(ctx, g, conn)
	if err != nil {
		return err
	}

	sites, err := dnac.ListFabricSites(ctx, client, sess)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{s.SiteNameHierarchy, s.FabricType, s.FabricDomainType})
	}
	printTable([]string{"SITE", "TYPE", "DOMAIN"}, rows)
	return nil
}

func fabricSession(ctx context.Context, g *GlobalOptions, conn ConnectionOptions) (*rest.Client, rest.Session, error) {
	ctrl, creds, err := resolveConnection(ctx, g, fabricController, conn)
	if err != nil {
		return nil, rest.Session{}, err
	}

	client := newClient(ctrl, dnac.Controller, loadTimeouts(), newLogger(g))
	sess, err := dnac.Login(ctx, client, creds)
	if err != nil {
		return nil, rest.Session{}, err
	}

	_, _ = fmt.Fprintf(stdout, "Successfully authenticated to DNA Center at %s\n", ctrl.Host)
	return client, sess, nil
}

package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/ise"
	"github.com/imamik/sdactl/internal/platform/rest"
	"github.com/imamik/sdactl/internal/provisioning"
	"github.com/imamik/sdactl/internal/provisioning/policy"
)

// Document loaders (for testing injection). Each validates only the sections
// its pipeline reads.
var (
	loadPolicyDocument = config.LoadPolicyFile
	loadEgressDocument = config.LoadEgressFile
)

// PolicyDeploy creates the security groups, network devices, SGACLs and
// authorization profiles of the policy document.
func PolicyDeploy(ctx context.Context, g *GlobalOptions, conn ConnectionOptions, configPath string) error {
	return runPolicy(ctx, g, conn, configPath, loadPolicyDocument, policy.Pipeline, "Policy deployment", policy.PlannedItems,
		func(ctx context.Context, d *policy.Deployer, doc *config.PolicyDocument) (*provisioning.Report, error) {
			return d.Deploy(ctx, doc)
		})
}

// PolicyEgress creates the egress matrix cells of the policy document.
func PolicyEgress(ctx context.Context, g *GlobalOptions, conn ConnectionOptions, configPath string) error {
	return runPolicy(ctx, g, conn, configPath, loadEgressDocument, policy.EgressPipeline, "Egress deployment", policy.PlannedEgressItems,
		func(ctx context.Context, d *policy.Deployer, doc *config.PolicyDocument) (*provisioning.Report, error) {
			return d.DeployEgress(ctx, doc)
		})
}

type (
	policyLoader func(path string) (*config.PolicyDocument, error)
	policyRun    func(ctx context.Context, d *policy.Deployer, doc *config.PolicyDocument) (*provisioning.Report, error)
)

func runPolicy(ctx context.Context, g *GlobalOptions, conn ConnectionOptions, configPath string, load policyLoader, pipeline, label string, planned func(*config.PolicyDocument) int, run policyRun) error {
	logger := newLogger(g)
	observer := newObserver(g, logger)

	doc, err := load(configPath)
	if err != nil {
		report, runErr := provisioning.FailedReport(pipeline, observer, fmt.Errorf("%w: %w", provisioning.ErrConfigLoad, err))
		return finishRun(ctx, g, label, report, runErr)
	}

	client, sess, err := policySession(ctx, g, conn)
	if err != nil {
		report, runErr := provisioning.FailedReport(pipeline, observer, err)
		return finishRun(ctx, g, label, report, runErr)
	}

	report, runErr := runPipeline(ctx, g, logger, label, planned(doc),
		func(ctx context.Context, obs provisioning.Observer) (*provisioning.Report, error) {
			return run(ctx, policy.NewDeployer(client, sess, policy.WithObserver(obs)), doc)
		})
	return finishRun(ctx, g, label, report, runErr)
}

// PolicySGTs prints the security group tags known to the policy controller.
func PolicySGTs(ctx context.Context, g *GlobalOptions, conn ConnectionOptions) error {
	client, sess, err := policySession(ctx, g, conn)
	if err != nil {
		return err
	}

	groups, err := ise.ListSecurityGroups(ctx, client, sess)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(groups))
	for _, sg := range groups {
		rows = append(rows, []string{sg.Name, sg.Description, sg.ID})
	}
	printTable([]string{"NAME", "DESCRIPTION", "ID"}, rows)
	_, _ = fmt.Fprintln(stdout, strconv.Itoa(len(groups))+" security groups")
	return nil
}

// policySession opens a basic-auth session. The policy controller has no
// login exchange, so bad credentials surface on the first call.
func policySession(ctx context.Context, g *GlobalOptions, conn ConnectionOptions) (*rest.Client, rest.Session, error) {
	ctrl, creds, err := resolveConnection(ctx, g, policyController, conn)
	if err != nil {
		return nil, rest.Session{}, err
	}

	client := newClient(ctrl, ise.Controller, loadTimeouts(), newLogger(g))
	return client, ise.Open(creds), nil
}

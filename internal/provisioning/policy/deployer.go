// Package policy deploys a policy document to the identity controller.
//
// Security groups, network devices, SGACLs and authorization profiles are
// created in that order. Egress matrix cells reference groups and SGACLs by
// name, so they run as a separate pipeline once those exist.
package policy

import (
	"context"
	"fmt"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/ise"
	"github.com/imamik/sdactl/internal/platform/rest"
	"github.com/imamik/sdactl/internal/provisioning"
)

// Pipeline names.
const (
	Pipeline       = "policy"
	EgressPipeline = "egress"
)

// Stage names.
const (
	StageSecurityGroups        = "security-groups"
	StageNetworkDevices        = "network-devices"
	StageSGACLs                = "sgacls"
	StageAuthorizationProfiles = "authorization-profiles"
	StageEgressPolicies        = "egress-policies"
)

// Deployer runs the policy pipelines with one session.
type Deployer struct {
	transport rest.Transport
	session   rest.Session
	waiter    provisioning.Waiter
	observer  provisioning.Observer
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithWaiter sets a pause between items. The default is no pause.
func WithWaiter(w provisioning.Waiter) Option {
	return func(d *Deployer) { d.waiter = w }
}

// WithObserver sets the observer receiving progress events.
func WithObserver(o provisioning.Observer) Option {
	return func(d *Deployer) { d.observer = o }
}

// NewDeployer creates a deployer.
func NewDeployer(t rest.Transport, sess rest.Session, opts ...Option) *Deployer {
	d := &Deployer{
		transport: t,
		session:   sess,
		waiter:    provisioning.NoWait{},
		observer:  provisioning.NopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type step struct {
	name, title string
	ops         []rest.Operation
}

// DeployFile loads the document at path and runs Deploy.
func (d *Deployer) DeployFile(ctx context.Context, path string) (*provisioning.Report, error) {
	doc, err := config.LoadPolicyFile(path)
	if err != nil {
		return provisioning.FailedReport(Pipeline, d.observer, fmt.Errorf("%w: %w", provisioning.ErrConfigLoad, err))
	}
	return d.Deploy(ctx, doc)
}

// DeployEgressFile loads the document at path and runs DeployEgress. Only the
// egress policies have to be valid.
func (d *Deployer) DeployEgressFile(ctx context.Context, path string) (*provisioning.Report, error) {
	doc, err := config.LoadEgressFile(path)
	if err != nil {
		return provisioning.FailedReport(EgressPipeline, d.observer, fmt.Errorf("%w: %w", provisioning.ErrConfigLoad, err))
	}
	return d.DeployEgress(ctx, doc)
}

// Deploy creates every security group, network device, SGACL and
// authorization profile. No item failure stops the run.
func (d *Deployer) Deploy(ctx context.Context, doc *config.PolicyDocument) (*provisioning.Report, error) {
	steps := []step{
		{StageSecurityGroups, "Creating Security Groups", securityGroupOps(doc.SecurityGroups)},
		{StageNetworkDevices, "Adding Network Devices", networkDeviceOps(doc.NetworkDevices)},
		{StageSGACLs, "Creating SGACLs", sgaclOps(doc.SGACLs)},
		{StageAuthorizationProfiles, "Creating Authorization Profiles", profileOps(doc.AuthorizationProfiles)},
	}
	return d.run(ctx, Pipeline, "Deploying identity policy", "ISE Configuration Complete", steps)
}

// DeployEgress creates the egress matrix cells of doc.
func (d *Deployer) DeployEgress(ctx context.Context, doc *config.PolicyDocument) (*provisioning.Report, error) {
	steps := []step{
		{StageEgressPolicies, "Creating Egress Policies", egressOps(doc.EgressPolicies)},
	}
	return d.run(ctx, EgressPipeline, "Deploying egress matrix", "Egress Matrix Complete", steps)
}

func (d *Deployer) run(ctx context.Context, pipeline, start, done string, steps []step) (*provisioning.Report, error) {
	r := provisioning.NewRunner(pipeline, d.transport, d.session, d.observer, d.waiter)
	r.Start(start)

	for _, s := range steps {
		stage := r.Begin(s.name, s.title)
		for _, op := range s.ops {
			r.Apply(ctx, stage, op)
			if err := r.Wait(ctx, provisioning.WaitBetweenItems); err != nil {
				return r.Fail("Configuration interrupted", err)
			}
		}
		r.End(stage)
	}

	return r.Complete(done, ""), nil
}

// PlannedItems returns how many items Deploy attempts for doc.
func PlannedItems(doc *config.PolicyDocument) int {
	return len(doc.SecurityGroups) + len(doc.NetworkDevices) + len(doc.SGACLs) + len(doc.AuthorizationProfiles)
}

// PlannedEgressItems returns how many items DeployEgress attempts for doc.
func PlannedEgressItems(doc *config.PolicyDocument) int {
	return len(doc.EgressPolicies)
}

func securityGroupOps(groups []config.SecurityGroup) []rest.Operation {
	ops := make([]rest.Operation, 0, len(groups))
	for _, g := range groups {
		ops = append(ops, ise.CreateSecurityGroup(g.Name, g.Tag, g.Description))
	}
	return ops
}

func networkDeviceOps(devices []config.NetworkDevice) []rest.Operation {
	ops := make([]rest.Operation, 0, len(devices))
	for _, dev := range devices {
		ops = append(ops, ise.AddNetworkDevice(dev.Name, dev.IP, dev.RADIUSKey, dev.Type))
	}
	return ops
}

func sgaclOps(acls []config.SGACL) []rest.Operation {
	ops := make([]rest.Operation, 0, len(acls))
	for _, a := range acls {
		ops = append(ops, ise.CreateSGACL(a.Name, a.Description, a.ACLContent))
	}
	return ops
}

func profileOps(profiles []config.AuthorizationProfile) []rest.Operation {
	ops := make([]rest.Operation, 0, len(profiles))
	for _, p := range profiles {
		ops = append(ops, ise.CreateAuthorizationProfile(p.Name, p.VLAN, p.SGT, p.Description))
	}
	return ops
}

func egressOps(policies []config.EgressPolicy) []rest.Operation {
	ops := make([]rest.Operation, 0, len(policies))
	for _, p := range policies {
		ops = append(ops, ise.CreateEgressPolicy(p.Name, p.SourceSGT, p.DestinationSGT, p.SGACL))
	}
	return ops
}

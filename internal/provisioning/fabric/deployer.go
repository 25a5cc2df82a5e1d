// Package fabric deploys a fabric document to the orchestration controller.
//
// The run order is fixed: site, control plane devices, border devices, edge
// devices, virtual networks with their IP pools, then provisioning of every
// device. A failed site aborts the run; any other failure is recorded and the
// run continues.
package fabric

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/sdactl/internal/config"
	"github.com/imamik/sdactl/internal/platform/dnac"
	"github.com/imamik/sdactl/internal/platform/rest"
	"github.com/imamik/sdactl/internal/provisioning"
)

// Pipeline names this pipeline in reports and metrics.
const Pipeline = "fabric"

// Stage names.
const (
	StageSite            = "fabric-site"
	StageControlPlane    = "control-plane-devices"
	StageBorder          = "border-devices"
	StageEdge            = "edge-devices"
	StageVirtualNetworks = "virtual-networks"
	StageIPPools         = "ip-pools"
	StageProvision       = "provision"
)

// Default pauses between dependent calls.
const (
	DefaultSiteSettle = 5 * time.Second
	DefaultItemSettle = 2 * time.Second
)

// ProvisioningNote is printed after a successful run.
const ProvisioningNote = "Note: Device provisioning may take 10-20 minutes to complete."

// Deployer runs the fabric pipeline with one session.
type Deployer struct {
	transport rest.Transport
	session   rest.Session
	waiter    provisioning.Waiter
	observer  provisioning.Observer
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithWaiter replaces the default fixed delays.
func WithWaiter(w provisioning.Waiter) Option {
	return func(d *Deployer) { d.waiter = w }
}

// WithObserver sets the observer receiving progress events.
func WithObserver(o provisioning.Observer) Option {
	return func(d *Deployer) { d.observer = o }
}

// NewDeployer creates a deployer. Without options it pauses
// DefaultSiteSettle after the site and DefaultItemSettle after each item.
func NewDeployer(t rest.Transport, sess rest.Session, opts ...Option) *Deployer {
	d := &Deployer{
		transport: t,
		session:   sess,
		waiter:    provisioning.FixedDelay{AfterSite: DefaultSiteSettle, BetweenItems: DefaultItemSettle},
		observer:  provisioning.NopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DeployFile loads the document at path and deploys it. A document that cannot
// be loaded fails with provisioning.ErrConfigLoad before any remote call.
func (d *Deployer) DeployFile(ctx context.Context, path string) (*provisioning.Report, error) {
	doc, err := config.LoadFabricFile(path)
	if err != nil {
		return provisioning.FailedReport(Pipeline, d.observer, fmt.Errorf("%w: %w", provisioning.ErrConfigLoad, err))
	}
	return d.Deploy(ctx, doc)
}

// PlannedItems returns how many items a run of doc attempts or skips: the
// site, every role assignment, a VN and pool per virtual network, and one
// provisioning call per device.
func PlannedItems(doc *config.FabricDocument) int {
	devices := len(doc.AllDevices())
	return 1 + devices + 2*len(doc.VirtualNetworks) + devices
}

// Deploy runs every stage for doc. The returned error is non-nil only when the
// run ended early; item failures are found in the report.
func (d *Deployer) Deploy(ctx context.Context, doc *config.FabricDocument) (*provisioning.Report, error) {
	site := doc.FabricSite.SiteHierarchy
	r := provisioning.NewRunner(Pipeline, d.transport, d.session, d.observer, d.waiter)
	r.Start("Deploying fabric site " + site)

	stage := r.Begin(StageSite, "Creating Fabric Site")
	res := r.Apply(ctx, stage, dnac.CreateFabricSite(site, doc.FabricSite.FabricType))
	r.End(stage)
	if !res.OK {
		return r.Fail("Deployment failed", fmt.Errorf("%w: fabric site %s: %w", provisioning.ErrPrerequisite, site, res.Err))
	}
	if err := r.Wait(ctx, provisioning.WaitAfterSite); err != nil {
		return r.Fail("Deployment interrupted", err)
	}

	roles := []struct {
		name, title string
		devices     []config.FabricDevice
		build       func(config.FabricDevice) rest.Operation
	}{
		{StageControlPlane, "Adding Control Plane Devices", doc.ControlPlaneDevices, func(dev config.FabricDevice) rest.Operation {
			return dnac.AddControlPlaneDevice(dev.IP, site)
		}},
		{StageBorder, "Adding Border Devices", doc.BorderDevices, func(dev config.FabricDevice) rest.Operation {
			return dnac.AddBorderDevice(dev.IP, site, dnac.BorderOptions{RoutingProtocol: dev.RoutingProtocol, InternalASN: dev.ASN})
		}},
		{StageEdge, "Adding Edge Devices", doc.EdgeDevices, func(dev config.FabricDevice) rest.Operation {
			return dnac.AddEdgeDevice(dev.IP, site)
		}},
	}
	for _, role := range roles {
		stage := r.Begin(role.name, role.title)
		for _, dev := range role.devices {
			r.Apply(ctx, stage, role.build(dev))
			if err := r.Wait(ctx, provisioning.WaitBetweenItems); err != nil {
				return r.Fail("Deployment interrupted", err)
			}
		}
		r.End(stage)
	}

	if err := d.deployVirtualNetworks(ctx, r, doc); err != nil {
		return r.Fail("Deployment interrupted", err)
	}

	stage = r.Begin(StageProvision, "Provisioning Devices")
	for _, dev := range doc.AllDevices() {
		r.Apply(ctx, stage, dnac.ProvisionDevice(dev.IP, site))
		if err := r.Wait(ctx, provisioning.WaitBetweenItems); err != nil {
			return r.Fail("Deployment interrupted", err)
		}
	}
	r.End(stage)

	return r.Complete("Fabric Deployment Complete", ProvisioningNote), nil
}

// deployVirtualNetworks creates each network and binds its pool only when the
// network was accepted.
func (d *Deployer) deployVirtualNetworks(ctx context.Context, r *provisioning.Runner, doc *config.FabricDocument) error {
	site := doc.FabricSite.SiteHierarchy
	vns := r.Begin(StageVirtualNetworks, "Creating Virtual Networks")
	pools := r.Track(StageIPPools, "Adding IP Pools")

	for _, vn := range doc.VirtualNetworks {
		res := r.Apply(ctx, vns, dnac.CreateVirtualNetwork(vn.Name, site))
		if res.OK {
			if err := r.Wait(ctx, provisioning.WaitBetweenItems); err != nil {
				return err
			}
			r.Apply(ctx, pools, dnac.AddIPPool(vn.Name, vn.IPPool, vn.Gateway))
		} else {
			r.Skip(pools, dnac.PoolName(vn.Name), "virtual network "+vn.Name+" was not created")
		}
		if err := r.Wait(ctx, provisioning.WaitBetweenItems); err != nil {
			return err
		}
	}

	r.End(vns)
	r.End(pools)
	return nil
}

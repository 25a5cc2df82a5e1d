package dnac

import (
	"net/http"

	"github.com/imamik/sdactl/internal/platform/rest"
)

const sdaPath = "/dna/intent/api/v1/business/sda/"

// Resource kinds.
const (
	KindFabricSite   = "fabric-site"
	KindControlPlane = "control-plane-device"
	KindBorder       = "border-device"
	KindEdge         = "edge-device"
	KindVirtualNet   = "virtual-network"
	KindIPPool       = "virtualnetwork/ippool"
	KindProvision    = "provision-device"
)

// Fixed payload values.
const (
	RouteDistributionProtocol = "LISP_BGP"
	BorderSessionType         = "EXTERNAL"
	TrafficTypeData           = "DATA"
	DefaultRoutingProtocol    = "BGP"
	DefaultInternalASN        = "65001"
)

// FabricSiteRequest creates a fabric site.
type FabricSiteRequest struct {
	SiteNameHierarchy string `json:"siteNameHierarchy"`
	FabricType        string `json:"fabricType"`
}

// DeviceRequest assigns or provisions a device at a site.
type DeviceRequest struct {
	DeviceManagementIPAddress string `json:"deviceManagementIpAddress"`
	SiteNameHierarchy         string `json:"siteNameHierarchy"`
}

// ControlPlaneRequest assigns the control plane role.
type ControlPlaneRequest struct {
	DeviceRequest
	RouteDistributionProtocol string `json:"routeDistributionProtocol"`
}

// BorderRequest assigns the border role.
type BorderRequest struct {
	DeviceRequest
	ExternalDomainRoutingProtocolName string `json:"externalDomainRoutingProtocolName"`
	// The controller's field name is misspelled.
	InternalAutonomousSystemNumber string `json:"internalAutonomouSystemNumber"`
	BorderSessionType              string `json:"borderSessionType"`
}

// VirtualNetworkRequest creates a virtual network at a site.
type VirtualNetworkRequest struct {
	VirtualNetworkName string `json:"virtualNetworkName"`
	SiteNameHierarchy  string `json:"siteNameHierarchy"`
}

// IPPoolRequest binds an address pool to a virtual network.
type IPPoolRequest struct {
	VirtualNetworkName string `json:"virtualNetworkName"`
	IPPoolName         string `json:"ipPoolName"`
	TrafficType        string `json:"trafficType"`
	IPPoolRange        string `json:"ipPoolRange"`
	Gateway            string `json:"gateway"`
}

// BorderOptions overrides the border defaults. Empty fields keep defaults.
type BorderOptions struct {
	RoutingProtocol string
	InternalASN     string
}

func post(kind string, payload any, subject, success string) rest.Operation {
	return rest.Operation{
		Kind:    kind,
		Method:  http.MethodPost,
		Path:    sdaPath + kind,
		Payload: payload,
		Subject: subject,
		Success: success,
	}
}

// CreateFabricSite creates the fabric site every later call refers to.
func CreateFabricSite(siteHierarchy, fabricType string) rest.Operation {
	return post(KindFabricSite, FabricSiteRequest{
		SiteNameHierarchy: siteHierarchy,
		FabricType:        fabricType,
	}, siteHierarchy, "Fabric site created: "+siteHierarchy)
}

// AddControlPlaneDevice assigns the control plane role to a device.
func AddControlPlaneDevice(deviceIP, siteHierarchy string) rest.Operation {
	return post(KindControlPlane, ControlPlaneRequest{
		DeviceRequest:             DeviceRequest{DeviceManagementIPAddress: deviceIP, SiteNameHierarchy: siteHierarchy},
		RouteDistributionProtocol: RouteDistributionProtocol,
	}, deviceIP, "Control plane device added: "+deviceIP)
}

// AddBorderDevice assigns the border role to a device.
func AddBorderDevice(deviceIP, siteHierarchy string, opts BorderOptions) rest.Operation {
	protocol := opts.RoutingProtocol
	if protocol == "" {
		protocol = DefaultRoutingProtocol
	}
	asn := opts.InternalASN
	if asn == "" {
		asn = DefaultInternalASN
	}
	return post(KindBorder, BorderRequest{
		DeviceRequest:                     DeviceRequest{DeviceManagementIPAddress: deviceIP, SiteNameHierarchy: siteHierarchy},
		ExternalDomainRoutingProtocolName: protocol,
		InternalAutonomousSystemNumber:    asn,
		BorderSessionType:                 BorderSessionType,
	}, deviceIP, "Border device added: "+deviceIP)
}

// AddEdgeDevice assigns the edge role to a device.
func AddEdgeDevice(deviceIP, siteHierarchy string) rest.Operation {
	return post(KindEdge, DeviceRequest{
		DeviceManagementIPAddress: deviceIP,
		SiteNameHierarchy:         siteHierarchy,
	}, deviceIP, "Edge device added: "+deviceIP)
}

// CreateVirtualNetwork creates a virtual network at the site.
func CreateVirtualNetwork(name, siteHierarchy string) rest.Operation {
	return post(KindVirtualNet, VirtualNetworkRequest{
		VirtualNetworkName: name,
		SiteNameHierarchy:  siteHierarchy,
	}, name, "Virtual network created: "+name)
}

// PoolName returns the pool name derived from a virtual network name.
func PoolName(vn string) string {
	return vn + "_Pool"
}

// AddIPPool binds a data pool to an existing virtual network.
func AddIPPool(vn, ipPool, gateway string) rest.Operation {
	return post(KindIPPool, IPPoolRequest{
		VirtualNetworkName: vn,
		IPPoolName:         PoolName(vn),
		TrafficType:        TrafficTypeData,
		IPPoolRange:        ipPool,
		Gateway:            gateway,
	}, PoolName(vn), "IP pool added to "+vn+": "+ipPool)
}

// ProvisionDevice pushes fabric configuration to a device.
func ProvisionDevice(deviceIP, siteHierarchy string) rest.Operation {
	return post(KindProvision, DeviceRequest{
		DeviceManagementIPAddress: deviceIP,
		SiteNameHierarchy:         siteHierarchy,
	}, deviceIP, "Device provisioning initiated: "+deviceIP)
}

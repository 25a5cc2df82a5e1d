package config

// Defaults applied when the document leaves a field empty.
const (
	DefaultFabricType      = "FABRIC_SITE"
	DefaultBorderASN       = "65001"
	DefaultRoutingProtocol = "BGP"
	DefaultDeviceType      = "Cisco"
)

// FabricDocument is the desired topology for the fabric controller.
type FabricDocument struct {
	FabricSite          FabricSite       `json:"fabric_site"`
	ControlPlaneDevices []FabricDevice   `json:"control_plane_devices,omitempty"`
	BorderDevices       []FabricDevice   `json:"border_devices,omitempty"`
	EdgeDevices         []FabricDevice   `json:"edge_devices,omitempty"`
	VirtualNetworks     []VirtualNetwork `json:"virtual_networks,omitempty"`
}

// FabricSite is the single site every device and VN is assigned to.
type FabricSite struct {
	SiteHierarchy string `json:"site_hierarchy"`
	FabricType    string `json:"fabric_type,omitempty"`
}

// FabricDevice is a managed device taking a fabric role. ASN and
// RoutingProtocol only apply to border devices.
type FabricDevice struct {
	IP              string `json:"ip"`
	Name            string `json:"name,omitempty"`
	ASN             string `json:"asn,omitempty"`
	RoutingProtocol string `json:"routing_protocol,omitempty"`
}

// VirtualNetwork is an overlay segment and the IP pool bound to it.
type VirtualNetwork struct {
	Name    string `json:"name"`
	IPPool  string `json:"ip_pool"`
	Gateway string `json:"gateway"`
}

// AllDevices returns control-plane, border and edge devices in declaration order.
func (d *FabricDocument) AllDevices() []FabricDevice {
	all := make([]FabricDevice, 0, len(d.ControlPlaneDevices)+len(d.BorderDevices)+len(d.EdgeDevices))
	all = append(all, d.ControlPlaneDevices...)
	all = append(all, d.BorderDevices...)
	all = append(all, d.EdgeDevices...)
	return all
}

// PolicyDocument is the desired segmentation policy for the policy controller.
type PolicyDocument struct {
	SecurityGroups        []SecurityGroup        `json:"security_groups,omitempty"`
	NetworkDevices        []NetworkDevice        `json:"network_devices,omitempty"`
	SGACLs                []SGACL                `json:"sgacls,omitempty"`
	AuthorizationProfiles []AuthorizationProfile `json:"authorization_profiles,omitempty"`
	EgressPolicies        []EgressPolicy         `json:"egress_policies,omitempty"`
}

// SecurityGroup is a Security Group Tag definition.
type SecurityGroup struct {
	Name        string `json:"name"`
	Tag         int    `json:"tag"`
	Description string `json:"description,omitempty"`
}

// NetworkDevice is a RADIUS client registered with the policy controller.
type NetworkDevice struct {
	Name      string `json:"name"`
	IP        string `json:"ip"`
	RADIUSKey string `json:"radius_key"`
	Type      string `json:"type,omitempty"`
}

// SGACL is an access-control rule set applied between tags.
type SGACL struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ACLContent  string `json:"acl_content"`
}

// AuthorizationProfile assigns a VLAN and SGT to authorized sessions.
type AuthorizationProfile struct {
	Name        string `json:"name"`
	VLAN        int    `json:"vlan"`
	SGT         int    `json:"sgt"`
	Description string `json:"description,omitempty"`
}

// EgressPolicy is one source-tag x destination-tag cell of the egress matrix.
type EgressPolicy struct {
	Name           string `json:"name"`
	SourceSGT      string `json:"source_sgt"`
	DestinationSGT string `json:"destination_sgt"`
	SGACL          string `json:"sgacl"`
}

package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
)

// Valid ranges for identifiers carried in the documents.
const (
	MinSGT  = 2
	MaxSGT  = 65519
	MinVLAN = 1
	MaxVLAN = 4094
)

// Validate checks the fabric document for missing fields and malformed
// values and returns every problem found. Problems the controller rejects
// item by item are left to Lint.
func (d *FabricDocument) Validate() error {
	var errs []error

	if d.FabricSite.SiteHierarchy == "" {
		errs = append(errs, errors.New("fabric_site.site_hierarchy is required"))
	}

	errs = append(errs, validateDevices("control_plane_devices", d.ControlPlaneDevices)...)
	errs = append(errs, validateDevices("border_devices", d.BorderDevices)...)
	errs = append(errs, validateDevices("edge_devices", d.EdgeDevices)...)

	for i, dev := range d.BorderDevices {
		if dev.ASN == "" {
			continue
		}
		if asn, err := strconv.ParseUint(dev.ASN, 10, 32); err != nil || asn == 0 {
			errs = append(errs, fmt.Errorf("border_devices[%d]: invalid asn %q", i, dev.ASN))
		}
	}

	for i, vn := range d.VirtualNetworks {
		field := fmt.Sprintf("virtual_networks[%d]", i)
		if vn.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if _, err := netip.ParsePrefix(vn.IPPool); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid ip_pool %q", field, vn.IPPool))
		}
		if _, err := netip.ParseAddr(vn.Gateway); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid gateway %q", field, vn.Gateway))
		}
	}

	return errors.Join(errs...)
}

func validateDevices(field string, devices []FabricDevice) []error {
	var errs []error
	for i, dev := range devices {
		if dev.IP == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: ip is required", field, i))
			continue
		}
		if _, err := netip.ParseAddr(dev.IP); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: invalid ip %q", field, i, dev.IP))
		}
	}
	return errs
}

// Lint reports entries the controller will likely reject: devices listed
// twice in a role, repeated virtual networks and gateways outside their pool.
// A deployment still attempts them.
func (d *FabricDocument) Lint() []string {
	var warnings []string

	roles := []struct {
		field   string
		devices []FabricDevice
	}{
		{"control_plane_devices", d.ControlPlaneDevices},
		{"border_devices", d.BorderDevices},
		{"edge_devices", d.EdgeDevices},
	}
	for _, role := range roles {
		seen := make(map[string]bool)
		for i, dev := range role.devices {
			if dev.IP == "" {
				continue
			}
			if seen[dev.IP] {
				warnings = append(warnings, fmt.Sprintf("%s[%d]: duplicate device %s", role.field, i, dev.IP))
			}
			seen[dev.IP] = true
		}
	}

	seenVN := make(map[string]bool)
	for i, vn := range d.VirtualNetworks {
		field := fmt.Sprintf("virtual_networks[%d]", i)
		if vn.Name != "" && seenVN[vn.Name] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate virtual network %q", field, vn.Name))
		}
		seenVN[vn.Name] = true

		pool, perr := netip.ParsePrefix(vn.IPPool)
		gw, gerr := netip.ParseAddr(vn.Gateway)
		if perr == nil && gerr == nil && !pool.Contains(gw) {
			warnings = append(warnings, fmt.Sprintf("%s: gateway %s is outside ip_pool %s", field, gw, pool))
		}
	}

	return warnings
}

// Validate checks every section of the policy document.
func (d *PolicyDocument) Validate() error {
	return errors.Join(d.ValidatePolicy(), d.ValidateEgress())
}

// ValidatePolicy checks the sections read by the policy pipeline: security
// groups, network devices, SGACLs and authorization profiles.
func (d *PolicyDocument) ValidatePolicy() error {
	var errs []error

	for i, sg := range d.SecurityGroups {
		field := fmt.Sprintf("security_groups[%d]", i)
		if sg.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if sg.Tag < MinSGT || sg.Tag > MaxSGT {
			errs = append(errs, fmt.Errorf("%s: tag %d out of range %d-%d", field, sg.Tag, MinSGT, MaxSGT))
		}
	}

	for i, dev := range d.NetworkDevices {
		field := fmt.Sprintf("network_devices[%d]", i)
		if dev.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if _, err := netip.ParseAddr(dev.IP); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid ip %q", field, dev.IP))
		}
		if dev.RADIUSKey == "" {
			errs = append(errs, fmt.Errorf("%s: radius_key is required", field))
		}
	}

	for i, acl := range d.SGACLs {
		field := fmt.Sprintf("sgacls[%d]", i)
		if acl.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if acl.ACLContent == "" {
			errs = append(errs, fmt.Errorf("%s: acl_content is required", field))
		}
	}

	for i, p := range d.AuthorizationProfiles {
		field := fmt.Sprintf("authorization_profiles[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if p.VLAN < MinVLAN || p.VLAN > MaxVLAN {
			errs = append(errs, fmt.Errorf("%s: vlan %d out of range %d-%d", field, p.VLAN, MinVLAN, MaxVLAN))
		}
		if p.SGT < MinSGT || p.SGT > MaxSGT {
			errs = append(errs, fmt.Errorf("%s: sgt %d out of range %d-%d", field, p.SGT, MinSGT, MaxSGT))
		}
	}

	return errors.Join(errs...)
}

// ValidateEgress checks the egress_policies section.
func (d *PolicyDocument) ValidateEgress() error {
	var errs []error
	for i, e := range d.EgressPolicies {
		field := fmt.Sprintf("egress_policies[%d]", i)
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", field))
		}
		if e.SourceSGT == "" || e.DestinationSGT == "" {
			errs = append(errs, fmt.Errorf("%s: source_sgt and destination_sgt are required", field))
		}
		if e.SGACL == "" {
			errs = append(errs, fmt.Errorf("%s: sgacl is required", field))
		}
	}

	return errors.Join(errs...)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFabric() *FabricDocument {
	return &FabricDocument{
		FabricSite:          FabricSite{SiteHierarchy: "Global/Campus", FabricType: DefaultFabricType},
		ControlPlaneDevices: []FabricDevice{{IP: "10.0.0.1"}},
		BorderDevices:       []FabricDevice{{IP: "10.0.0.2", ASN: "65001"}},
		EdgeDevices:         []FabricDevice{{IP: "10.0.0.3"}},
		VirtualNetworks:     []VirtualNetwork{{Name: "VN1", IPPool: "10.10.0.0/24", Gateway: "10.10.0.1"}},
	}
}

func TestFabricDocument_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(d *FabricDocument)
		wantErr string
	}{
		{"valid", func(_ *FabricDocument) {}, ""},
		{"co-located roles allowed", func(d *FabricDocument) { d.BorderDevices[0].IP = "10.0.0.1" }, ""},
		{"missing hierarchy", func(d *FabricDocument) { d.FabricSite.SiteHierarchy = "" }, "site_hierarchy is required"},
		{"missing ip", func(d *FabricDocument) { d.EdgeDevices[0].IP = "" }, "edge_devices[0]: ip is required"},
		{"bad asn", func(d *FabricDocument) { d.BorderDevices[0].ASN = "AS65001" }, "invalid asn"},
		{"zero asn", func(d *FabricDocument) { d.BorderDevices[0].ASN = "0" }, "invalid asn"},
		{"missing vn name", func(d *FabricDocument) { d.VirtualNetworks[0].Name = "" }, "name is required"},
		{"bad pool", func(d *FabricDocument) { d.VirtualNetworks[0].IPPool = "10.10.0.0" }, "invalid ip_pool"},
		{"bad gateway", func(d *FabricDocument) { d.VirtualNetworks[0].Gateway = "gw" }, "invalid gateway"},
		{"gateway outside pool left to the controller", func(d *FabricDocument) { d.VirtualNetworks[0].Gateway = "10.11.0.1" }, ""},
		{"duplicate device left to the controller", func(d *FabricDocument) {
			d.EdgeDevices = append(d.EdgeDevices, FabricDevice{IP: "10.0.0.3"})
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := validFabric()
			tt.mutate(doc)
			err := doc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFabricDocument_ValidateReportsAll(t *testing.T) {
	t.Parallel()
	doc := &FabricDocument{
		EdgeDevices: []FabricDevice{{IP: "bogus"}},
	}
	err := doc.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "site_hierarchy is required")
		assert.Contains(t, err.Error(), "invalid ip")
	}
}

func TestFabricDocument_Lint(t *testing.T) {
	t.Parallel()
	assert.Empty(t, validFabric().Lint())

	doc := validFabric()
	doc.EdgeDevices = append(doc.EdgeDevices, FabricDevice{IP: "10.0.0.3"})
	doc.VirtualNetworks[0].Gateway = "10.11.0.1"
	doc.VirtualNetworks = append(doc.VirtualNetworks, VirtualNetwork{Name: "VN1", IPPool: "10.20.0.0/24", Gateway: "10.20.0.1"})

	assert.Equal(t, []string{
		"edge_devices[1]: duplicate device 10.0.0.3",
		"virtual_networks[0]: gateway 10.11.0.1 is outside ip_pool 10.10.0.0/24",
		"virtual_networks[1]: duplicate virtual network \"VN1\"",
	}, doc.Lint())
}

func TestPolicyDocument_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     PolicyDocument
		wantErr string
	}{
		{"empty", PolicyDocument{}, ""},
		{"valid group", PolicyDocument{SecurityGroups: []SecurityGroup{{Name: "Emp", Tag: 10}}}, ""},
		{"tag too low", PolicyDocument{SecurityGroups: []SecurityGroup{{Name: "Emp", Tag: 1}}}, "tag 1 out of range"},
		{"tag too high", PolicyDocument{SecurityGroups: []SecurityGroup{{Name: "Emp", Tag: 70000}}}, "out of range"},
		{"device ip", PolicyDocument{NetworkDevices: []NetworkDevice{{Name: "sw", IP: "x", RADIUSKey: "k"}}}, "invalid ip"},
		{"device key", PolicyDocument{NetworkDevices: []NetworkDevice{{Name: "sw", IP: "10.0.0.1"}}}, "radius_key is required"},
		{"acl content", PolicyDocument{SGACLs: []SGACL{{Name: "a"}}}, "acl_content is required"},
		{"profile vlan", PolicyDocument{AuthorizationProfiles: []AuthorizationProfile{{Name: "p", VLAN: 5000, SGT: 10}}}, "vlan 5000"},
		{"profile sgt", PolicyDocument{AuthorizationProfiles: []AuthorizationProfile{{Name: "p", VLAN: 10, SGT: 0}}}, "sgt 0"},
		{"egress endpoints", PolicyDocument{EgressPolicies: []EgressPolicy{{Name: "e", SGACL: "a"}}}, "source_sgt and destination_sgt"},
		{"egress acl", PolicyDocument{EgressPolicies: []EgressPolicy{{Name: "e", SourceSGT: "a", DestinationSGT: "b"}}}, "sgacl is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.doc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPolicyDocument_SectionValidation(t *testing.T) {
	t.Parallel()
	doc := PolicyDocument{
		SecurityGroups: []SecurityGroup{{Name: "Emp", Tag: 10}},
		EgressPolicies: []EgressPolicy{{Name: "x", SourceSGT: "Emp", SGACL: "a"}},
	}
	assert.NoError(t, doc.ValidatePolicy())
	assert.ErrorContains(t, doc.ValidateEgress(), "egress_policies[0]")
	assert.ErrorContains(t, doc.Validate(), "egress_policies[0]")

	doc = PolicyDocument{
		SecurityGroups: []SecurityGroup{{Name: "Emp", Tag: 0}},
		EgressPolicies: []EgressPolicy{{Name: "x", SourceSGT: "Emp", DestinationSGT: "Srv", SGACL: "a"}},
	}
	assert.ErrorContains(t, doc.ValidatePolicy(), "security_groups[0]")
	assert.NoError(t, doc.ValidateEgress())
}

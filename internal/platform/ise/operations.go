// Package ise builds requests for the policy controller's External RESTful
// Services (ERS) API. ERS authenticates every request with basic auth, so
// opening a session performs no network call.
package ise

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/imamik/sdactl/internal/platform/rest"
)

// Controller labels metrics and logs for this API.
const Controller = "ise"

const ersPath = "/ers/config/"

// Resource kinds.
const (
	KindSGT                  = "sgt"
	KindSGACL                = "sgacl"
	KindEgressMatrixCell     = "egressmatrixcell"
	KindNetworkDevice        = "networkdevice"
	KindAuthorizationProfile = "authorizationprofile"
)

// DefaultDeviceType is the device group used when a device has no type.
const DefaultDeviceType = "Cisco"

// Open returns a basic-auth session for creds.
func Open(creds rest.Credentials) rest.Session {
	return rest.BasicSession(creds)
}

// SGT is a security group tag. GenerationID is always "0" on create.
type SGT struct {
	Name         string `json:"name"`
	Value        int    `json:"value"`
	Description  string `json:"description"`
	GenerationID string `json:"generationId"`
}

// SGACL is a security group access control list.
type SGACL struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ACLContent   string `json:"aclcontent"`
	GenerationID string `json:"generationId"`
}

// EgressMatrixCell binds an SGACL to a source/destination tag pair.
type EgressMatrixCell struct {
	Name             string   `json:"name"`
	SourceSgtID      string   `json:"sourceSgtId"`
	DestinationSgtID string   `json:"destinationSgtId"`
	MatrixCellStatus string   `json:"matrixCellStatus"`
	DefaultRule      string   `json:"defaultRule"`
	SGACLs           []string `json:"sgacls"`
}

// NetworkDeviceIP is one address of a network device.
type NetworkDeviceIP struct {
	IPAddress string `json:"ipaddress"`
	Mask      int    `json:"mask"`
}

// AuthenticationSettings holds the RADIUS settings of a network device.
type AuthenticationSettings struct {
	NetworkProtocol    string `json:"networkProtocol"`
	RadiusSharedSecret string `json:"radiusSharedSecret"`
	EnableKeyWrap      bool   `json:"enableKeyWrap"`
}

// NetworkDevice is a RADIUS client.
type NetworkDevice struct {
	Name                   string                 `json:"name"`
	NetworkDeviceIPList    []NetworkDeviceIP      `json:"NetworkDeviceIPList"`
	NetworkDeviceGroupList []string               `json:"NetworkDeviceGroupList"`
	AuthenticationSettings AuthenticationSettings `json:"authenticationSettings"`
}

// VLAN is the VLAN an authorization profile assigns.
type VLAN struct {
	NameID string `json:"nameID"`
	TagID  int    `json:"tagID"`
}

// AttributeValue is one side of an advanced attribute.
type AttributeValue struct {
	AdvancedAttributeValueType string `json:"AdvancedAttributeValueType"`
	DictionaryName             string `json:"dictionaryName,omitempty"`
	AttributeName              string `json:"attributeName,omitempty"`
	Value                      string `json:"value,omitempty"`
}

// AdvancedAttribute is an attribute assignment on an authorization profile.
// The field names carry the controller's spelling.
type AdvancedAttribute struct {
	LeftHandSide  AttributeValue `json:"leftHandSideDictionaryAttribue"`
	RightHandSide AttributeValue `json:"rightHandSideAttribueValue"`
}

// AuthorizationProfile assigns a VLAN and a security group tag on access accept.
type AuthorizationProfile struct {
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	AccessType         string              `json:"accessType"`
	VLAN               VLAN                `json:"vlan"`
	AdvancedAttributes []AdvancedAttribute `json:"advancedAttributes"`
}

func post(kind string, payload any, subject, success string) rest.Operation {
	return rest.Operation{
		Kind:    kind,
		Method:  http.MethodPost,
		Path:    ersPath + kind,
		Payload: payload,
		Subject: subject,
		Success: success,
	}
}

// CreateSecurityGroup creates a security group tag.
func CreateSecurityGroup(name string, tag int, description string) rest.Operation {
	payload := map[string]SGT{"Sgt": {
		Name:         name,
		Value:        tag,
		Description:  description,
		GenerationID: "0",
	}}
	return post(KindSGT, payload, name, fmt.Sprintf("Security group created: %s (SGT %d)", name, tag))
}

// CreateSGACL creates an access list.
func CreateSGACL(name, description, aclContent string) rest.Operation {
	payload := map[string]SGACL{"Sgacl": {
		Name:         name,
		Description:  description,
		ACLContent:   aclContent,
		GenerationID: "0",
	}}
	return post(KindSGACL, payload, name, "SGACL created: "+name)
}

// CreateEgressPolicy binds sgacl to the source/destination pair.
func CreateEgressPolicy(name, sourceSGT, destinationSGT, sgacl string) rest.Operation {
	payload := map[string]EgressMatrixCell{"EgressMatrixCell": {
		Name:             name,
		SourceSgtID:      sourceSGT,
		DestinationSgtID: destinationSGT,
		MatrixCellStatus: "ENABLED",
		DefaultRule:      "NONE",
		SGACLs:           []string{sgacl},
	}}
	return post(KindEgressMatrixCell, payload, name,
		fmt.Sprintf("Egress policy created: %s -> %s", sourceSGT, destinationSGT))
}

// AddNetworkDevice registers a RADIUS client with a /32 address.
func AddNetworkDevice(name, ip, radiusKey, deviceType string) rest.Operation {
	if deviceType == "" {
		deviceType = DefaultDeviceType
	}
	payload := map[string]NetworkDevice{"NetworkDevice": {
		Name:                name,
		NetworkDeviceIPList: []NetworkDeviceIP{{IPAddress: ip, Mask: 32}},
		NetworkDeviceGroupList: []string{
			"Device Type#All Device Types#" + deviceType,
			"Location#All Locations",
			"IPSEC#Is IPSEC Device#No",
		},
		AuthenticationSettings: AuthenticationSettings{
			NetworkProtocol:    "RADIUS",
			RadiusSharedSecret: radiusKey,
			EnableKeyWrap:      false,
		},
	}}
	return post(KindNetworkDevice, payload, name, fmt.Sprintf("Network device added: %s (%s)", name, ip))
}

// SecurityGroupTagValue is the cisco-av-pair value that assigns tag sgt.
func SecurityGroupTagValue(sgt int) string {
	return "cts:security-group-tag=" + strconv.Itoa(sgt)
}

// CreateAuthorizationProfile creates an access-accept profile assigning vlan and sgt.
func CreateAuthorizationProfile(name string, vlan, sgt int, description string) rest.Operation {
	payload := map[string]AuthorizationProfile{"AuthorizationProfile": {
		Name:        name,
		Description: description,
		AccessType:  "ACCESS_ACCEPT",
		VLAN:        VLAN{NameID: strconv.Itoa(vlan), TagID: vlan},
		AdvancedAttributes: []AdvancedAttribute{{
			LeftHandSide: AttributeValue{
				AdvancedAttributeValueType: "AttributeReference",
				DictionaryName:             "Cisco",
				AttributeName:              "cisco-av-pair",
			},
			RightHandSide: AttributeValue{
				AdvancedAttributeValueType: "StaticValue",
				Value:                      SecurityGroupTagValue(sgt),
			},
		}},
	}}
	return post(KindAuthorizationProfile, payload, name, "Authorization profile created: "+name)
}

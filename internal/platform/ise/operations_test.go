package ise

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/sdactl/internal/platform/rest"
)

func payloadJSON(t *testing.T, op rest.Operation) string {
	t.Helper()
	data, err := json.Marshal(op.Payload)
	require.NoError(t, err)
	return string(data)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	sess := Open(rest.Credentials{Username: "ersadmin", Password: "pw"})
	assert.True(t, sess.Authenticated())
	assert.Equal(t, rest.SchemeBasic, sess.Scheme())

	assert.False(t, Open(rest.Credentials{}).Authenticated())
}

func TestCreateSecurityGroup(t *testing.T) {
	t.Parallel()
	op := CreateSecurityGroup("Employees", 10, "Corporate users")

	assert.Equal(t, http.MethodPost, op.Method)
	assert.Equal(t, "/ers/config/sgt", op.Path)
	assert.Equal(t, "Employees", op.Subject)
	assert.Equal(t, "Security group created: Employees (SGT 10)", op.Success)
	assert.JSONEq(t, `{"Sgt":{"name":"Employees","value":10,"description":"Corporate users","generationId":"0"}}`,
		payloadJSON(t, op))
}

func TestCreateSGACL(t *testing.T) {
	t.Parallel()
	op := CreateSGACL("Deny_IP", "", "deny ip")

	assert.Equal(t, "/ers/config/sgacl", op.Path)
	assert.Equal(t, "SGACL created: Deny_IP", op.Success)
	assert.JSONEq(t, `{"Sgacl":{"name":"Deny_IP","description":"","aclcontent":"deny ip","generationId":"0"}}`,
		payloadJSON(t, op))
}

func TestCreateEgressPolicy(t *testing.T) {
	t.Parallel()
	op := CreateEgressPolicy("Guest_to_Emp", "Guests", "Employees", "Deny_IP")

	assert.Equal(t, "/ers/config/egressmatrixcell", op.Path)
	assert.Equal(t, "Guest_to_Emp", op.Subject)
	assert.Equal(t, "Egress policy created: Guests -> Employees", op.Success)
	assert.JSONEq(t, `{"EgressMatrixCell":{"name":"Guest_to_Emp","sourceSgtId":"Guests","destinationSgtId":"Employees",
		"matrixCellStatus":"ENABLED","defaultRule":"NONE","sgacls":["Deny_IP"]}}`, payloadJSON(t, op))
}

func TestAddNetworkDevice(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		deviceType string
		wantGroup  string
	}{
		{"explicit type", "Switch", "Device Type#All Device Types#Switch"},
		{"default type", "", "Device Type#All Device Types#Cisco"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			op := AddNetworkDevice("edge-1", "10.0.0.3", "s3cret", tt.deviceType)

			assert.Equal(t, "/ers/config/networkdevice", op.Path)
			assert.Equal(t, "Network device added: edge-1 (10.0.0.3)", op.Success)
			assert.JSONEq(t, `{"NetworkDevice":{"name":"edge-1",
				"NetworkDeviceIPList":[{"ipaddress":"10.0.0.3","mask":32}],
				"NetworkDeviceGroupList":["`+tt.wantGroup+`","Location#All Locations","IPSEC#Is IPSEC Device#No"],
				"authenticationSettings":{"networkProtocol":"RADIUS","radiusSharedSecret":"s3cret","enableKeyWrap":false}}}`,
				payloadJSON(t, op))
		})
	}
}

func TestCreateAuthorizationProfile(t *testing.T) {
	t.Parallel()
	op := CreateAuthorizationProfile("Employee_Access", 100, 42, "")

	assert.Equal(t, "/ers/config/authorizationprofile", op.Path)
	assert.Equal(t, "Employee_Access", op.Subject)
	assert.Equal(t, "Authorization profile created: Employee_Access", op.Success)
	assert.JSONEq(t, `{"AuthorizationProfile":{"name":"Employee_Access","description":"","accessType":"ACCESS_ACCEPT",
		"vlan":{"nameID":"100","tagID":100},
		"advancedAttributes":[{
			"leftHandSideDictionaryAttribue":{"AdvancedAttributeValueType":"AttributeReference","dictionaryName":"Cisco","attributeName":"cisco-av-pair"},
			"rightHandSideAttribueValue":{"AdvancedAttributeValueType":"StaticValue","value":"cts:security-group-tag=42"}}]}}`,
		payloadJSON(t, op))
}

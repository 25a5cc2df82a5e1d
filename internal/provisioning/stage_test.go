package provisioning

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		Pipeline: "fabric",
		OK:       true,
		Stages: []*StageResult{
			{Name: "fabric-site", Title: "Creating Fabric Site", Attempted: 1, Succeeded: []string{"Global/Campus"}},
			{
				Name:      "edge-devices",
				Title:     "Adding Edge Devices",
				Attempted: 2,
				Succeeded: []string{"10.0.0.3"},
				Failures:  []ItemFailure{{Subject: "10.0.0.4", Err: errors.New("HTTP 500")}},
			},
		},
	}
}

func TestReport_Totals(t *testing.T) {
	t.Parallel()
	r := sampleReport()

	assert.Equal(t, 3, r.Attempted())
	assert.Equal(t, 2, r.Succeeded())
	require.Len(t, r.Failures(), 1)
	assert.Equal(t, "10.0.0.4", r.Failures()[0].Subject)
	assert.False(t, r.Clean())
	assert.True(t, r.Stage("fabric-site").OK())
	assert.Nil(t, r.Stage("provision"))
}

func TestReport_MarshalJSON(t *testing.T) {
	t.Parallel()
	r := sampleReport()
	r.Stages = append(r.Stages, &StageResult{Name: "provision", Title: "Provisioning Devices"})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "fabric", decoded["pipeline"])
	assert.Equal(t, true, decoded["ok"])
	assert.NotContains(t, decoded, "error")

	stages := decoded["stages"].([]any)
	require.Len(t, stages, 3)
	edge := stages[1].(map[string]any)
	failures := edge["failures"].([]any)
	assert.Equal(t, "HTTP 500", failures[0].(map[string]any)["error"])
	assert.Equal(t, []any{}, stages[2].(map[string]any)["succeeded"])
}

func TestReport_MarshalJSONError(t *testing.T) {
	t.Parallel()
	r := &Report{Pipeline: "policy", Err: ErrConfigLoad}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"config load failed"`)
	assert.Contains(t, string(data), `"stages":[]`)
}

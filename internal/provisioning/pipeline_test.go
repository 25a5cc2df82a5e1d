package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/sdactl/internal/platform/rest"
)

// stubTransport fails any path listed in failPaths.
type stubTransport struct {
	calls     []string
	failPaths map[string]error
}

func (s *stubTransport) Send(_ context.Context, _ rest.Session, method, path string, _ any) (rest.Response, error) {
	s.calls = append(s.calls, method+" "+path)
	if err, ok := s.failPaths[path]; ok {
		return rest.Response{}, err
	}
	return rest.Response{StatusCode: 200, Body: json.RawMessage(`{}`)}, nil
}

func testOp(path, subject string) rest.Operation {
	return rest.Operation{Kind: "test", Method: "POST", Path: path, Subject: subject, Success: "Created: " + subject}
}

func TestRunner_ApplyRecordsOutcome(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{failPaths: map[string]error{"/b": errors.New("HTTP 500")}}
	obs := NewMockObserver()
	r := NewRunner("fabric", transport, rest.TokenSession("tok"), obs, nil)

	stage := r.Begin("edge-devices", "Adding Edge Devices")
	assert.True(t, r.Apply(context.Background(), stage, testOp("/a", "10.0.0.1")).OK)
	assert.False(t, r.Apply(context.Background(), stage, testOp("/b", "10.0.0.2")).OK)
	assert.True(t, r.Apply(context.Background(), stage, testOp("/c", "10.0.0.3")).OK)
	r.End(stage)

	assert.Equal(t, []string{"POST /a", "POST /b", "POST /c"}, transport.calls)
	assert.Equal(t, 3, stage.Attempted)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.3"}, stage.Succeeded)
	require.Len(t, stage.Failures, 1)
	assert.Equal(t, "10.0.0.2", stage.Failures[0].Subject)
	assert.EqualError(t, stage.Failures[0].Err, "HTTP 500")

	assert.Equal(t, []EventType{
		EventStageStarted,
		EventResourceCreated,
		EventResourceFailed,
		EventResourceCreated,
		EventStageCompleted,
	}, obs.Types())
	assert.Equal(t, "2/3 succeeded", obs.OfType(EventStageCompleted)[0].Message)
	assert.Equal(t, "fabric", obs.Events()[0].Fields["pipeline"])
}

func TestRunner_ItemEventsCarryKind(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{failPaths: map[string]error{"/ers/config/sgacl": errors.New("HTTP 400")}}
	var buf bytes.Buffer
	obs := newBufferObserver(&buf, 1)
	r := NewRunner("policy", transport, rest.BasicSession(rest.Credentials{Username: "admin", Password: "secret"}), obs, nil)

	stage := r.Begin("sgacls", "Creating SGACLs")
	r.Apply(context.Background(), stage, rest.Operation{Kind: "sgt", Method: "POST", Path: "/ers/config/sgt", Subject: "Employees", Success: "SGT created: Employees"})
	r.Apply(context.Background(), stage, rest.Operation{Kind: "sgacl", Method: "POST", Path: "/ers/config/sgacl", Subject: "Deny_IP"})
	r.End(stage)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var created, failed string
	for _, l := range lines {
		switch {
		case strings.Contains(l, `"event"="resource.created"`):
			created = l
		case strings.Contains(l, `"event"="resource.failed"`):
			failed = l
		}
	}
	assert.Contains(t, created, `"kind"="sgt"`)
	assert.Contains(t, failed, `"kind"="sgacl"`)
}

func TestRunner_UnauthenticatedSessionSendsNothing(t *testing.T) {
	t.Parallel()
	transport := &stubTransport{}
	r := NewRunner("policy", transport, rest.Session{}, nil, nil)

	stage := r.Begin("sgts", "Creating Security Groups")
	res := r.Apply(context.Background(), stage, testOp("/ers/config/sgt", "Employees"))

	assert.False(t, res.OK)
	assert.True(t, rest.IsNotAuthenticated(res.Err))
	assert.Empty(t, transport.calls)
	assert.Equal(t, 1, stage.Failed())
}

func TestRunner_Skip(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	r := NewRunner("fabric", &stubTransport{}, rest.TokenSession("tok"), obs, nil)

	stage := r.Begin("virtual-networks", "Creating Virtual Networks")
	r.Skip(stage, "VN1_Pool", "virtual network failed")

	assert.Equal(t, []string{"VN1_Pool"}, stage.Skipped)
	assert.Zero(t, stage.Attempted)
	assert.Len(t, obs.OfType(EventResourceSkipped), 1)
}

func TestRunner_Complete(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	r := NewRunner("fabric", &stubTransport{}, rest.TokenSession("tok"), obs, nil)
	r.Start("Deploying fabric")
	stage := r.Begin("fabric-site", "Creating Fabric Site")
	r.Apply(context.Background(), stage, testOp("/site", "Global/Campus"))
	r.End(stage)

	report := r.Complete("Fabric Deployment Complete", "provisioning continues in the background")

	assert.True(t, report.OK)
	assert.NoError(t, report.Err)
	assert.False(t, report.Finished.Before(report.Started))
	done := obs.OfType(EventPipelineCompleted)
	require.Len(t, done, 1)
	assert.Equal(t, "provisioning continues in the background", done[0].Fields["note"])
	assert.Equal(t, "1", done[0].Fields["attempted"])
}

func TestRunner_Fail(t *testing.T) {
	t.Parallel()
	obs := NewMockObserver()
	r := NewRunner("fabric", &stubTransport{}, rest.TokenSession("tok"), obs, nil)

	cause := errors.New("site rejected")
	report, err := r.Fail("Fabric site creation failed", cause)

	require.ErrorIs(t, err, cause)
	assert.False(t, report.OK)
	assert.Equal(t, cause, report.Err)
	assert.Len(t, obs.OfType(EventPipelineFailed), 1)
}

func TestRunner_WaitPropagatesCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen []WaitPoint
	w := WaitFunc(func(ctx context.Context, p WaitPoint) error {
		seen = append(seen, p)
		return ctx.Err()
	})
	r := NewRunner("fabric", &stubTransport{}, rest.TokenSession("tok"), nil, w)

	err := r.Wait(ctx, WaitAfterSite)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []WaitPoint{WaitAfterSite}, seen)
}

func TestFailedReport(t *testing.T) {
	t.Parallel()
	report, err := FailedReport("policy", nil, ErrConfigLoad)

	require.ErrorIs(t, err, ErrConfigLoad)
	assert.False(t, report.OK)
	assert.Empty(t, report.Stages)
	assert.Equal(t, "policy", report.Pipeline)
}

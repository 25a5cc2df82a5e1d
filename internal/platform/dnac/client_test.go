package dnac

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/sdactl/internal/platform/rest"
)

const testHost = "https://dnac.lab"

// newMockedClient returns a rest client whose traffic is served by gock.
func newMockedClient(t *testing.T) *rest.Client {
	t.Helper()
	hc := &http.Client{}
	gock.InterceptClient(hc)
	t.Cleanup(func() {
		gock.RestoreClient(hc)
		gock.Off()
	})
	return rest.NewClient(rest.Config{Host: testHost, Controller: Controller, HTTPClient: hc})
}

func TestLogin_Success(t *testing.T) {
	client := newMockedClient(t)
	gock.New(testHost).
		Post(LoginPath).
		MatchHeader("Authorization", "^Basic ").
		MatchHeader("Content-Type", "application/json").
		Reply(200).
		JSON(map[string]string{"Token": "abc123"})

	sess, err := Login(context.Background(), client, rest.Credentials{Username: "admin", Password: "secret"})

	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, rest.SchemeToken, sess.Scheme())
	assert.True(t, gock.IsDone())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply func(r *gock.Response)
	}{
		{"unauthorized", func(r *gock.Response) { r.Status(401).BodyString(`{"error":"bad credentials"}`) }},
		{"missing token", func(r *gock.Response) { r.Status(200).JSON(map[string]string{"other": "x"}) }},
		{"empty token", func(r *gock.Response) { r.Status(200).JSON(map[string]string{"Token": ""}) }},
		{"not json", func(r *gock.Response) { r.Status(200).BodyString("<html>") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newMockedClient(t)
			tt.reply(gock.New(testHost).Post(LoginPath).Reply(200))

			sess, err := Login(context.Background(), client, rest.Credentials{Username: "admin", Password: "bad"})

			require.ErrorIs(t, err, rest.ErrAuthentication)
			assert.False(t, sess.Authenticated())
		})
	}
}

func TestLogin_SessionDrivesRequests(t *testing.T) {
	client := newMockedClient(t)
	gock.New(testHost).
		Post(LoginPath).
		Reply(200).
		JSON(map[string]string{"Token": "abc123"})
	gock.New(testHost).
		Post(sdaPath + KindFabricSite).
		MatchHeader(rest.TokenHeader, "^abc123$").
		JSON(map[string]string{"siteNameHierarchy": "Global/Campus", "fabricType": "FABRIC_SITE"}).
		Reply(200).
		JSON(map[string]string{"status": "pending"})

	sess, err := Login(context.Background(), client, rest.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)

	res := rest.Execute(context.Background(), client, sess, CreateFabricSite("Global/Campus", "FABRIC_SITE"))

	require.NoError(t, res.Err)
	assert.True(t, res.OK)
	assert.JSONEq(t, `{"status":"pending"}`, string(res.Payload))
	assert.True(t, gock.IsDone())
}

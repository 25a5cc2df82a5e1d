// Package dnac builds requests for the fabric orchestration controller's
// intent API and performs its token login.
package dnac

import (
	"context"
	"fmt"

	"github.com/imamik/sdactl/internal/platform/rest"
)

// Controller labels metrics and logs for this API.
const Controller = "dnac"

// LoginPath is the token endpoint.
const LoginPath = "/dna/system/api/v1/auth/token"

// Authenticator performs the basic-auth login exchange.
type Authenticator interface {
	Login(ctx context.Context, path string, creds rest.Credentials) (rest.Response, error)
}

type tokenResponse struct {
	Token string `json:"Token"`
}

// Login exchanges credentials for a token session. On any failure the zero
// Session is returned together with an error wrapping rest.ErrAuthentication.
func Login(ctx context.Context, a Authenticator, creds rest.Credentials) (rest.Session, error) {
	resp, err := a.Login(ctx, LoginPath, creds)
	if err != nil {
		return rest.Session{}, fmt.Errorf("%w: %w", rest.ErrAuthentication, err)
	}

	var body tokenResponse
	if err := resp.Decode(&body); err != nil {
		return rest.Session{}, fmt.Errorf("%w: %w", rest.ErrAuthentication, err)
	}
	if body.Token == "" {
		return rest.Session{}, fmt.Errorf("%w: response has no Token", rest.ErrAuthentication)
	}

	return rest.TokenSession(body.Token), nil
}

package dnac

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imamik/sdactl/internal/platform/rest"
)

const (
	networkDevicePath = "/dna/intent/api/v1/network-device"
	fabricSitePath    = sdaPath + KindFabricSite
)

// Device is an inventory entry. Only the fields shown by the CLI are decoded.
type Device struct {
	ID                  string `json:"id"`
	Hostname            string `json:"hostname"`
	ManagementIPAddress string `json:"managementIpAddress"`
	PlatformID          string `json:"platformId"`
	SoftwareVersion     string `json:"softwareVersion"`
	Role                string `json:"role"`
	ReachabilityStatus  string `json:"reachabilityStatus"`
}

// FabricSite is a fabric site entry.
type FabricSite struct {
	ID                string `json:"id"`
	SiteNameHierarchy string `json:"siteNameHierarchy"`
	FabricType        string `json:"fabricType"`
	FabricDomainType  string `json:"fabricDomainType"`
}

type listResponse[T any] struct {
	Response []T `json:"response"`
}

// ListDevices returns the controller's device inventory.
func ListDevices(ctx context.Context, t rest.Transport, sess rest.Session) ([]Device, error) {
	return list[Device](ctx, t, sess, networkDevicePath)
}

// ListFabricSites returns the configured fabric sites.
func ListFabricSites(ctx context.Context, t rest.Transport, sess rest.Session) ([]FabricSite, error) {
	return list[FabricSite](ctx, t, sess, fabricSitePath)
}

func list[T any](ctx context.Context, t rest.Transport, sess rest.Session, path string) ([]T, error) {
	if !sess.Authenticated() {
		return nil, rest.ErrNotAuthenticated
	}

	resp, err := t.Send(ctx, sess, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	var body listResponse[T]
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	return body.Response, nil
}

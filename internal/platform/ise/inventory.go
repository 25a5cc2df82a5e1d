package ise

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imamik/sdactl/internal/platform/rest"
)

// Resource is an ERS search result entry.
type Resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type searchResponse struct {
	SearchResult struct {
		Total     int        `json:"total"`
		Resources []Resource `json:"resources"`
	} `json:"SearchResult"`
}

// ListSecurityGroups returns the first page of security group tags.
func ListSecurityGroups(ctx context.Context, t rest.Transport, sess rest.Session) ([]Resource, error) {
	if !sess.Authenticated() {
		return nil, rest.ErrNotAuthenticated
	}

	resp, err := t.Send(ctx, sess, http.MethodGet, ersPath+KindSGT, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list security groups: %w", err)
	}

	var body searchResponse
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to list security groups: %w", err)
	}
	return body.SearchResult.Resources, nil
}

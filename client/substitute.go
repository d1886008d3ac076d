package client

import (
	"context"
	"net/url"

	"github.com/viant/shiftmate/schema"
)

func substitutePath(id, action string) string {
	return "/substitutes/" + url.PathEscape(id) + "/" + action
}

// ListSubstituteRequests lists a store's substitute requests; an empty status lists all
func (c *Client) ListSubstituteRequests(ctx context.Context, storeID string, status schema.SubstituteStatus) *schema.Result[[]*schema.SubstituteRequest] {
	options := c.resource()
	if status != "" {
		options = append(options, WithQuery("status", string(status)))
	}
	return Get[[]*schema.SubstituteRequest](ctx, c, storePath(storeID, "substitutes"), options...)
}

// RequestSubstitute asks for somebody to take over one of the caller's shifts
func (c *Client) RequestSubstitute(ctx context.Context, storeID string, request *schema.NewSubstituteRequest) *schema.Result[*schema.SubstituteRequest] {
	return Post[*schema.SubstituteRequest](ctx, c, storePath(storeID, "substitutes"), request, c.resource()...)
}

// ClaimSubstitute volunteers the caller for an open substitute request
func (c *Client) ClaimSubstitute(ctx context.Context, id string) *schema.Result[*schema.SubstituteRequest] {
	return Post[*schema.SubstituteRequest](ctx, c, substitutePath(id, "claim"), nil, c.resource()...)
}

// ApproveSubstitute confirms a claimed substitute request
func (c *Client) ApproveSubstitute(ctx context.Context, id string) *schema.Result[*schema.SubstituteRequest] {
	return Post[*schema.SubstituteRequest](ctx, c, substitutePath(id, "approve"), nil, c.resource()...)
}

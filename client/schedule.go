package client

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/viant/shiftmate/schema"
)

// DateLayout formats period boundaries in query parameters
const DateLayout = "2006-01-02"

func storePath(storeID, resource string) string {
	return "/stores/" + url.PathEscape(storeID) + "/" + resource
}

func period(from, to time.Time) []RequestOption {
	return []RequestOption{WithQuery("from", from.Format(DateLayout)), WithQuery("to", to.Format(DateLayout))}
}

// ListShiftTemplates lists a store's recurring shift definitions
func (c *Client) ListShiftTemplates(ctx context.Context, storeID string) *schema.Result[[]*schema.ShiftTemplate] {
	return Get[[]*schema.ShiftTemplate](ctx, c, storePath(storeID, "shift-templates"), c.resource()...)
}

// CreateShiftTemplate creates a template in template.StoreID
func (c *Client) CreateShiftTemplate(ctx context.Context, template *schema.ShiftTemplate) *schema.Result[*schema.ShiftTemplate] {
	if template == nil || template.StoreID == "" {
		return schema.Fail[*schema.ShiftTemplate](schema.NewError(schema.CodeInvalidRequest, "template store id is required", nil))
	}
	return Post[*schema.ShiftTemplate](ctx, c, storePath(template.StoreID, "shift-templates"), template, c.resource()...)
}

// DeleteShiftTemplate removes a template
func (c *Client) DeleteShiftTemplate(ctx context.Context, storeID, id string) *schema.Result[bool] {
	result := Delete[json.RawMessage](ctx, c, storePath(storeID, "shift-templates/"+url.PathEscape(id)), c.resource()...)
	if !result.Success {
		return schema.Fail[bool](result.Error)
	}
	return schema.Ok(true)
}

// ListShifts lists the shifts starting within [from, to], both days inclusive
func (c *Client) ListShifts(ctx context.Context, storeID string, from, to time.Time) *schema.Result[[]*schema.Shift] {
	return Get[[]*schema.Shift](ctx, c, storePath(storeID, "shifts"), c.resource(period(from, to)...)...)
}

package client

import (
	"context"
	"time"

	"github.com/viant/shiftmate/schema"
)

// EstimatePayroll returns the server computed hours, pay and labor cost for a period
func (c *Client) EstimatePayroll(ctx context.Context, storeID string, from, to time.Time) *schema.Result[*schema.PayrollEstimate] {
	return Get[*schema.PayrollEstimate](ctx, c, storePath(storeID, "payroll/estimate"), c.resource(period(from, to)...)...)
}

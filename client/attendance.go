package client

import (
	"context"
	"time"

	"github.com/viant/shiftmate/schema"
)

const (
	clockInPath  = "/attendance/clock-in"
	clockOutPath = "/attendance/clock-out"
)

// ClockIn starts an attendance record, identifying the employee by PIN or OTP
func (c *Client) ClockIn(ctx context.Context, request *schema.ClockRequest) *schema.Result[*schema.AttendanceRecord] {
	return c.clock(ctx, clockInPath, request)
}

// ClockOut closes the employee's open attendance record
func (c *Client) ClockOut(ctx context.Context, request *schema.ClockRequest) *schema.Result[*schema.AttendanceRecord] {
	return c.clock(ctx, clockOutPath, request)
}

// ListAttendance lists the records clocked in within [from, to], both days inclusive
func (c *Client) ListAttendance(ctx context.Context, storeID string, from, to time.Time) *schema.Result[[]*schema.AttendanceRecord] {
	return Get[[]*schema.AttendanceRecord](ctx, c, storePath(storeID, "attendance"), c.resource(period(from, to)...)...)
}

func (c *Client) clock(ctx context.Context, path string, request *schema.ClockRequest) *schema.Result[*schema.AttendanceRecord] {
	if request == nil {
		return schema.Fail[*schema.AttendanceRecord](schema.NewError(schema.CodeInvalidRequest, "clock request was nil", nil))
	}
	switch request.Method {
	case schema.ClockMethodPIN, schema.ClockMethodOTP:
	default:
		return schema.Fail[*schema.AttendanceRecord](schema.NewError(schema.CodeInvalidRequest, "unsupported clock method: "+string(request.Method), nil))
	}
	return Post[*schema.AttendanceRecord](ctx, c, path, request, c.resource()...)
}

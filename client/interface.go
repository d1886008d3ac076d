package client

import (
	"context"
	"encoding/json"
	"time"

	"github.com/viant/shiftmate/schema"
)

// Interface defines the client operations
type Interface interface {
	// Do executes a raw request
	Do(ctx context.Context, request *Request) *schema.Result[json.RawMessage]

	Login(ctx context.Context, request *schema.LoginRequest) *schema.Result[*schema.Credentials]

	LoginWithPIN(ctx context.Context, request *schema.PinLoginRequest) *schema.Result[*schema.Credentials]

	RequestOTP(ctx context.Context, phone string) *schema.Result[*schema.OTPChallenge]

	VerifyOTP(ctx context.Context, request *schema.OTPVerifyRequest) *schema.Result[*schema.Credentials]

	Logout(ctx context.Context) *schema.Result[bool]

	// Me returns the signed-in user
	Me(ctx context.Context) *schema.Result[*schema.User]

	ListShiftTemplates(ctx context.Context, storeID string) *schema.Result[[]*schema.ShiftTemplate]

	CreateShiftTemplate(ctx context.Context, template *schema.ShiftTemplate) *schema.Result[*schema.ShiftTemplate]

	DeleteShiftTemplate(ctx context.Context, storeID, id string) *schema.Result[bool]

	ListShifts(ctx context.Context, storeID string, from, to time.Time) *schema.Result[[]*schema.Shift]

	ClockIn(ctx context.Context, request *schema.ClockRequest) *schema.Result[*schema.AttendanceRecord]

	ClockOut(ctx context.Context, request *schema.ClockRequest) *schema.Result[*schema.AttendanceRecord]

	ListAttendance(ctx context.Context, storeID string, from, to time.Time) *schema.Result[[]*schema.AttendanceRecord]

	ListSubstituteRequests(ctx context.Context, storeID string, status schema.SubstituteStatus) *schema.Result[[]*schema.SubstituteRequest]

	RequestSubstitute(ctx context.Context, storeID string, request *schema.NewSubstituteRequest) *schema.Result[*schema.SubstituteRequest]

	ClaimSubstitute(ctx context.Context, id string) *schema.Result[*schema.SubstituteRequest]

	ApproveSubstitute(ctx context.Context, id string) *schema.Result[*schema.SubstituteRequest]

	// EstimatePayroll returns the server computed payroll estimate
	EstimatePayroll(ctx context.Context, storeID string, from, to time.Time) *schema.Result[*schema.PayrollEstimate]

	Close() error
}

// Ensure Client implements Interface
var _ Interface = (*Client)(nil)

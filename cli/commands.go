package cli

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"

	"github.com/viant/shiftmate/client"
	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/export"
	"github.com/viant/shiftmate/schema"
)

// LoginCommand signs in with one of the supported methods
type LoginCommand struct {
	Email      string `short:"e" long:"email" description:"account email"`
	Password   string `short:"p" long:"password" env:"SHIFTMATE_PASSWORD" description:"account password"`
	Store      string `short:"s" long:"store" description:"store id for kiosk PIN login"`
	EmployeeNo string `long:"employee" description:"employee number for kiosk PIN login"`
	PIN        string `long:"pin" env:"SHIFTMATE_PIN" description:"kiosk PIN"`
	Phone      string `long:"phone" description:"phone number for OTP login"`
	Code       string `long:"code" description:"OTP code; without it an OTP is requested"`
	app        *App
}

func (c *LoginCommand) Execute(args []string) error {
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	ctx := c.app.ctx
	switch {
	case c.Email != "":
		return c.signedIn(cli, cli.Login(ctx, &schema.LoginRequest{Email: c.Email, Password: c.Password}))
	case c.EmployeeNo != "":
		return c.signedIn(cli, cli.LoginWithPIN(ctx, &schema.PinLoginRequest{StoreID: c.Store, EmployeeNo: c.EmployeeNo, PIN: c.PIN}))
	case c.Phone != "" && c.Code == "":
		return emit(c.app, cli.RequestOTP(ctx, c.Phone))
	case c.Phone != "":
		return c.signedIn(cli, cli.VerifyOTP(ctx, &schema.OTPVerifyRequest{Phone: c.Phone, Code: c.Code}))
	}
	return errors.New("login requires --email, --employee or --phone")
}

// Session summarizes a sign in without exposing the tokens
type Session struct {
	SignedIn  bool         `json:"signedIn"`
	User      *schema.User `json:"user,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

func (c *LoginCommand) signedIn(cli *client.Client, result *schema.Result[*schema.Credentials]) error {
	if !result.Success {
		return c.app.failure(result.Error)
	}
	session := &Session{SignedIn: true}
	if expiry, ok := store.Expiry(result.Data.AccessToken); ok {
		session.ExpiresAt = &expiry
	}
	if me := cli.Me(c.app.ctx); me.Success {
		session.User = me.Data
	}
	return emit(c.app, schema.Ok(session))
}

// LogoutCommand ends the session
type LogoutCommand struct {
	app *App
}

func (c *LogoutCommand) Execute(args []string) error {
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	return emit(c.app, cli.Logout(c.app.ctx))
}

// ClockCommand clocks an employee in or out; a PIN selects the PIN method, otherwise OTP is used
type ClockCommand struct {
	Store      string `short:"s" long:"store" required:"true" description:"store id"`
	EmployeeNo string `long:"employee" description:"employee number (PIN method)"`
	PIN        string `long:"pin" env:"SHIFTMATE_PIN" description:"kiosk PIN"`
	Phone      string `long:"phone" description:"phone number (OTP method)"`
	Code       string `long:"code" description:"OTP code"`
	out        bool
	app        *App
}

func (c *ClockCommand) request() *schema.ClockRequest {
	ret := &schema.ClockRequest{StoreID: c.Store}
	if c.PIN != "" {
		ret.Method = schema.ClockMethodPIN
		ret.EmployeeNo = c.EmployeeNo
		ret.PIN = c.PIN
		return ret
	}
	ret.Method = schema.ClockMethodOTP
	ret.Phone = c.Phone
	ret.Code = c.Code
	return ret
}

func (c *ClockCommand) Execute(args []string) error {
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	if c.out {
		return emit(c.app, cli.ClockOut(c.app.ctx, c.request()))
	}
	return emit(c.app, cli.ClockIn(c.app.ctx, c.request()))
}

// ShiftsCommand lists shifts
type ShiftsCommand struct {
	Store string `short:"s" long:"store" required:"true" description:"store id"`
	Period
	app *App
}

func (c *ShiftsCommand) Execute(args []string) error {
	from, to, err := c.Range(time.Now())
	if err != nil {
		return err
	}
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	return emit(c.app, cli.ListShifts(c.app.ctx, c.Store, from, to))
}

// SubsCommand lists substitute requests, or opens one when --shift is given
type SubsCommand struct {
	Store  string `short:"s" long:"store" required:"true" description:"store id"`
	Status string `long:"status" choice:"OPEN" choice:"CLAIMED" choice:"APPROVED" description:"filter by status"`
	Shift  string `long:"shift" description:"shift id to request a substitute for"`
	Reason string `long:"reason" description:"reason shown to colleagues"`
	app    *App
}

func (c *SubsCommand) Execute(args []string) error {
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	if c.Shift != "" {
		return emit(c.app, cli.RequestSubstitute(c.app.ctx, c.Store, &schema.NewSubstituteRequest{ShiftID: c.Shift, Reason: c.Reason}))
	}
	return emit(c.app, cli.ListSubstituteRequests(c.app.ctx, c.Store, schema.SubstituteStatus(c.Status)))
}

// ClaimCommand claims a substitute request, or approves a claimed one
type ClaimCommand struct {
	Approve bool `long:"approve" description:"approve the claim (managers)"`
	Args    struct {
		ID string `positional-arg-name:"request-id" required:"true"`
	} `positional-args:"true"`
	app *App
}

func (c *ClaimCommand) Execute(args []string) error {
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	if c.Approve {
		return emit(c.app, cli.ApproveSubstitute(c.app.ctx, c.Args.ID))
	}
	return emit(c.app, cli.ClaimSubstitute(c.app.ctx, c.Args.ID))
}

// PayrollCommand estimates labor cost
type PayrollCommand struct {
	Store string `short:"s" long:"store" required:"true" description:"store id"`
	Period
	XLSX string `long:"xlsx" description:"write an attendance and payroll workbook to this path or afs URL"`
	app  *App
}

func (c *PayrollCommand) Execute(args []string) error {
	from, to, err := c.Range(time.Now())
	if err != nil {
		return err
	}
	cli, err := c.app.connect()
	if err != nil {
		return err
	}
	estimate := cli.EstimatePayroll(c.app.ctx, c.Store, from, to)
	if !estimate.Success || c.XLSX == "" {
		return emit(c.app, estimate)
	}
	if err := c.export(cli, estimate.Data, from, to); err != nil {
		return err
	}
	return emit(c.app, estimate)
}

func (c *PayrollCommand) export(cli *client.Client, estimate *schema.PayrollEstimate, from, to time.Time) error {
	ctx := c.app.ctx
	attendance := cli.ListAttendance(ctx, c.Store, from, to)
	if !attendance.Success {
		return c.app.failure(attendance.Error)
	}
	buffer := &bytes.Buffer{}
	if err := export.Timesheet(buffer, attendance.Data, estimate); err != nil {
		return err
	}
	if err := afs.New().Upload(ctx, c.XLSX, 0o644, buffer); err != nil {
		return fmt.Errorf("failed to write %v: %w", c.XLSX, err)
	}
	return nil
}

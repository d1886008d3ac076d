package client

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/viant/shiftmate/schema"
)

const (
	loginPath      = "/auth/login"
	pinLoginPath   = "/auth/login/pin"
	otpRequestPath = "/auth/otp/request"
	otpVerifyPath  = "/auth/otp/verify"
	logoutPath     = "/auth/logout"
	mePath         = "/users/me"
)

type logoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Login signs in with email and password and stores the issued credentials
func (c *Client) Login(ctx context.Context, request *schema.LoginRequest) *schema.Result[*schema.Credentials] {
	return c.signIn(ctx, loginPath, request)
}

// LoginWithPIN signs staff in on a store kiosk
func (c *Client) LoginWithPIN(ctx context.Context, request *schema.PinLoginRequest) *schema.Result[*schema.Credentials] {
	return c.signIn(ctx, pinLoginPath, request)
}

// RequestOTP asks the server to text a one time password to phone
func (c *Client) RequestOTP(ctx context.Context, phone string) *schema.Result[*schema.OTPChallenge] {
	return Post[*schema.OTPChallenge](ctx, c, otpRequestPath, &schema.OTPRequest{Phone: phone}, c.resource()...)
}

// VerifyOTP exchanges a one time password for credentials
func (c *Client) VerifyOTP(ctx context.Context, request *schema.OTPVerifyRequest) *schema.Result[*schema.Credentials] {
	return c.signIn(ctx, otpVerifyPath, request)
}

// Logout revokes the refresh token on the server. Local credentials are cleared
// whatever the server answers.
func (c *Client) Logout(ctx context.Context) *schema.Result[bool] {
	defer c.tokens.Clear(ctx)
	refreshToken := c.tokens.RefreshToken(ctx)
	if refreshToken == "" && c.tokens.AccessToken(ctx) == "" {
		return schema.Ok(true)
	}
	result := Post[json.RawMessage](ctx, c, logoutPath, &logoutRequest{RefreshToken: refreshToken}, c.resource()...)
	if !result.Success {
		return schema.Fail[bool](result.Error)
	}
	return schema.Ok(true)
}

// Me returns the signed-in user
func (c *Client) Me(ctx context.Context) *schema.Result[*schema.User] {
	return Get[*schema.User](ctx, c, mePath, c.resource()...)
}

func (c *Client) signIn(ctx context.Context, path string, request interface{}) *schema.Result[*schema.Credentials] {
	if request == nil {
		return schema.Fail[*schema.Credentials](schema.NewError(schema.CodeInvalidRequest, "request was nil", nil))
	}
	result := Post[*schema.Credentials](ctx, c, path, request, c.resource()...)
	if !result.Success {
		return result
	}
	if result.Data == nil || result.Data.AccessToken == "" {
		return schema.Fail[*schema.Credentials](schema.NewDecodeError(errors.New("response missing access token")))
	}
	c.tokens.Set(ctx, result.Data)
	return result
}

// Package client implements the ShiftMate API client.
//
// A Client executes one logical request at a time and always answers with a
// schema.Result: transport failures, missing credentials and server errors are
// classified into error codes instead of being returned as Go errors. Token
// attachment, refresh and the single replay on an expired token are delegated to
// the http.Client transport (see client/auth/transport).
//
// Typed helpers cover the ShiftMate resources:
//   - Auth: Login, LoginWithPIN, RequestOTP, VerifyOTP, Logout, Me.
//   - Schedule: shift templates and generated shifts.
//   - Attendance: PIN or OTP clock-in/out and attendance listing.
//   - Substitutes: requesting, claiming and approving substitute shifts.
//   - Payroll: server computed hours and labor cost estimates.
//
// Example:
//
//	cli := client.New(baseURL, tokens, client.WithHTTPClient(&http.Client{Transport: rt}))
//	if res := cli.Login(ctx, &schema.LoginRequest{Email: email, Password: password}); !res.Success {
//		log.Fatal(res.Error)
//	}
//	shifts := cli.ListShifts(ctx, storeID, from, to)
package client

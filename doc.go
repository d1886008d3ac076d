// Package shiftmate wires the ShiftMate API client.
//
// NewClient assembles the token store, the refresh coordinator, the authorizing
// transport and the request executor from ClientOptions, which can be populated
// from a YAML file, environment variables (LoadOptions) or CLI flags.
//
// Example:
//
//	options, _ := shiftmate.LoadOptions("shiftmate.yaml")
//	cli, _ := shiftmate.NewClient(ctx, options, shiftmate.WithAuthExpired(func(ctx context.Context) {
//		// prompt the user to sign in again
//	}))
//	defer cli.Close()
//	res := cli.Login(ctx, &schema.LoginRequest{Email: email, Password: password})
package shiftmate

package cli

// Options defines the global flags and commands
type Options struct {
	Config string `short:"c" long:"config" description:"config file"`
	URL    string `short:"u" long:"url" description:"ShiftMate API base URL"`
	Tokens string `short:"t" long:"tokens" description:"token storage: file path, afs URL or sqlite://path"`
	Key    string `short:"k" long:"token-key" description:"encrypt the token file with this scy key URL, e.g. blowfish://default"`

	Login    LoginCommand   `command:"login" description:"sign in with email/password, kiosk PIN or OTP"`
	Logout   LogoutCommand  `command:"logout" description:"revoke and forget stored credentials"`
	ClockIn  ClockCommand   `command:"clock-in" description:"clock an employee in"`
	ClockOut ClockCommand   `command:"clock-out" description:"clock an employee out"`
	Shifts   ShiftsCommand  `command:"shifts" description:"list shifts of a store"`
	Subs     SubsCommand    `command:"subs" description:"list or open substitute requests"`
	Claim    ClaimCommand   `command:"claim" description:"claim or approve a substitute request"`
	Payroll  PayrollCommand `command:"payroll" description:"estimate payroll, optionally exporting an xlsx timesheet"`
}

// Period selects an inclusive day range
type Period struct {
	From string `long:"from" description:"first day, YYYY-MM-DD (default: 6 days ago)"`
	To   string `long:"to" description:"last day, YYYY-MM-DD (default: today)"`
}

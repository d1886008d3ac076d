package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/viant/shiftmate"
	"github.com/viant/shiftmate/client"
	"github.com/viant/shiftmate/schema"
)

// ErrSessionExpired is reported when the stored session can no longer be refreshed
var ErrSessionExpired = errors.New("session expired, run shiftmate login")

// App runs commands against a ShiftMate client
type App struct {
	ctx     context.Context
	options *Options
	out     io.Writer
	logs    io.Writer
	expired atomic.Bool
	client  *client.Client
}

// New creates an app printing results to out and logs to logs
func New(out, logs io.Writer) *App {
	ret := &App{out: out, logs: logs, options: &Options{}}
	ret.options.Login.app = ret
	ret.options.Logout.app = ret
	ret.options.ClockIn.app = ret
	ret.options.ClockOut.app = ret
	ret.options.ClockOut.out = true
	ret.options.Shifts.app = ret
	ret.options.Subs.app = ret
	ret.options.Claim.app = ret
	ret.options.Payroll.app = ret
	return ret
}

// Run parses args and executes the selected command
func Run(ctx context.Context, args []string) error {
	return New(os.Stdout, os.Stderr).Run(ctx, args)
}

func (a *App) Run(ctx context.Context, args []string) error {
	a.ctx = ctx
	defer a.close()
	parser := flags.NewParser(a.options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "shiftmate"
	_, err := parser.ParseArgs(args)
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		_, err = fmt.Fprintln(a.out, flagsErr.Message)
	}
	return err
}

func (a *App) connect() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	options, err := shiftmate.LoadOptions(a.options.Config)
	if err != nil {
		return nil, err
	}
	if a.options.URL != "" {
		options.BaseURL = a.options.URL
	}
	if a.options.Tokens != "" {
		options.TokenStorageURL = a.options.Tokens
	}
	if a.options.Key != "" {
		options.TokenKey = a.options.Key
	}
	if options.TokenStorageURL == "" {
		options.TokenStorageURL = defaultTokenStorage()
	}
	a.client, err = shiftmate.NewClient(a.ctx, options,
		shiftmate.WithLogOutput(a.logs),
		shiftmate.WithAuthExpired(func(ctx context.Context) { a.expired.Store(true) }))
	return a.client, err
}

func (a *App) close() {
	if a.client != nil {
		_ = a.client.Close()
		a.client = nil
	}
}

// emit writes a successful result as JSON or converts a failure into an error
func emit[T any](a *App, result *schema.Result[T]) error {
	if !result.Success {
		return a.failure(result.Error)
	}
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Data)
}

func (a *App) failure(err *schema.Error) error {
	if a.expired.Load() {
		return ErrSessionExpired
	}
	if err == nil {
		return errors.New("request failed")
	}
	return err
}

func defaultTokenStorage() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "shiftmate", "credentials.json")
}

// Range parses the period, defaulting to the last seven days
func (p *Period) Range(now time.Time) (time.Time, time.Time, error) {
	to := now
	if p.To != "" {
		parsed, err := time.Parse(client.DateLayout, p.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
		}
		to = parsed
	}
	from := to.AddDate(0, 0, -6)
	if p.From != "" {
		parsed, err := time.Parse(client.DateLayout, p.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
		}
		from = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("--to is before --from")
	}
	return from, to, nil
}

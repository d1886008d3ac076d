package shiftmate

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigEnv names the variable holding the config file path
const ConfigEnv = "SHIFTMATE_CONFIG"

// DefaultConfigPath is read when present and no path was given
const DefaultConfigPath = "./shiftmate.yaml"

// ClientOptions defines options for configuring a ShiftMate client.
type ClientOptions struct {
	BaseURL        string        `yaml:"baseURL" json:"baseURL,omitempty" env:"SHIFTMATE_BASE_URL" env-default:"http://localhost:8080/api" short:"u" long:"url" description:"ShiftMate API base URL"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout,omitempty" env:"SHIFTMATE_TIMEOUT" env-default:"30s" long:"timeout" description:"request timeout"`
	RefreshTimeout time.Duration `yaml:"refreshTimeout" json:"refreshTimeout,omitempty" env:"SHIFTMATE_REFRESH_TIMEOUT" env-default:"10s" long:"refresh-timeout" description:"token refresh timeout"`
	// TokenStorageURL is empty for in-memory tokens, sqlite://path for a SQLite
	// database, otherwise a file path or afs URL.
	TokenStorageURL string         `yaml:"tokenStorageURL" json:"tokenStorageURL,omitempty" env:"SHIFTMATE_TOKEN_STORAGE" short:"t" long:"tokens" description:"token storage URL"`
	// TokenKey encrypts file token storage through scy, e.g. blowfish://default
	TokenKey        string         `yaml:"tokenKey" json:"tokenKey,omitempty" env:"SHIFTMATE_TOKEN_KEY" long:"token-key" description:"token file encryption key URL"`
	AuthPaths       []string       `yaml:"authPaths" json:"authPaths,omitempty" env:"SHIFTMATE_AUTH_PATHS"`
	Log             LogOptions     `yaml:"log" json:"log"`
	Metrics         MetricsOptions `yaml:"metrics" json:"metrics"`
}

// LogOptions holds logging settings.
type LogOptions struct {
	Level  string `yaml:"level" json:"level,omitempty" env:"SHIFTMATE_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" json:"format,omitempty" env:"SHIFTMATE_LOG_FORMAT" env-default:"json"`
}

// MetricsOptions holds metrics settings.
type MetricsOptions struct {
	Namespace string `yaml:"namespace" json:"namespace,omitempty" env:"SHIFTMATE_METRICS_NAMESPACE" env-default:"shiftmate"`
}

// LoadOptions reads options from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. When path is empty, SHIFTMATE_CONFIG is used,
// then DefaultConfigPath; a missing file is an error only when named explicitly.
func LoadOptions(path string) (*ClientOptions, error) {
	var options ClientOptions
	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &options); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&options); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &options, nil
}

// Init applies defaults to options built without LoadOptions
func (o *ClientOptions) Init() {
	if o.BaseURL == "" {
		o.BaseURL = "http://localhost:8080/api"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.RefreshTimeout <= 0 {
		o.RefreshTimeout = 10 * time.Second
	}
	if o.Metrics.Namespace == "" {
		o.Metrics.Namespace = "shiftmate"
	}
}

// Validate checks option consistency
func (o *ClientOptions) Validate() error {
	var errs []error
	if parsed, err := url.Parse(o.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base URL: %q", o.BaseURL))
	}
	if o.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if o.RefreshTimeout <= 0 {
		errs = append(errs, errors.New("refresh timeout must be positive"))
	}
	return errors.Join(errs...)
}

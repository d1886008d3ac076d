package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultSecretKey encrypts token files with the built-in blowfish key
const DefaultSecretKey = "blowfish://default"

// FileStorage persists values as a JSON object at an afs URL (local path, file://,
// mem:// or any registered scheme). The file is re-read on every Get so that tokens
// rotated by another process are picked up. With a secret key the object is
// encrypted at rest through scy.
type FileStorage struct {
	mu      sync.Mutex
	URL     string
	fs      afs.Service
	key     string
	secrets *scy.Service
}

// FileOption configures FileStorage
type FileOption func(f *FileStorage)

// WithSecretKey encrypts the file with a scy key URL such as DefaultSecretKey
func WithSecretKey(key string) FileOption {
	return func(f *FileStorage) {
		if key != "" {
			f.key = key
			f.secrets = scy.New()
		}
	}
}

// NewFileStorage creates a Storage persisted at URL
func NewFileStorage(URL string, options ...FileOption) *FileStorage {
	ret := &FileStorage{URL: URL, fs: afs.New()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

func (f *FileStorage) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *FileStorage) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load(ctx)
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(ctx, values)
}

func (f *FileStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(ctx, values)
}

func (f *FileStorage) load(ctx context.Context) (map[string]string, error) {
	values := map[string]string{}
	exists, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check token file %v: %w", f.URL, err)
	}
	if !exists {
		return values, nil
	}
	data, err := f.download(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %v: %w", f.URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid token file %v: %w", f.URL, err)
	}
	return values, nil
}

func (f *FileStorage) save(ctx context.Context, values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err = f.upload(ctx, data); err != nil {
		return fmt.Errorf("failed to write token file %v: %w", f.URL, err)
	}
	return nil
}

func (f *FileStorage) download(ctx context.Context) ([]byte, error) {
	if f.secrets == nil {
		return f.fs.DownloadWithURL(ctx, f.URL)
	}
	secret, err := f.secrets.Load(ctx, scy.NewResource("", f.URL, f.key))
	if err != nil {
		return nil, err
	}
	return []byte(secret.String()), nil
}

func (f *FileStorage) upload(ctx context.Context, data []byte) error {
	if f.secrets == nil {
		return f.fs.Upload(ctx, f.URL, 0o600, bytes.NewReader(data))
	}
	return f.secrets.Store(ctx, scy.NewSecret(string(data), scy.NewResource("", f.URL, f.key)))
}

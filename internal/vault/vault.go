// internal/vault/vault.go
//
// Vault client wrapper for Jeevan.
//
// Context
// -------
//   - Configuration values may point at a secret instead of holding it:
//     `vault:<mount>/<path>#<key>`, e.g. `vault:secret/jeevan#csrf_key`.
//     internal/config asks this package to resolve such references before
//     validation, so the typed Config only ever holds plain strings.
//   - The client is a concurrency-safe wrapper around the HashiCorp Vault Go
//     SDK with KV-v2 reads, a per-key TTL cache, and background token
//     renewal.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx, zap.S())          // during boot, if VAULT_ADDR set.
//  2. val, err := cli.Resolve(ctx, "vault:…#key")  // from config loader.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods, no m-dash.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// RefPrefix marks a config value as a Vault reference.
const RefPrefix = "vault:"

// DefaultTTL is how long a resolved secret is served from cache.
const DefaultTTL = 5 * time.Minute

//
// SECTION 1.  References
//

// IsRef reports whether s is a Vault reference.
func IsRef(s string) bool { return strings.HasPrefix(s, RefPrefix) }

// ParseRef splits "vault:<path>#<key>" into path and key.
func ParseRef(s string) (path, key string, err error) {
	if !IsRef(s) {
		return "", "", fmt.Errorf("vault ref %q: missing %q prefix", s, RefPrefix)
	}
	body := strings.TrimPrefix(s, RefPrefix)
	i := strings.LastIndexByte(body, '#')
	if i <= 0 || i == len(body)-1 {
		return "", "", fmt.Errorf("vault ref %q: want <path>#<key>", s)
	}
	return body[:i], body[i+1:], nil
}

//
// SECTION 2.  Client
//

// kvReader is the slice of the SDK the client needs; tests substitute it.
type kvReader interface {
	read(ctx context.Context, mount, rel string) (map[string]any, error)
}

type sdkReader struct{ api *vault.Client }

func (s sdkReader) read(ctx context.Context, mount, rel string) (map[string]any, error) {
	sec, err := s.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return nil, err
	}
	return sec.Data, nil
}

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	kv  kvReader
	log atomic.Pointer[zap.SugaredLogger]

	cacheMu sync.RWMutex
	cache   map[string]cached // path#key → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from VAULT_ADDR / VAULT_TOKEN and starts a
// background token-renewal loop bound to ctx.  Vault is read before the
// file logger exists, so boot passes nil and calls SetLogger later.
func New(ctx context.Context, log *zap.SugaredLogger) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		api.SetToken(tok)
	}

	c := newClient(sdkReader{api: api}, log)
	go c.renewLoop(ctx, api)
	return c, nil
}

func newClient(kv kvReader, log *zap.SugaredLogger) *Client {
	c := &Client{kv: kv, cache: make(map[string]cached)}
	c.SetLogger(log)
	return c
}

// SetLogger swaps the logger used by lookups and the renewal loop.  A nil
// log discards output.
func (c *Client) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c.log.Store(log)
}

func (c *Client) logger() *zap.SugaredLogger { return c.log.Load() }

// Resolve returns the secret a reference points at, using DefaultTTL.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	path, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, path, key, DefaultTTL)
}

// GetKV fetches a single key from a KV-v2 secret.  If ttl > 0 the result is
// cached for that duration.
func (c *Client) GetKV(ctx context.Context, secretPath, key string, ttl time.Duration) (string, error) {
	if secretPath == "" || key == "" {
		return "", errors.New("secret path and key must be non-empty")
	}

	canonical := secretPath + "#" + key

	if ttl > 0 {
		c.cacheMu.RLock()
		cv, ok := c.cache[canonical]
		c.cacheMu.RUnlock()
		if ok && time.Now().Before(cv.exp) {
			return cv.val, nil
		}
	}

	mount, rel := splitMount(secretPath)
	data, err := c.kv.read(ctx, mount, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s is not a string", canonical)
	}

	if ttl > 0 {
		c.cacheMu.Lock()
		c.cache[canonical] = cached{val: sval, exp: time.Now().Add(ttl)}
		c.cacheMu.Unlock()
	}
	c.logger().Debugw("vault secret resolved", "path", secretPath, "key", key)
	return sval, nil
}

//
// SECTION 3.  Background token renewal
//

func (c *Client) renewLoop(ctx context.Context, api *vault.Client) {
	for ctx.Err() == nil {
		sec, err := api.Auth().Token().RenewSelfWithContext(ctx, 0)
		if err != nil {
			c.logger().Warnw("vault token renew-self failed", "err", err)
			backoff(ctx, 30*time.Second)
			continue
		}
		if sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
			c.logger().Infow("vault token not renewable, sleeping")
			backoff(ctx, time.Hour)
			continue
		}

		watcher, err := api.NewLifetimeWatcher(&vault.LifetimeWatcherInput{
			Secret: sec,
		})
		if err != nil {
			c.logger().Warnw("vault lifetime watcher init failed", "err", err)
			backoff(ctx, 30*time.Second)
			continue
		}
		c.watch(ctx, watcher)
	}
}

// watch blocks until the watcher stops or ctx ends.
func (c *Client) watch(ctx context.Context, w *vault.LifetimeWatcher) {
	go w.Start()
	defer w.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-w.DoneCh():
			if err != nil {
				c.logger().Warnw("vault token renewal stopped", "err", err)
			}
			backoff(ctx, 15*time.Second)
			return
		case ev := <-w.RenewCh():
			if ev != nil && ev.Secret != nil && ev.Secret.Auth != nil {
				c.logger().Debugw("vault token renewed", "ttl_s", ev.Secret.Auth.LeaseDuration)
			}
		}
	}
}

//
// SECTION 4.  Helpers
//

func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(p, "/")
	return mount, rel
}

func backoff(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

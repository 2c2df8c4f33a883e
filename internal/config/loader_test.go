package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := m[ref]
	if !ok {
		return "", assert.AnError
	}
	return v, nil
}

func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644))
	t.Setenv("JEEVAN_ROOT", root)
	return root
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	root := writeRoot(t, `
http:
  listen_addr: ":9000"
alerts:
  ttl: 7s
`)
	t.Setenv("JEEVAN_HTTP__FORCE_HTTPS", "true")

	cfg, err := Load(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.ListenAddr)
	assert.True(t, cfg.HTTP.ForceHTTPS)
	assert.Equal(t, 7*time.Second, cfg.Alerts.TTL)
	assert.Equal(t, 2*time.Hour, cfg.CSRF.MaxAge)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "en-IN", cfg.Site.Locale)
	assert.Empty(t, cfg.Site.ContentPath)
	assert.Equal(t, root, cfg.Paths.Root)
	assert.Same(t, cfg, Get())
}

func TestLoad_ResolvesVaultRefs(t *testing.T) {
	writeRoot(t, `
csrf:
  key: "vault:secret/jeevan#csrf_key"
database:
  stats_dsn: "vault:secret/jeevan#stats_dsn"
`)
	res := mapResolver{
		"vault:secret/jeevan#csrf_key":  "k3y",
		"vault:secret/jeevan#stats_dsn": "ro:pw@tcp(db:3306)/jeevan",
	}

	cfg, err := Load(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, "k3y", cfg.CSRF.Key)
	assert.Equal(t, "ro:pw@tcp(db:3306)/jeevan", cfg.Database.StatsDSN)
}

func TestLoad_VaultRefWithoutClient(t *testing.T) {
	writeRoot(t, `
csrf:
  key: "vault:secret/jeevan#csrf_key"
`)
	_, err := Load(context.Background(), nil)
	assert.ErrorContains(t, err, "no Vault client")
}

func TestLoad_ValidationFailure(t *testing.T) {
	writeRoot(t, `
http:
  listen_addr: "not a host port"
`)
	_, err := Load(context.Background(), nil)
	assert.ErrorContains(t, err, "validate config")
}

func TestLoad_MissingYAML(t *testing.T) {
	t.Setenv("JEEVAN_ROOT", t.TempDir())

	_, err := Load(context.Background(), nil)
	assert.Error(t, err)
}

package config

import (
	"path/filepath"
	"strings"
	"testing"
)

// --- Mock backend ---

type mockBackend struct {
	data map[string]any
}

func newMockBackend() *mockBackend {
	return &mockBackend{data: make(map[string]any)}
}

func (b *mockBackend) GetString(key string) (string, bool, error) {
	v, ok := b.data[key]
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (b *mockBackend) GetInt(key string) (int, bool, error) {
	v, ok := b.data[key]
	if !ok {
		return 0, false, nil
	}
	return v.(int), true, nil
}

func (b *mockBackend) SetString(key, val string) error { b.data[key] = val; return nil }
func (b *mockBackend) SetInt(key string, val int) error { b.data[key] = val; return nil }
func (b *mockBackend) Delete(key string) error          { delete(b.data, key); return nil }

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOGO_STORE_API_KEY", "test-key")
	t.Setenv("BOGO_STORE_DATABASE_ID", "test-db")
}

// --- Tests ---

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := loadWith(newMockBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 4700 {
		t.Errorf("Port = %d, want 4700", cfg.Server.Port)
	}
	if cfg.Store.BaseURL != "https://api.notion.com/v1" {
		t.Errorf("BaseURL = %q", cfg.Store.BaseURL)
	}
	if cfg.Store.Version != "2022-06-28" {
		t.Errorf("Version = %q", cfg.Store.Version)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	if cfg.Server.APIToken != "" {
		t.Errorf("APIToken = %q, want empty (auth disabled)", cfg.Server.APIToken)
	}
}

func TestLoad_BackendValues(t *testing.T) {
	setRequiredEnv(t)

	b := newMockBackend()
	b.SetInt("server.port", 5800)
	b.SetString("log.level", "debug")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 5800 {
		t.Errorf("Port = %d, want 5800 from backend", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug from backend", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOGO_SERVER_PORT", "6900")
	t.Setenv("BOGO_STORE_BASE_URL", "http://localhost:9999/v1")

	b := newMockBackend()
	b.SetInt("server.port", 5800)

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 6900 {
		t.Errorf("Port = %d, want env override 6900", cfg.Server.Port)
	}
	if cfg.Store.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("BaseURL = %q", cfg.Store.BaseURL)
	}
}

func TestLoad_SecretsComeFromEnvOnly(t *testing.T) {
	setRequiredEnv(t)

	// Secrets in the backend file are ignored.
	b := newMockBackend()
	b.SetString("store.api_key", "from-file")
	b.SetString("server.api_token", "file-token")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Store.APIKey != "test-key" {
		t.Errorf("APIKey = %q, file value must not apply", cfg.Store.APIKey)
	}
	if cfg.Server.APIToken != "" {
		t.Errorf("APIToken = %q, file value must not apply", cfg.Server.APIToken)
	}
}

func TestLoad_FailsFastWithoutCredentials(t *testing.T) {
	t.Setenv("BOGO_STORE_API_KEY", "")
	t.Setenv("BOGO_STORE_DATABASE_ID", "")

	_, err := loadWith(newMockBackend())
	if err == nil {
		t.Fatal("loadWith without credentials = nil error")
	}
	if !strings.Contains(err.Error(), "BOGO_STORE_API_KEY") {
		t.Errorf("error %q should name the missing env var", err)
	}

	t.Setenv("BOGO_STORE_API_KEY", "test-key")
	_, err = loadWith(newMockBackend())
	if err == nil || !strings.Contains(err.Error(), "BOGO_STORE_DATABASE_ID") {
		t.Errorf("error %q should name BOGO_STORE_DATABASE_ID", err)
	}
}

func TestFileBackend_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	b := newFileBackend(path)

	if err := b.SetInt("server.port", 5100); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := b.SetString("log.level", "debug"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	// New backend over the same file sees the persisted values.
	b2 := newFileBackend(path)
	port, ok, err := b2.GetInt("server.port")
	if err != nil || !ok || port != 5100 {
		t.Errorf("GetInt = (%d, %v, %v), want 5100", port, ok, err)
	}
	level, ok, err := b2.GetString("log.level")
	if err != nil || !ok || level != "debug" {
		t.Errorf("GetString = (%q, %v, %v), want debug", level, ok, err)
	}

	if err := b2.Delete("log.level"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, _ = newFileBackend(path).GetString("log.level")
	if ok {
		t.Error("deleted key still present after reload")
	}
}

func TestSetKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SetKey("server.port", "5200"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if err := SetKey("server.port", "not-a-number"); err == nil {
		t.Error("SetKey with bad int = nil error")
	}
	err := SetKey("unknown.key", "x")
	if err == nil {
		t.Fatal("SetKey unknown key = nil error")
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("error %q should list the valid keys", err)
	}
	if err := SetKey("store.api_key", "secret"); err == nil {
		t.Error("SetKey on secret = nil error, secrets are env-only")
	}
}

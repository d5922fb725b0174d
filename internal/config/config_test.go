package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BenjaminKobjolke/release-tool/internal/errors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
	if !errors.Is(err, errors.ErrConfigNotFound) {
		t.Errorf("error should wrap ErrConfigNotFound, got: %v", err)
	}
	var configErr *errors.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Errorf("error should be a ConfigurationError, got: %T", err)
	}
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, "release.yaml", `
ftp:
  host: ftp.example.com
  username: testuser
  password: testpass
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.FTP.Host != "ftp.example.com" {
		t.Errorf("Host = %q, want %q", cfg.FTP.Host, "ftp.example.com")
	}
	if cfg.FTP.Port != 21 {
		t.Errorf("Port = %d, want default 21", cfg.FTP.Port)
	}
	if cfg.FTP.RemotePath != "/" {
		t.Errorf("RemotePath = %q, want default /", cfg.FTP.RemotePath)
	}
	if cfg.OldFile.Policy != PolicyDelete {
		t.Errorf("Policy = %q, want default delete", cfg.OldFile.Policy)
	}
	if cfg.OldFile.SubfolderBase != "old_versions" {
		t.Errorf("SubfolderBase = %q, want default old_versions", cfg.OldFile.SubfolderBase)
	}
	if cfg.OldFile.SubfolderNaming != NamingTimestamp {
		t.Errorf("SubfolderNaming = %q, want default timestamp", cfg.OldFile.SubfolderNaming)
	}
	if cfg.PreSign.Enabled {
		t.Error("PreSign.Enabled should default to false")
	}
	if cfg.ReleaseNotes.Configured() {
		t.Error("ReleaseNotes should not be configured by default")
	}
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, "release.yaml", `
ftp:
  host: ftp.example.com
  port: 2121
  username: releaser
  password: secret
  remote_path: /releases
old_file:
  policy: rename
  subfolder_base: archive
  subfolder_naming: version
pre_sign:
  enabled: true
  network_path: //signhost/exchange
  network_path_signed: //signhost/signed
  expected_signer: XIDA GmbH
  poll_interval_seconds: 5
  timeout_seconds: 60
release_notes:
  local_path: docs/releases
  remote_path: /releases/notes
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.FTP.Port != 2121 {
		t.Errorf("Port = %d, want 2121", cfg.FTP.Port)
	}
	if cfg.OldFile.Policy != PolicyRename {
		t.Errorf("Policy = %q, want rename", cfg.OldFile.Policy)
	}
	if cfg.OldFile.SubfolderNaming != NamingVersion {
		t.Errorf("SubfolderNaming = %q, want version", cfg.OldFile.SubfolderNaming)
	}
	if !cfg.PreSign.Enabled {
		t.Error("PreSign.Enabled should be true")
	}
	if cfg.PreSign.ExpectedSigner != "XIDA GmbH" {
		t.Errorf("ExpectedSigner = %q, want %q", cfg.PreSign.ExpectedSigner, "XIDA GmbH")
	}
	if got := cfg.PreSign.PollInterval().Seconds(); got != 5 {
		t.Errorf("PollInterval = %vs, want 5s", got)
	}
	if got := cfg.PreSign.Timeout().Seconds(); got != 60 {
		t.Errorf("Timeout = %vs, want 60s", got)
	}
	if !cfg.ReleaseNotes.Configured() {
		t.Error("ReleaseNotes should be configured")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "release.yaml", `
ftp:
  host: ftp.example.com
  username: testuser
old_file:
  policy: archive
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for invalid policy")
	}
	var configErr *errors.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("error should be a ConfigurationError, got: %T", err)
	}
}

func TestConfig_Validate_DefaultWithHost(t *testing.T) {
	cfg := Default()
	cfg.FTP.Host = "ftp.example.com"
	cfg.FTP.Username = "testuser"

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("defaults plus host/username should be valid, got %d errors: %v", len(errs), errs)
	}
}

func TestConfig_Validate_FTP(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		field    string
		hasError bool
	}{
		{"missing host", func(c *Config) { c.FTP.Host = "" }, "ftp.host", true},
		{"missing username", func(c *Config) { c.FTP.Username = "" }, "ftp.username", true},
		{"port zero", func(c *Config) { c.FTP.Port = 0 }, "ftp.port", true},
		{"port too large", func(c *Config) { c.FTP.Port = 70000 }, "ftp.port", true},
		{"valid", func(c *Config) {}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.FTP.Host = "ftp.example.com"
			cfg.FTP.Username = "testuser"
			tt.mutate(cfg)

			errs := cfg.Validate()
			hasError := false
			for _, err := range errs {
				if err.Field == tt.field {
					hasError = true
				}
			}
			if hasError != tt.hasError {
				t.Errorf("Validate() field error for %q = %v, want %v (errors: %v)", tt.field, hasError, tt.hasError, errs)
			}
		})
	}
}

func TestConfig_Validate_PreSign(t *testing.T) {
	base := func() *Config {
		cfg := Default()
		cfg.FTP.Host = "ftp.example.com"
		cfg.FTP.Username = "testuser"
		cfg.PreSign = PreSignConfig{
			Enabled:             true,
			NetworkPath:         "//host/exchange",
			NetworkPathSigned:   "//host/signed",
			ExpectedSigner:      "XIDA GmbH",
			PollIntervalSeconds: 10,
			TimeoutSeconds:      300,
		}
		return cfg
	}

	t.Run("complete pre-sign config is valid", func(t *testing.T) {
		if errs := base().Validate(); len(errs) != 0 {
			t.Errorf("expected valid, got: %v", errs)
		}
	})

	t.Run("disabled pre-sign skips validation", func(t *testing.T) {
		cfg := base()
		cfg.PreSign = PreSignConfig{Enabled: false}
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("disabled pre-sign should not be validated, got: %v", errs)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing exchange path", func(c *Config) { c.PreSign.NetworkPath = "" }, "pre_sign.network_path"},
		{"missing signed path", func(c *Config) { c.PreSign.NetworkPathSigned = "" }, "pre_sign.network_path_signed"},
		{"missing signer", func(c *Config) { c.PreSign.ExpectedSigner = "" }, "pre_sign.expected_signer"},
		{"zero poll interval", func(c *Config) { c.PreSign.PollIntervalSeconds = 0 }, "pre_sign.poll_interval_seconds"},
		{"zero timeout", func(c *Config) { c.PreSign.TimeoutSeconds = 0 }, "pre_sign.timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			found := false
			for _, err := range cfg.Validate() {
				if err.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected validation error for %q", tt.field)
			}
		})
	}
}

func TestConfig_Validate_ReleaseNotes(t *testing.T) {
	tests := []struct {
		name    string
		local   string
		remote  string
		wantErr bool
	}{
		{"both empty", "", "", false},
		{"both set", "docs/releases", "/releases/notes", false},
		{"local only", "docs/releases", "", true},
		{"remote only", "", "/releases/notes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.FTP.Host = "ftp.example.com"
			cfg.FTP.Username = "testuser"
			cfg.ReleaseNotes = ReleaseNotesConfig{LocalPath: tt.local, RemotePath: tt.remote}

			errs := cfg.Validate()
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single", func(t *testing.T) {
		errs := ValidationErrors{{Field: "ftp.host", Value: "", Message: "is required"}}
		want := "ftp.host: is required (got: )"
		if errs.Error() != want {
			t.Errorf("Error() = %q, want %q", errs.Error(), want)
		}
	})
}

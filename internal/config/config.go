// Package config loads and validates the release configuration.
// A configuration file is loaded once per invocation and the resulting
// Config is never mutated during a release.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/BenjaminKobjolke/release-tool/internal/errors"
)

// Policy selects how an existing remote artifact is neutralized before upload.
type Policy string

const (
	// PolicyDelete removes the existing remote artifact.
	PolicyDelete Policy = "delete"
	// PolicyRename moves the existing remote artifact into a backup subfolder.
	PolicyRename Policy = "rename"
)

// SubfolderNaming selects the naming scheme for backup subfolders.
type SubfolderNaming string

const (
	// NamingTimestamp names the backup subfolder after the current local time.
	NamingTimestamp SubfolderNaming = "timestamp"
	// NamingVersion names the backup subfolder after the supplied version string.
	NamingVersion SubfolderNaming = "version"
)

// Config is the complete release configuration.
type Config struct {
	FTP          FTPConfig          `mapstructure:"ftp"`
	OldFile      OldFileConfig      `mapstructure:"old_file"`
	PreSign      PreSignConfig      `mapstructure:"pre_sign"`
	ReleaseNotes ReleaseNotesConfig `mapstructure:"release_notes"`
}

// FTPConfig holds the remote file-store connection settings.
type FTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	RemotePath string `mapstructure:"remote_path"`
}

// OldFileConfig controls the disposition of a previously published artifact.
type OldFileConfig struct {
	// Policy is "delete" or "rename".
	Policy Policy `mapstructure:"policy"`
	// SubfolderBase is the remote folder that receives renamed backups.
	SubfolderBase string `mapstructure:"subfolder_base"`
	// SubfolderNaming is "timestamp" or "version".
	SubfolderNaming SubfolderNaming `mapstructure:"subfolder_naming"`
}

// PreSignConfig controls the optional pre-release signing workflow.
type PreSignConfig struct {
	// Enabled turns the pre-sign step on.
	Enabled bool `mapstructure:"enabled"`
	// NetworkPath is the exchange location the unsigned artifact is staged to.
	NetworkPath string `mapstructure:"network_path"`
	// NetworkPathSigned is the location polled for the signed counterpart.
	NetworkPathSigned string `mapstructure:"network_path_signed"`
	// ExpectedSigner is the certificate common name the signed artifact must carry.
	ExpectedSigner string `mapstructure:"expected_signer"`
	// PollIntervalSeconds is the fixed interval between signature checks.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
	// TimeoutSeconds bounds the total wait for a verified signature.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// PollInterval returns the poll interval as a time.Duration.
func (c *PreSignConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Timeout returns the signature timeout as a time.Duration.
func (c *PreSignConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReleaseNotesConfig controls the optional release-notes mirror step.
// Both paths must be set together; an empty pair disables the step.
type ReleaseNotesConfig struct {
	// LocalPath is the local folder whose immediate subdirectories are
	// release-notes version folders.
	LocalPath string `mapstructure:"local_path"`
	// RemotePath is the remote base folder the version folders mirror into.
	RemotePath string `mapstructure:"remote_path"`
}

// Configured reports whether the release-notes step is enabled.
func (c *ReleaseNotesConfig) Configured() bool {
	return c.LocalPath != "" && c.RemotePath != ""
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		FTP: FTPConfig{
			Port:       21,
			RemotePath: "/",
		},
		OldFile: OldFileConfig{
			Policy:          PolicyDelete,
			SubfolderBase:   "old_versions",
			SubfolderNaming: NamingTimestamp,
		},
		PreSign: PreSignConfig{
			Enabled:             false,
			PollIntervalSeconds: 10,
			TimeoutSeconds:      300,
		},
	}
}

// setDefaults registers default values with the viper instance.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// FTP defaults
	v.SetDefault("ftp.port", defaults.FTP.Port)
	v.SetDefault("ftp.remote_path", defaults.FTP.RemotePath)

	// Old-file defaults
	v.SetDefault("old_file.policy", string(defaults.OldFile.Policy))
	v.SetDefault("old_file.subfolder_base", defaults.OldFile.SubfolderBase)
	v.SetDefault("old_file.subfolder_naming", string(defaults.OldFile.SubfolderNaming))

	// Pre-sign defaults
	v.SetDefault("pre_sign.enabled", defaults.PreSign.Enabled)
	v.SetDefault("pre_sign.poll_interval_seconds", defaults.PreSign.PollIntervalSeconds)
	v.SetDefault("pre_sign.timeout_seconds", defaults.PreSign.TimeoutSeconds)
}

// Load reads the configuration file at path, applies defaults, unmarshals
// it into a Config and validates it. The file format is detected from the
// extension (yaml, toml, ini, json). Every failure is reported as a
// configuration error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewConfigurationError("configuration file not found", errors.ErrConfigNotFound).WithFile(path)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigurationError("failed to parse configuration file", err).WithFile(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigurationError("failed to decode configuration", err).WithFile(path)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.NewConfigurationError("invalid configuration", ValidationErrors(errs)).WithFile(path)
	}

	return &cfg, nil
}

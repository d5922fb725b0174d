package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "ftp.host")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidPolicies returns the list of valid old-file policy values
func ValidPolicies() []string {
	return []string{string(PolicyDelete), string(PolicyRename)}
}

// ValidNamings returns the list of valid subfolder naming values
func ValidNamings() []string {
	return []string{string(NamingTimestamp), string(NamingVersion)}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateFTP()...)
	errs = append(errs, c.validateOldFile()...)
	errs = append(errs, c.validatePreSign()...)
	errs = append(errs, c.validateReleaseNotes()...)

	return errs
}

func (c *Config) validateFTP() []ValidationError {
	var errs []ValidationError

	if c.FTP.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "ftp.host",
			Value:   c.FTP.Host,
			Message: "is required",
		})
	}
	if c.FTP.Username == "" {
		errs = append(errs, ValidationError{
			Field:   "ftp.username",
			Value:   c.FTP.Username,
			Message: "is required",
		})
	}
	if c.FTP.Port < 1 || c.FTP.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "ftp.port",
			Value:   c.FTP.Port,
			Message: "must be between 1 and 65535",
		})
	}

	return errs
}

func (c *Config) validateOldFile() []ValidationError {
	var errs []ValidationError

	switch c.OldFile.Policy {
	case PolicyDelete, PolicyRename:
	default:
		errs = append(errs, ValidationError{
			Field:   "old_file.policy",
			Value:   string(c.OldFile.Policy),
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidPolicies(), ", ")),
		})
	}

	switch c.OldFile.SubfolderNaming {
	case NamingTimestamp, NamingVersion:
	default:
		errs = append(errs, ValidationError{
			Field:   "old_file.subfolder_naming",
			Value:   string(c.OldFile.SubfolderNaming),
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidNamings(), ", ")),
		})
	}

	if c.OldFile.Policy == PolicyRename && c.OldFile.SubfolderBase == "" {
		errs = append(errs, ValidationError{
			Field:   "old_file.subfolder_base",
			Value:   c.OldFile.SubfolderBase,
			Message: "is required when policy is rename",
		})
	}

	return errs
}

func (c *Config) validatePreSign() []ValidationError {
	if !c.PreSign.Enabled {
		return nil
	}

	var errs []ValidationError

	if c.PreSign.NetworkPath == "" {
		errs = append(errs, ValidationError{
			Field:   "pre_sign.network_path",
			Value:   c.PreSign.NetworkPath,
			Message: "is required when pre-signing is enabled",
		})
	}
	if c.PreSign.NetworkPathSigned == "" {
		errs = append(errs, ValidationError{
			Field:   "pre_sign.network_path_signed",
			Value:   c.PreSign.NetworkPathSigned,
			Message: "is required when pre-signing is enabled",
		})
	}
	if c.PreSign.ExpectedSigner == "" {
		errs = append(errs, ValidationError{
			Field:   "pre_sign.expected_signer",
			Value:   c.PreSign.ExpectedSigner,
			Message: "is required when pre-signing is enabled",
		})
	}
	if c.PreSign.PollIntervalSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "pre_sign.poll_interval_seconds",
			Value:   c.PreSign.PollIntervalSeconds,
			Message: "must be greater than zero",
		})
	}
	if c.PreSign.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "pre_sign.timeout_seconds",
			Value:   c.PreSign.TimeoutSeconds,
			Message: "must be greater than zero",
		})
	}

	return errs
}

func (c *Config) validateReleaseNotes() []ValidationError {
	// Both paths set together or both empty.
	if (c.ReleaseNotes.LocalPath == "") == (c.ReleaseNotes.RemotePath == "") {
		return nil
	}

	if c.ReleaseNotes.LocalPath == "" {
		return []ValidationError{{
			Field:   "release_notes.local_path",
			Value:   c.ReleaseNotes.LocalPath,
			Message: "is required when release_notes.remote_path is set",
		}}
	}
	return []ValidationError{{
		Field:   "release_notes.remote_path",
		Value:   c.ReleaseNotes.RemotePath,
		Message: "is required when release_notes.local_path is set",
	}}
}

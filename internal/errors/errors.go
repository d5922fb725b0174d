// Package errors provides centralized error definitions and error handling
// utilities for the release tool. It defines domain-specific error types,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Each error type corresponds to one failure kind of the release workflow:
//   - ConfigurationError: malformed or missing configuration (pre-flight only)
//   - TransportError: any remote-operation failure on the file store
//   - PreSignError: failures in the pre-release signing workflow
//   - ReleaseError: local precondition failures in the release workflow
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewTransportError("failed to upload file", cause).WithHost("ftp.example.com")
//	err := errors.NewPreSignError("timeout waiting for signature", errors.ErrSignTimeout).WithTimeout(5 * time.Minute)
//
// Checking errors:
//
//	var transportErr *errors.TransportError
//	if errors.As(err, &transportErr) { ... }
//
//	if errors.Is(err, errors.ErrSignTimeout) { ... }
//
// The entry point maps errors to process exit codes with ExitCode.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Process exit codes for the release tool CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitTransport   = 3
	ExitInterrupted = 130
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Transport-related sentinel errors
var (
	// ErrNotConnected indicates a remote operation was attempted without an open session.
	ErrNotConnected = New("not connected to remote server")
	// ErrConnectFailed indicates the remote server could not be reached or rejected the login.
	ErrConnectFailed = New("connection failed")
)

// Pre-sign-related sentinel errors
var (
	// ErrSignTimeout indicates the signed artifact did not appear in time.
	ErrSignTimeout = New("timed out waiting for signature")
	// ErrExchangeUnavailable indicates the signing exchange path is not accessible.
	ErrExchangeUnavailable = New("exchange path not accessible")
)

// General sentinel errors
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = New("configuration file not found")
	// ErrArtifactNotFound indicates the local artifact to release does not exist.
	ErrArtifactNotFound = New("artifact not found")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message string
	cause   error
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConfigurationError represents malformed or missing configuration.
// It is only produced during pre-flight, before any remote system is touched.
//
// Example:
//
//	err := errors.NewConfigurationError("FTP host is required", nil)
type ConfigurationError struct {
	baseError
	File string
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithFile adds the configuration file path to the error context.
func (e *ConfigurationError) WithFile(path string) *ConfigurationError {
	e.File = path
	return e
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	prefix := "configuration error"
	if e.File != "" {
		prefix = fmt.Sprintf("configuration error [file=%s]", e.File)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigurationError) Is(target error) bool {
	if _, ok := target.(*ConfigurationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// TransportError represents a failure of a remote file-store operation.
// A TransportError aborts the remaining workflow; the session is still
// closed on the way out.
//
// Example:
//
//	err := errors.NewTransportError("failed to rename file", cause).
//		WithHost("ftp.example.com").WithPath("old_versions/1.0.0/app.exe")
type TransportError struct {
	baseError
	Host string
	Path string
	Op   string
}

// NewTransportError creates a new TransportError.
func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithHost adds the remote host to the error context.
func (e *TransportError) WithHost(host string) *TransportError {
	e.Host = host
	return e
}

// WithPath adds the remote path or file name to the error context.
func (e *TransportError) WithPath(path string) *TransportError {
	e.Path = path
	return e
}

// WithOp adds the failing operation name to the error context.
func (e *TransportError) WithOp(op string) *TransportError {
	e.Op = op
	return e
}

// Error returns the formatted error message.
func (e *TransportError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Host != "" {
		parts = append(parts, fmt.Sprintf("host=%s", e.Host))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}

	prefix := "transport error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("transport error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PreSignError represents a failure in the pre-release signing workflow:
// an inaccessible exchange path, a timeout waiting for a verified
// signature, or a filesystem failure moving the signed artifact back.
//
// Example:
//
//	err := errors.NewPreSignError("timeout waiting for signature", errors.ErrSignTimeout).
//		WithTimeout(5 * time.Minute)
type PreSignError struct {
	baseError
	Signer  string
	Timeout time.Duration
}

// NewPreSignError creates a new PreSignError.
func NewPreSignError(message string, cause error) *PreSignError {
	return &PreSignError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithSigner adds the last observed signer identity to the error context.
func (e *PreSignError) WithSigner(signer string) *PreSignError {
	e.Signer = signer
	return e
}

// WithTimeout adds the timeout boundary to the error context.
func (e *PreSignError) WithTimeout(d time.Duration) *PreSignError {
	e.Timeout = d
	return e
}

// Error returns the formatted error message.
func (e *PreSignError) Error() string {
	var parts []string
	if e.Signer != "" {
		parts = append(parts, fmt.Sprintf("signer=%s", e.Signer))
	}
	if e.Timeout > 0 {
		parts = append(parts, fmt.Sprintf("timeout=%s", e.Timeout))
	}

	prefix := "pre-sign error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("pre-sign error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PreSignError) Is(target error) bool {
	if _, ok := target.(*PreSignError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ReleaseError represents a local failure of the release workflow that is
// not attributable to configuration, transport, or pre-signing.
//
// Example:
//
//	err := errors.NewReleaseError("artifact not found", errors.ErrArtifactNotFound).
//		WithArtifact("dist/app.exe")
type ReleaseError struct {
	baseError
	Artifact string
}

// NewReleaseError creates a new ReleaseError.
func NewReleaseError(message string, cause error) *ReleaseError {
	return &ReleaseError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithArtifact adds the artifact path to the error context.
func (e *ReleaseError) WithArtifact(path string) *ReleaseError {
	e.Artifact = path
	return e
}

// Error returns the formatted error message.
func (e *ReleaseError) Error() string {
	prefix := "release error"
	if e.Artifact != "" {
		prefix = fmt.Sprintf("release error [artifact=%s]", e.Artifact)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ReleaseError) Is(target error) bool {
	if _, ok := target.(*ReleaseError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// ExitCode maps an error to the process exit code contract:
//
//	nil                -> 0
//	ConfigurationError -> 2
//	TransportError     -> 3
//	anything else      -> 1
//
// Pre-sign failures share the generic failure code with release errors.
// Operator interruption (exit 130) is detected at the entry point, not here.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var configErr *ConfigurationError
	if As(err, &configErr) {
		return ExitConfig
	}

	var transportErr *TransportError
	if As(err, &transportErr) {
		return ExitTransport
	}

	return ExitFailure
}

// IsTransport returns true if the error is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return As(err, &transportErr)
}

// IsPreSign returns true if the error is, or wraps, a PreSignError.
func IsPreSign(err error) bool {
	var preSignErr *PreSignError
	return As(err, &preSignErr)
}

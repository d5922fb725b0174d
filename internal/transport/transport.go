// Package transport owns the single logical connection to the remote file
// store. It exposes the narrow contract the release workflow needs:
// connect/disconnect lifecycle plus existence, list, delete, rename,
// recursive-mkdir and upload primitives. Every remote failure surfaces as
// a transport error so the workflow can abort with the right exit code.
package transport

import "context"

// Transport is the contract the release workflow consumes. The production
// implementation is the FTP client; tests substitute in-memory fakes.
//
// A Transport is single-use per session: Connect, any number of
// operations, Disconnect. Operations without an open session fail with a
// transport error wrapping errors.ErrNotConnected.
type Transport interface {
	// Connect establishes the session and navigates to the configured
	// remote path, creating it if necessary.
	Connect(ctx context.Context) error

	// Disconnect closes the session. It runs on every exit path;
	// failures are swallowed after a best-effort close.
	Disconnect()

	// FileExists reports whether a file with the given name exists in
	// the current remote directory.
	FileExists(name string) (bool, error)

	// DirectoryExists reports whether the given path exists as a
	// directory relative to the current remote directory.
	DirectoryExists(path string) (bool, error)

	// DeleteFile removes a file in the current remote directory.
	DeleteFile(name string) error

	// RenameFile renames or moves a file on the remote side.
	RenameFile(oldName, newName string) error

	// EnsureDirectory creates the directory path recursively.
	// Already-existing components are not an error.
	EnsureDirectory(path string) error

	// ChangeDirectory changes the current remote directory.
	ChangeDirectory(path string) error

	// ListDirectories returns the names of the immediate subdirectories
	// of the current remote directory, sorted by name.
	ListDirectories() ([]string, error)

	// UploadFile uploads the local file into the current remote
	// directory and returns the remote file name.
	UploadFile(localPath string) (string, error)
}

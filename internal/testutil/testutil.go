// Package testutil provides testing utilities shared by the release-tool tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/transport"
)

// WriteFile creates a file with the given content inside dir, creating
// parent directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", name, err)
	}
	return path
}

// Rename records one rename operation observed by the fake transport.
type Rename struct {
	From string
	To   string
}

// FakeTransport is an in-memory Transport that records every call.
// Zero value is usable; populate Files and Dirs to simulate remote state.
type FakeTransport struct {
	// Remote state the fake answers existence checks from.
	Files map[string]bool
	Dirs  map[string]bool

	// Per-operation error injection.
	ConnectErr    error
	FileExistsErr error
	DeleteErr     error
	RenameErr     error
	EnsureErr     error
	ChangeDirErr  error
	ListErr       error
	UploadErr     error

	// Recorded calls.
	ConnectCalls    int
	DisconnectCalls int
	Deleted         []string
	Renames         []Rename
	Ensured         []string
	ChangedDirs     []string
	Uploaded        []string

	connected bool
}

var _ transport.Transport = (*FakeTransport)(nil)

// Connect records the call and fails with ConnectErr when set.
func (f *FakeTransport) Connect(ctx context.Context) error {
	f.ConnectCalls++
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	f.connected = true
	return nil
}

// Disconnect records the call.
func (f *FakeTransport) Disconnect() {
	f.DisconnectCalls++
	f.connected = false
}

// Connected reports whether a session is currently open.
func (f *FakeTransport) Connected() bool {
	return f.connected
}

// FileExists answers from the Files map.
func (f *FakeTransport) FileExists(name string) (bool, error) {
	if f.FileExistsErr != nil {
		return false, f.FileExistsErr
	}
	return f.Files[name], nil
}

// DirectoryExists answers from the Dirs map.
func (f *FakeTransport) DirectoryExists(path string) (bool, error) {
	return f.Dirs[path], nil
}

// DeleteFile records the deletion and removes the file from Files.
func (f *FakeTransport) DeleteFile(name string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, name)
	delete(f.Files, name)
	return nil
}

// RenameFile records the rename.
func (f *FakeTransport) RenameFile(oldName, newName string) error {
	if f.RenameErr != nil {
		return f.RenameErr
	}
	f.Renames = append(f.Renames, Rename{From: oldName, To: newName})
	delete(f.Files, oldName)
	return nil
}

// EnsureDirectory records the path and marks it existing.
func (f *FakeTransport) EnsureDirectory(path string) error {
	if f.EnsureErr != nil {
		return f.EnsureErr
	}
	f.Ensured = append(f.Ensured, path)
	if f.Dirs == nil {
		f.Dirs = make(map[string]bool)
	}
	f.Dirs[path] = true
	return nil
}

// ChangeDirectory records the path.
func (f *FakeTransport) ChangeDirectory(path string) error {
	if f.ChangeDirErr != nil {
		return f.ChangeDirErr
	}
	f.ChangedDirs = append(f.ChangedDirs, path)
	return nil
}

// ListDirectories returns the Dirs keys sorted, or ListErr when set.
func (f *FakeTransport) ListDirectories() ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var names []string
	for name, exists := range f.Dirs {
		if exists {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// UploadFile records the upload and returns the base name.
func (f *FakeTransport) UploadFile(localPath string) (string, error) {
	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	f.Uploaded = append(f.Uploaded, localPath)
	return filepath.Base(localPath), nil
}

// TransportFailure builds a transport error the way the FTP client does,
// for tests that inject remote failures.
func TransportFailure(op string) error {
	return errors.NewTransportError("injected failure", nil).WithOp(op)
}

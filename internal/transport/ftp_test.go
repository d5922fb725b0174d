package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
)

func newDisconnectedClient() *FTPClient {
	cfg := config.FTPConfig{
		Host:       "ftp.example.com",
		Port:       21,
		Username:   "testuser",
		Password:   "testpass",
		RemotePath: "/releases",
	}
	return NewFTPClient(cfg, logging.Nop())
}

func TestPathComponents(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"simple", "old_versions", []string{"old_versions"}},
		{"nested", "old_versions/1.0.0", []string{"old_versions", "1.0.0"}},
		{"leading slash", "/releases/notes", []string{"releases", "notes"}},
		{"trailing slash", "releases/notes/", []string{"releases", "notes"}},
		{"doubled slash", "releases//notes", []string{"releases", "notes"}},
		{"root", "/", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pathComponents(tt.path))
		})
	}
}

func TestFTPClient_OperationsRequireConnection(t *testing.T) {
	client := newDisconnectedClient()

	ops := map[string]func() error{
		"delete": func() error { return client.DeleteFile("app.exe") },
		"rename": func() error { return client.RenameFile("app.exe", "old/app.exe") },
		"ensure_directory": func() error { return client.EnsureDirectory("old_versions") },
		"change_directory": func() error { return client.ChangeDirectory("/releases") },
		"file_exists": func() error {
			_, err := client.FileExists("app.exe")
			return err
		},
		"directory_exists": func() error {
			_, err := client.DirectoryExists("old_versions")
			return err
		},
		"list_directories": func() error {
			_, err := client.ListDirectories()
			return err
		},
		"upload": func() error {
			_, err := client.UploadFile("dist/app.exe")
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrNotConnected)

			var transportErr *errors.TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, "ftp.example.com", transportErr.Host)
		})
	}
}

func TestFTPClient_DisconnectWithoutConnection(t *testing.T) {
	client := newDisconnectedClient()
	// Must be a no-op, not a panic.
	client.Disconnect()
	client.Disconnect()
}

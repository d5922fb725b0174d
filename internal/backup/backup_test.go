package backup

import (
	"strings"
	"testing"
	"time"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
	"github.com/BenjaminKobjolke/release-tool/internal/testutil"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 15, 30, 45, 0, time.Local)
}

func TestNewHandler_SelectsVariant(t *testing.T) {
	deleteCfg := config.OldFileConfig{Policy: config.PolicyDelete}
	if _, ok := NewHandler(deleteCfg, logging.Nop()).(*DeleteHandler); !ok {
		t.Error("delete policy should produce a DeleteHandler")
	}

	renameCfg := config.OldFileConfig{
		Policy:          config.PolicyRename,
		SubfolderBase:   "old_versions",
		SubfolderNaming: config.NamingTimestamp,
	}
	if _, ok := NewHandler(renameCfg, logging.Nop()).(*RenameHandler); !ok {
		t.Error("rename policy should produce a RenameHandler")
	}
}

func TestDeleteHandler(t *testing.T) {
	fake := &testutil.FakeTransport{Files: map[string]bool{"app.exe": true}}
	handler := &DeleteHandler{logger: logging.Nop()}

	if err := handler.Handle(fake, "app.exe", "1.2.3"); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if len(fake.Deleted) != 1 || fake.Deleted[0] != "app.exe" {
		t.Errorf("Deleted = %v, want exactly [app.exe]", fake.Deleted)
	}
	if len(fake.Renames) != 0 {
		t.Errorf("delete handler must never rename, got %v", fake.Renames)
	}
	if len(fake.Ensured) != 0 {
		t.Errorf("delete handler must never create directories, got %v", fake.Ensured)
	}
}

func TestDeleteHandler_PropagatesTransportError(t *testing.T) {
	fake := &testutil.FakeTransport{DeleteErr: testutil.TransportFailure("delete")}
	handler := &DeleteHandler{logger: logging.Nop()}

	err := handler.Handle(fake, "app.exe", "")
	if !errors.IsTransport(err) {
		t.Errorf("Handle() = %v, want transport error", err)
	}
}

func TestRenameHandler_Suffix(t *testing.T) {
	tests := []struct {
		name    string
		naming  config.SubfolderNaming
		version string
		want    string
	}{
		{"timestamp naming", config.NamingTimestamp, "1.2.3", "20260830_153045"},
		{"version naming with version", config.NamingVersion, "1.2.3", "1.2.3"},
		{"version naming without version falls back", config.NamingVersion, "", "20260830_153045"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRenameHandler("old_versions", tt.naming, logging.Nop(), fixedClock)
			fake := &testutil.FakeTransport{Files: map[string]bool{"app.exe": true}}

			if err := handler.Handle(fake, "app.exe", tt.version); err != nil {
				t.Fatalf("Handle() error: %v", err)
			}

			wantDirs := []string{"old_versions", "old_versions/" + tt.want}
			if len(fake.Ensured) != 2 || fake.Ensured[0] != wantDirs[0] || fake.Ensured[1] != wantDirs[1] {
				t.Errorf("Ensured = %v, want %v", fake.Ensured, wantDirs)
			}

			wantRename := testutil.Rename{From: "app.exe", To: "old_versions/" + tt.want + "/app.exe"}
			if len(fake.Renames) != 1 || fake.Renames[0] != wantRename {
				t.Errorf("Renames = %v, want [%v]", fake.Renames, wantRename)
			}
		})
	}
}

func TestRenameHandler_FallbackWarns(t *testing.T) {
	var buf logCapture
	handler := NewRenameHandler("old_versions", config.NamingVersion, logging.New(&buf, logging.LevelWarn), fixedClock)
	fake := &testutil.FakeTransport{}

	if err := handler.Handle(fake, "app.exe", ""); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !buf.contains("falling back to timestamp naming") {
		t.Errorf("expected fallback warning, got log output: %s", buf.String())
	}
}

func TestRenameHandler_PropagatesTransportError(t *testing.T) {
	t.Run("ensure directory fails", func(t *testing.T) {
		fake := &testutil.FakeTransport{EnsureErr: testutil.TransportFailure("ensure_directory")}
		handler := NewRenameHandler("old_versions", config.NamingTimestamp, logging.Nop(), fixedClock)

		if err := handler.Handle(fake, "app.exe", ""); !errors.IsTransport(err) {
			t.Errorf("Handle() = %v, want transport error", err)
		}
		if len(fake.Renames) != 0 {
			t.Errorf("no rename should happen after a failed mkdir, got %v", fake.Renames)
		}
	})

	t.Run("rename fails", func(t *testing.T) {
		fake := &testutil.FakeTransport{RenameErr: testutil.TransportFailure("rename")}
		handler := NewRenameHandler("old_versions", config.NamingTimestamp, logging.Nop(), fixedClock)

		if err := handler.Handle(fake, "app.exe", ""); !errors.IsTransport(err) {
			t.Errorf("Handle() = %v, want transport error", err)
		}
	})
}

// logCapture is a minimal io.Writer capturing log output for assertions.
type logCapture struct {
	data []byte
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.data = append(c.data, p...)
	return len(p), nil
}

func (c *logCapture) String() string { return string(c.data) }

func (c *logCapture) contains(s string) bool {
	return strings.Contains(c.String(), s)
}

// Package backup decides how a previously published artifact is
// neutralized on the remote store before a new upload: deleted outright,
// or moved into a dated or versioned backup subfolder.
package backup

import (
	"fmt"
	"time"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
	"github.com/BenjaminKobjolke/release-tool/internal/transport"
)

// timestampLayout formats backup subfolder names from local time,
// e.g. 20260830_153045.
const timestampLayout = "20060102_150405"

// Handler disposes of an existing remote artifact before upload.
// The variant set is closed: exactly DeleteHandler and RenameHandler
// exist, selected from configuration by NewHandler.
type Handler interface {
	// Handle neutralizes the remote file. version may be empty.
	Handle(t transport.Transport, filename, version string) error
}

// NewHandler returns the Handler selected by the old-file configuration.
func NewHandler(cfg config.OldFileConfig, logger *logging.Logger) Handler {
	log := logger.WithComponent("backup")
	if cfg.Policy == config.PolicyDelete {
		return &DeleteHandler{logger: log}
	}
	return &RenameHandler{
		SubfolderBase: cfg.SubfolderBase,
		Naming:        cfg.SubfolderNaming,
		logger:        log,
		now:           time.Now,
	}
}

// DeleteHandler removes the existing remote artifact unconditionally.
type DeleteHandler struct {
	logger *logging.Logger
}

// Handle deletes the remote file.
func (h *DeleteHandler) Handle(t transport.Transport, filename, version string) error {
	if err := t.DeleteFile(filename); err != nil {
		return err
	}
	h.logger.Info("deleted old file", "name", filename)
	return nil
}

// RenameHandler moves the existing remote artifact into a backup
// subfolder named after the current timestamp or the supplied version.
type RenameHandler struct {
	SubfolderBase string
	Naming        config.SubfolderNaming

	logger *logging.Logger
	now    func() time.Time
}

// NewRenameHandler creates a RenameHandler with an injectable clock,
// used by tests that pin the timestamp suffix.
func NewRenameHandler(base string, naming config.SubfolderNaming, logger *logging.Logger, now func() time.Time) *RenameHandler {
	if now == nil {
		now = time.Now
	}
	return &RenameHandler{
		SubfolderBase: base,
		Naming:        naming,
		logger:        logger.WithComponent("backup"),
		now:           now,
	}
}

// Handle moves the remote file to {SubfolderBase}/{suffix}/{filename},
// creating both directory levels first. With version naming and no
// version supplied it falls back to a timestamp suffix and warns; that
// is degraded behavior, not an error.
func (h *RenameHandler) Handle(t transport.Transport, filename, version string) error {
	h.logger.Debug("handling old file",
		"name", filename, "version", version,
		"subfolder_base", h.SubfolderBase, "naming", string(h.Naming))

	suffix := h.suffix(version)
	subfolder := fmt.Sprintf("%s/%s", h.SubfolderBase, suffix)
	h.logger.Debug("target subfolder", "path", subfolder)

	if err := t.EnsureDirectory(h.SubfolderBase); err != nil {
		return err
	}
	if err := t.EnsureDirectory(subfolder); err != nil {
		return err
	}

	newPath := fmt.Sprintf("%s/%s", subfolder, filename)
	if err := t.RenameFile(filename, newPath); err != nil {
		return err
	}
	h.logger.Info("moved old file", "destination", newPath)
	return nil
}

func (h *RenameHandler) suffix(version string) string {
	if h.Naming == config.NamingTimestamp {
		return h.now().Format(timestampLayout)
	}
	if version == "" {
		h.logger.Warn("no version provided, falling back to timestamp naming")
		return h.now().Format(timestampLayout)
	}
	return version
}

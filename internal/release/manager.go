// Package release orchestrates the end-to-end release workflow: the
// optional version-collision gate, optional pre-signing, backup of any
// previously published artifact, the upload itself and the optional
// release-notes sync.
package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BenjaminKobjolke/release-tool/internal/backup"
	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
	"github.com/BenjaminKobjolke/release-tool/internal/notes"
	"github.com/BenjaminKobjolke/release-tool/internal/presign"
	"github.com/BenjaminKobjolke/release-tool/internal/transport"
)

// ConfirmFunc resolves an overwrite prompt at the entry-point boundary.
// It receives the prompt text and returns the operator's decision. The
// workflow never reads terminal input itself.
type ConfirmFunc func(prompt string) (bool, error)

// Signer is the pre-sign capability the orchestrator delegates to.
// It returns the path to upload, which may be the original path now
// containing signed bytes.
type Signer interface {
	Process(ctx context.Context, filePath string) (string, error)
}

// Options configures a Manager. Zero-value fields fall back to production
// collaborators built from the configuration.
type Options struct {
	// Transport overrides the FTP client, for tests.
	Transport transport.Transport
	// Signer overrides the pre-signer, for tests. Ignored unless
	// pre-signing is enabled in the configuration.
	Signer Signer
	// Confirm resolves the overwrite prompt. When nil, a collision is
	// treated as declined.
	Confirm ConfirmFunc
	// Logger receives workflow events. When nil, output is discarded.
	Logger *logging.Logger
	// DryRun previews the release without touching anything.
	DryRun bool
	// Version is the previous-version string used for backup folder
	// naming and the collision gate. May be empty.
	Version string
}

// Manager runs one release. It owns the remote session for the duration
// of the release; a Manager is not reused across releases.
type Manager struct {
	cfg     *config.Config
	t       transport.Transport
	signer  Signer
	handler backup.Handler
	confirm ConfirmFunc
	logger  *logging.Logger
	dryRun  bool
	version string
}

// NewManager creates a Manager for the given validated configuration.
func NewManager(cfg *config.Config, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	t := opts.Transport
	if t == nil {
		t = transport.NewFTPClient(cfg.FTP, logger)
	}

	var signer Signer
	if cfg.PreSign.Enabled {
		signer = opts.Signer
		if signer == nil {
			signer = presign.NewPreSigner(cfg.PreSign, presign.NewPowerShellInspector(logger), logger)
		}
	}

	confirm := opts.Confirm
	if confirm == nil {
		confirm = func(string) (bool, error) { return false, nil }
	}

	return &Manager{
		cfg:     cfg,
		t:       t,
		signer:  signer,
		handler: backup.NewHandler(cfg.OldFile, logger),
		confirm: confirm,
		logger:  logger.WithComponent("release"),
		dryRun:  opts.DryRun,
		version: opts.Version,
	}
}

// Release runs the workflow for the artifact at artifactPath.
//
// The boolean result distinguishes a graceful refusal from success: false
// means a locally detected precondition failure (missing artifact) or an
// operator-declined overwrite. Transport and pre-sign failures return an
// error instead, so the caller can map them to distinct exit codes.
func (m *Manager) Release(ctx context.Context, artifactPath string) (bool, error) {
	if _, err := os.Stat(artifactPath); err != nil {
		m.logger.Error("file not found", "path", artifactPath)
		return false, nil
	}

	filename := filepath.Base(artifactPath)
	m.logger.Info("starting release", "name", filename)

	if m.dryRun {
		m.previewRelease(artifactPath)
		return true, nil
	}

	return m.executeRelease(ctx, artifactPath)
}

// previewRelease prints what a live run would do, performing no remote or
// filesystem mutation.
func (m *Manager) previewRelease(artifactPath string) {
	filename := filepath.Base(artifactPath)

	if m.signer != nil {
		m.logger.Info("[DRY RUN] pre-signing enabled")
		m.logger.Info("[DRY RUN] would copy to exchange", "name", filename, "path", m.cfg.PreSign.NetworkPath)
		m.logger.Info("[DRY RUN] would wait for signed file", "path", m.cfg.PreSign.NetworkPathSigned)
		m.logger.Info("[DRY RUN] expected signer", "signer", m.cfg.PreSign.ExpectedSigner)
		m.logger.Info("[DRY RUN] polling settings",
			"poll_interval", m.cfg.PreSign.PollInterval().String(),
			"timeout", m.cfg.PreSign.Timeout().String())
		m.logger.Info("[DRY RUN] would move signed file back to source location")
	}

	m.logger.Info("[DRY RUN] would connect to FTP server",
		"host", m.cfg.FTP.Host, "port", m.cfg.FTP.Port)
	m.logger.Info("[DRY RUN] remote path", "path", m.cfg.FTP.RemotePath)
	m.logger.Info("[DRY RUN] would check if file exists on remote", "name", filename)
	m.logger.Info("[DRY RUN] old file policy", "policy", string(m.cfg.OldFile.Policy))
	if m.version != "" {
		m.logger.Info("[DRY RUN] version for backup", "version", m.version)
	}
	m.logger.Info("[DRY RUN] would upload", "path", artifactPath)

	if m.cfg.ReleaseNotes.Configured() {
		uploader := notes.NewUploader(m.cfg.ReleaseNotes, m.t, m.logger, true)
		_, _ = uploader.Upload()
	}

	m.logger.Info("[DRY RUN] would disconnect from FTP server")
}

// checkVersionCollision opens its own short session and checks whether a
// backup folder for the supplied version already exists. An existing
// folder is put to the operator; anything but an affirmative answer
// aborts the release. The gate only applies with the rename policy and a
// supplied version.
func (m *Manager) checkVersionCollision(ctx context.Context) (bool, error) {
	if m.version == "" || m.cfg.OldFile.Policy != config.PolicyRename {
		return true, nil
	}

	versionPath := fmt.Sprintf("%s/%s", m.cfg.OldFile.SubfolderBase, m.version)

	if err := m.t.Connect(ctx); err != nil {
		return false, err
	}
	defer m.t.Disconnect()

	exists, err := m.t.DirectoryExists(versionPath)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	m.logger.Warn("version folder already exists", "path", versionPath)
	confirmed, err := m.confirm(fmt.Sprintf("Version %s already exists. Overwrite? [y/N]: ", m.version))
	if err != nil {
		return false, err
	}
	if !confirmed {
		m.logger.Info("aborted by operator")
		return false, nil
	}
	return true, nil
}

func (m *Manager) executeRelease(ctx context.Context, artifactPath string) (bool, error) {
	filename := filepath.Base(artifactPath)

	// The collision gate runs before pre-signing so an aborted release
	// never wastes a signing round trip.
	proceed, err := m.checkVersionCollision(ctx)
	if err != nil {
		return false, err
	}
	if !proceed {
		return false, nil
	}

	if m.signer != nil {
		m.logger.Info("starting pre-signing process")
		artifactPath, err = m.signer.Process(ctx, artifactPath)
		if err != nil {
			return false, err
		}
	}

	if err := m.t.Connect(ctx); err != nil {
		return false, err
	}
	defer m.t.Disconnect()

	m.logger.Debug("checking remote for existing file", "name", filename)
	exists, err := m.t.FileExists(filename)
	if err != nil {
		return false, err
	}
	if exists {
		m.logger.Info("existing file found", "name", filename)
		m.logger.Debug("invoking old file handler", "version", m.version)
		if err := m.handler.Handle(m.t, filename, m.version); err != nil {
			return false, err
		}
	} else {
		m.logger.Debug("no existing file found on remote", "name", filename)
	}

	if _, err := m.t.UploadFile(artifactPath); err != nil {
		return false, err
	}
	m.logger.Info("successfully released", "name", filename)

	if m.cfg.ReleaseNotes.Configured() {
		uploader := notes.NewUploader(m.cfg.ReleaseNotes, m.t, m.logger, false)
		if _, err := uploader.Upload(); err != nil {
			return false, err
		}
	}

	return true, nil
}

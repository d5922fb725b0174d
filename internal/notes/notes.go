// Package notes mirrors newly added local release-notes folders to the
// remote notes path. Each immediate subdirectory of the local folder is
// one release-notes version; folders already present remotely are
// skipped, so the sync is safe to run on every release.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
	"github.com/BenjaminKobjolke/release-tool/internal/transport"
)

// Uploader syncs release-notes folders over an already open session.
type Uploader struct {
	cfg    config.ReleaseNotesConfig
	t      transport.Transport
	logger *logging.Logger
	dryRun bool
}

// NewUploader creates an Uploader using the given open transport session.
func NewUploader(cfg config.ReleaseNotesConfig, t transport.Transport, logger *logging.Logger, dryRun bool) *Uploader {
	return &Uploader{
		cfg:    cfg,
		t:      t,
		logger: logger.WithComponent("notes"),
		dryRun: dryRun,
	}
}

// Upload mirrors new local version folders to the remote notes path.
// A missing or empty local folder is nothing to do, not a failure.
// Remote failures propagate as transport errors and abort the sync.
func (u *Uploader) Upload() (bool, error) {
	info, err := os.Stat(u.cfg.LocalPath)
	if err != nil {
		u.logger.Info("release notes path not found, nothing to sync", "path", u.cfg.LocalPath)
		return true, nil
	}
	if !info.IsDir() {
		u.logger.Info("release notes path is not a directory, nothing to sync", "path", u.cfg.LocalPath)
		return true, nil
	}

	localFolders, err := u.localFolders()
	if err != nil {
		u.logger.Warn("failed to read release notes folder", "path", u.cfg.LocalPath, "error", err)
		return true, nil
	}
	if len(localFolders) == 0 {
		u.logger.Info("no release notes folders found locally")
		return true, nil
	}

	if u.dryRun {
		u.previewUpload(localFolders)
		return true, nil
	}

	return u.executeUpload(localFolders)
}

// localFolders returns the names of the immediate subdirectories of the
// local notes folder, sorted by name.
func (u *Uploader) localFolders() ([]string, error) {
	entries, err := os.ReadDir(u.cfg.LocalPath)
	if err != nil {
		return nil, err
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)
	u.logger.Debug("local release notes folders", "folders", folders)
	return folders, nil
}

// remoteFolders lists the version folders already present remotely.
// A listing failure means "no remote folders" rather than an abort.
func (u *Uploader) remoteFolders() []string {
	if err := u.t.ChangeDirectory(u.cfg.RemotePath); err != nil {
		u.logger.Debug("could not enter remote notes path", "path", u.cfg.RemotePath, "error", err)
		return nil
	}
	folders, err := u.t.ListDirectories()
	if err != nil {
		u.logger.Debug("could not list remote notes folders", "error", err)
		return nil
	}
	u.logger.Debug("remote release notes folders", "folders", folders)
	return folders
}

func (u *Uploader) previewUpload(localFolders []string) {
	u.logger.Info("[DRY RUN] release notes upload")
	u.logger.Info("[DRY RUN] local path", "path", u.cfg.LocalPath)
	u.logger.Info("[DRY RUN] remote path", "path", u.cfg.RemotePath)
	u.logger.Info("[DRY RUN] local folders", "folders", localFolders)
	u.logger.Info("[DRY RUN] would check remote for existing folders")
	u.logger.Info("[DRY RUN] would upload new folders")
}

func (u *Uploader) executeUpload(localFolders []string) (bool, error) {
	if err := u.t.EnsureDirectory(u.cfg.RemotePath); err != nil {
		return false, err
	}

	remote := make(map[string]bool)
	for _, name := range u.remoteFolders() {
		remote[name] = true
	}

	var newFolders []string
	for _, name := range localFolders {
		if !remote[name] {
			newFolders = append(newFolders, name)
		}
	}

	if len(newFolders) == 0 {
		u.logger.Info("no new release notes folders to upload")
		return true, nil
	}
	u.logger.Info("uploading new release notes folders", "folders", newFolders)

	for _, name := range newFolders {
		if err := u.uploadFolder(name); err != nil {
			return false, err
		}
	}

	u.logger.Info("release notes upload complete")
	return true, nil
}

// uploadFolder creates the matching remote directory and uploads every
// regular file directly inside the local folder. One level only;
// subdirectories within a version folder are not descended into.
func (u *Uploader) uploadFolder(name string) error {
	localFolder := filepath.Join(u.cfg.LocalPath, name)
	remoteFolder := fmt.Sprintf("%s/%s", u.cfg.RemotePath, name)

	u.logger.Info("uploading release notes folder", "folder", name)

	if err := u.t.EnsureDirectory(remoteFolder); err != nil {
		return err
	}
	if err := u.t.ChangeDirectory(remoteFolder); err != nil {
		return err
	}

	entries, err := os.ReadDir(localFolder)
	if err != nil {
		u.logger.Warn("failed to read local folder", "folder", localFolder, "error", err)
		return nil
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if _, err := u.t.UploadFile(filepath.Join(localFolder, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

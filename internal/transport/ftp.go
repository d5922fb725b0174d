package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
)

// dialTimeout bounds the initial TCP connect.
const dialTimeout = 30 * time.Second

// FTPClient is the production Transport over plain FTP.
type FTPClient struct {
	cfg    config.FTPConfig
	logger *logging.Logger
	conn   *ftp.ServerConn
}

var _ Transport = (*FTPClient)(nil)

// NewFTPClient creates an FTP-backed Transport for the given connection
// settings. The client is not connected until Connect is called.
func NewFTPClient(cfg config.FTPConfig, logger *logging.Logger) *FTPClient {
	return &FTPClient{
		cfg:    cfg,
		logger: logger.WithComponent("transport"),
	}
}

// Connect establishes the FTP session, logs in and navigates to the
// configured remote path, creating it recursively when absent.
func (c *FTPClient) Connect(ctx context.Context) error {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))

	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return errors.NewTransportError("failed to connect to FTP server", err).
			WithHost(c.cfg.Host).WithOp("connect")
	}

	if err := conn.Login(c.cfg.Username, c.cfg.Password); err != nil {
		_ = conn.Quit()
		return errors.NewTransportError("login rejected", err).
			WithHost(c.cfg.Host).WithOp("connect")
	}

	c.conn = conn

	if c.cfg.RemotePath != "" && c.cfg.RemotePath != "/" {
		c.logger.Debug("changing to remote path", "path", c.cfg.RemotePath)
		if err := conn.ChangeDir(c.cfg.RemotePath); err != nil {
			c.logger.Debug("remote path does not exist, creating", "path", c.cfg.RemotePath)
			if err := c.EnsureDirectory(c.cfg.RemotePath); err != nil {
				c.Disconnect()
				return err
			}
			if err := conn.ChangeDir(c.cfg.RemotePath); err != nil {
				c.Disconnect()
				return errors.NewTransportError("failed to enter remote path", err).
					WithHost(c.cfg.Host).WithPath(c.cfg.RemotePath).WithOp("connect")
			}
		}
	}

	if cwd, err := conn.CurrentDir(); err == nil {
		c.logger.Debug("current working directory", "cwd", cwd)
	}
	c.logger.Info("connected to FTP server", "host", c.cfg.Host, "port", c.cfg.Port)

	return nil
}

// Disconnect closes the FTP session gracefully. A failed QUIT is
// swallowed; the connection is dropped either way.
func (c *FTPClient) Disconnect() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Quit(); err != nil {
		c.logger.Debug("quit failed, dropping connection", "error", err)
	}
	c.conn = nil
	c.logger.Info("disconnected from FTP server", "host", c.cfg.Host)
}

// FileExists probes the file with a binary-mode SIZE request. A refused
// SIZE means the file is not there.
func (c *FTPClient) FileExists(name string) (bool, error) {
	if c.conn == nil {
		return false, c.notConnected("file_exists", name)
	}

	// SIZE is only reliable in binary mode.
	if err := c.conn.Type(ftp.TransferTypeBinary); err != nil {
		return false, errors.NewTransportError("failed to switch to binary mode", err).
			WithHost(c.cfg.Host).WithOp("file_exists")
	}

	size, err := c.conn.FileSize(name)
	if err != nil {
		c.logger.Debug("file does not exist", "name", name, "error", err)
		return false, nil
	}
	c.logger.Debug("file exists", "name", name, "size", size)
	return true, nil
}

// DirectoryExists probes the path with a change-directory round trip.
func (c *FTPClient) DirectoryExists(path string) (bool, error) {
	if c.conn == nil {
		return false, c.notConnected("directory_exists", path)
	}

	cwd, err := c.conn.CurrentDir()
	if err != nil {
		return false, errors.NewTransportError("failed to read working directory", err).
			WithHost(c.cfg.Host).WithOp("directory_exists")
	}

	if err := c.conn.ChangeDir(path); err != nil {
		c.logger.Debug("directory does not exist", "path", path, "error", err)
		return false, nil
	}

	if err := c.conn.ChangeDir(cwd); err != nil {
		return false, errors.NewTransportError("failed to return to working directory", err).
			WithHost(c.cfg.Host).WithPath(cwd).WithOp("directory_exists")
	}
	return true, nil
}

// DeleteFile removes a file in the current remote directory.
func (c *FTPClient) DeleteFile(name string) error {
	if c.conn == nil {
		return c.notConnected("delete", name)
	}

	if err := c.conn.Delete(name); err != nil {
		return errors.NewTransportError("failed to delete file", err).
			WithHost(c.cfg.Host).WithPath(name).WithOp("delete")
	}
	c.logger.Info("deleted remote file", "name", name)
	return nil
}

// RenameFile renames or moves a file on the remote side.
func (c *FTPClient) RenameFile(oldName, newName string) error {
	if c.conn == nil {
		return c.notConnected("rename", oldName)
	}

	c.logger.Debug("renaming remote file", "from", oldName, "to", newName)
	if err := c.conn.Rename(oldName, newName); err != nil {
		return errors.NewTransportError(fmt.Sprintf("failed to rename %s to %s", oldName, newName), err).
			WithHost(c.cfg.Host).WithPath(oldName).WithOp("rename")
	}
	c.logger.Info("renamed remote file", "from", oldName, "to", newName)
	return nil
}

// EnsureDirectory creates the directory path recursively. MKD on an
// existing component is not an error; FTP has no reliable way to tell
// "exists" apart from other refusals, so each component is attempted and
// refusals are logged at debug only.
func (c *FTPClient) EnsureDirectory(path string) error {
	if c.conn == nil {
		return c.notConnected("ensure_directory", path)
	}

	current := ""
	for _, dir := range pathComponents(path) {
		if current == "" {
			current = dir
		} else {
			current = current + "/" + dir
		}
		if err := c.conn.MakeDir(current); err != nil {
			c.logger.Debug("directory already exists or cannot be created", "path", current, "error", err)
		} else {
			c.logger.Debug("created directory", "path", current)
		}
	}
	return nil
}

// ChangeDirectory changes the current remote directory.
func (c *FTPClient) ChangeDirectory(path string) error {
	if c.conn == nil {
		return c.notConnected("change_directory", path)
	}

	if err := c.conn.ChangeDir(path); err != nil {
		return errors.NewTransportError("failed to change directory", err).
			WithHost(c.cfg.Host).WithPath(path).WithOp("change_directory")
	}
	return nil
}

// ListDirectories returns the immediate subdirectories of the current
// remote directory, sorted by name.
func (c *FTPClient) ListDirectories() ([]string, error) {
	if c.conn == nil {
		return nil, c.notConnected("list_directories", "")
	}

	entries, err := c.conn.List("")
	if err != nil {
		return nil, errors.NewTransportError("failed to list directory", err).
			WithHost(c.cfg.Host).WithOp("list_directories")
	}

	var names []string
	for _, entry := range entries {
		if entry.Type != ftp.EntryTypeFolder {
			continue
		}
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names, nil
}

// UploadFile uploads the local file into the current remote directory
// under its base name.
func (c *FTPClient) UploadFile(localPath string) (string, error) {
	name := filepath.Base(localPath)
	if c.conn == nil {
		return "", c.notConnected("upload", name)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.NewTransportError("failed to open local file", err).
			WithHost(c.cfg.Host).WithPath(localPath).WithOp("upload")
	}
	defer f.Close()

	c.logger.Debug("uploading file", "local", localPath, "remote", name)
	if err := c.conn.Type(ftp.TransferTypeBinary); err != nil {
		return "", errors.NewTransportError("failed to switch to binary mode", err).
			WithHost(c.cfg.Host).WithOp("upload")
	}
	if err := c.conn.Stor(name, f); err != nil {
		return "", errors.NewTransportError("failed to upload file", err).
			WithHost(c.cfg.Host).WithPath(name).WithOp("upload")
	}
	c.logger.Info("uploaded file", "name", name)
	return name, nil
}

func (c *FTPClient) notConnected(op, path string) error {
	return errors.NewTransportError("no open session", errors.ErrNotConnected).
		WithHost(c.cfg.Host).WithPath(path).WithOp(op)
}

// pathComponents splits a remote path into its directory components,
// dropping empty segments from leading, trailing or doubled slashes.
func pathComponents(path string) []string {
	var components []string
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part != "" {
			components = append(components, part)
		}
	}
	return components
}

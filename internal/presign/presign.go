// Package presign implements the pre-release signing workflow: stage the
// artifact to a network exchange location, poll the signed-output location
// until a counterpart signed by the expected identity appears, then
// substitute the signed bytes for the original and clean up both copies.
package presign

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
)

// PreSigner drives the signing workflow for one artifact.
type PreSigner struct {
	cfg       config.PreSignConfig
	inspector Inspector
	logger    *logging.Logger

	// Injected for tests; default to the wall clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPreSigner creates a PreSigner using the given signature Inspector.
func NewPreSigner(cfg config.PreSignConfig, inspector Inspector, logger *logging.Logger) *PreSigner {
	return &PreSigner{
		cfg:       cfg,
		inspector: inspector,
		logger:    logger.WithComponent("presign"),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// sleepCtx sleeps for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Process copies the artifact to the exchange location, waits for a
// counterpart signed by the expected identity, overwrites the original
// with the signed bytes and cleans up both network copies. It returns the
// original path, now containing signed content, for upload.
func (p *PreSigner) Process(ctx context.Context, filePath string) (string, error) {
	filename := filepath.Base(filePath)
	p.logger.Info("pre-signing", "name", filename)
	p.logger.Debug("pre-sign settings",
		"network_path", p.cfg.NetworkPath,
		"network_path_signed", p.cfg.NetworkPathSigned,
		"expected_signer", p.cfg.ExpectedSigner)

	exchangeFile, err := p.copyToExchange(filePath)
	if err != nil {
		return "", err
	}

	signedFile, err := p.waitForSignature(ctx, filename)
	if err != nil {
		return "", err
	}

	if err := p.moveBack(signedFile, exchangeFile, filePath); err != nil {
		return "", err
	}

	p.logger.Info("pre-signing complete", "name", filename)
	return filePath, nil
}

// copyToExchange stages the artifact into the exchange location and
// returns the destination path. An inaccessible exchange location fails
// fast before any waiting starts.
func (p *PreSigner) copyToExchange(filePath string) (string, error) {
	if _, err := os.Stat(p.cfg.NetworkPath); err != nil {
		return "", errors.NewPreSignError(
			fmt.Sprintf("network path not accessible: %s", p.cfg.NetworkPath),
			errors.ErrExchangeUnavailable)
	}

	dest := filepath.Join(p.cfg.NetworkPath, filepath.Base(filePath))
	p.logger.Debug("copying to exchange", "from", filePath, "to", dest)

	if err := copyFile(filePath, dest); err != nil {
		return "", errors.NewPreSignError("failed to copy file to exchange", err)
	}

	p.logger.Info("copied to exchange path", "path", dest)
	return dest, nil
}

// waitForSignature polls the signed-output location at the configured
// interval until the artifact appears there signed by the expected
// identity, or the timeout elapses. The timeout counts from the start of
// waiting. A poll that finds no file is a continued wait, not an error.
func (p *PreSigner) waitForSignature(ctx context.Context, filename string) (string, error) {
	start := p.now()
	pollCount := 0
	lastSigner := ""

	signedFile := filepath.Join(p.cfg.NetworkPathSigned, filename)
	p.logger.Info("waiting for signed file",
		"path", signedFile,
		"timeout", p.cfg.Timeout().String(),
		"poll_interval", p.cfg.PollInterval().String())

	for {
		elapsed := p.now().Sub(start)
		if elapsed >= p.cfg.Timeout() {
			return "", errors.NewPreSignError("no verified signature appeared", errors.ErrSignTimeout).
				WithTimeout(p.cfg.Timeout()).WithSigner(lastSigner)
		}

		pollCount++
		remaining := (p.cfg.Timeout() - elapsed).Round(time.Second)

		if _, err := os.Stat(signedFile); err != nil {
			p.logger.Info("waiting for signed file",
				"remaining", remaining.String(),
				"status", "file not yet in signed directory")
			if err := p.sleep(ctx, p.cfg.PollInterval()); err != nil {
				return "", err
			}
			continue
		}

		signer, ok := p.inspector.GetSigner(ctx, signedFile)
		p.logger.Debug("signature poll", "poll", pollCount, "signer", signer)

		if ok && signer == p.cfg.ExpectedSigner {
			p.logger.Info("signature verified", "signer", signer)
			return signedFile, nil
		}

		current := signer
		if current == "" {
			current = "unsigned"
		}
		lastSigner = current
		p.logger.Info("waiting for signature",
			"remaining", remaining.String(),
			"current", current)
		if err := p.sleep(ctx, p.cfg.PollInterval()); err != nil {
			return "", err
		}
	}
}

// moveBack overwrites the original artifact with the signed bytes and
// removes both the signed-location and exchange-location copies. Copying
// over the original instead of renaming dodges permission quirks on the
// network share.
func (p *PreSigner) moveBack(signedFile, exchangeFile, originalPath string) error {
	p.logger.Debug("moving signed file back", "from", signedFile, "to", originalPath)

	if err := copyFile(signedFile, originalPath); err != nil {
		return errors.NewPreSignError("failed to copy signed file back", err)
	}
	if err := os.Remove(signedFile); err != nil {
		return errors.NewPreSignError("failed to remove signed copy", err)
	}
	p.logger.Debug("removed signed copy", "path", signedFile)

	if _, err := os.Stat(exchangeFile); err == nil {
		if err := os.Remove(exchangeFile); err != nil {
			return errors.NewPreSignError("failed to remove exchange copy", err)
		}
		p.logger.Debug("removed exchange copy", "path", exchangeFile)
	}

	p.logger.Info("moved signed file back", "path", originalPath)
	return nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

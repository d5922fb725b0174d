package presign

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/BenjaminKobjolke/release-tool/internal/logging"
)

// inspectTimeout bounds one signature-inspection invocation.
const inspectTimeout = 30 * time.Second

// Inspector extracts the signer identity from a signed file.
// Implementations must never fail the polling loop: any inspection
// problem is reported as "no signer".
type Inspector interface {
	// GetSigner returns the signer's common name and true when the file
	// carries a usable signature, or "" and false otherwise.
	GetSigner(ctx context.Context, path string) (string, bool)
}

// PowerShellInspector reads Authenticode signatures via PowerShell's
// Get-AuthenticodeSignature cmdlet. It is the production Inspector on
// the Windows build hosts this tool runs on.
type PowerShellInspector struct {
	logger *logging.Logger
}

var _ Inspector = (*PowerShellInspector)(nil)

// NewPowerShellInspector creates the PowerShell-backed Inspector.
func NewPowerShellInspector(logger *logging.Logger) *PowerShellInspector {
	return &PowerShellInspector{logger: logger.WithComponent("presign")}
}

// GetSigner invokes PowerShell to read the signer certificate subject and
// extracts its CN component. Tool failures and timeouts yield "absent",
// never an error, so polling continues.
func (i *PowerShellInspector) GetSigner(ctx context.Context, path string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, inspectTimeout)
	defer cancel()

	script := fmt.Sprintf("(Get-AuthenticodeSignature '%s').SignerCertificate.Subject", path)
	out, err := exec.CommandContext(ctx, "powershell", "-Command", script).Output()
	if err != nil {
		if ctx.Err() != nil {
			i.logger.Warn("signature check timed out", "path", path)
		} else {
			i.logger.Warn("failed to run signature check", "path", path, "error", err)
		}
		return "", false
	}

	return parseCommonName(string(out))
}

// parseCommonName extracts the CN= component from a certificate subject
// distinguished name, e.g. "CN=XIDA GmbH, O=XIDA GmbH, C=DE" -> "XIDA GmbH".
func parseCommonName(subject string) (string, bool) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", false
	}

	for _, part := range strings.Split(subject, ",") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, "CN="); ok {
			name := strings.TrimSpace(rest)
			if name == "" {
				return "", false
			}
			return name, true
		}
	}
	return "", false
}

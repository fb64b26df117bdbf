//go:build !windows

package secrets

import (
	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// NewProtector returns the credential protector for platforms without a
// protection mechanism. It reports unavailable, and Protect always fails.
func NewProtector() Protector {
	return &unavailableProtector{}
}

type unavailableProtector struct{}

func (p *unavailableProtector) Available() bool {
	return false
}

func (p *unavailableProtector) Protect(secret string) (string, error) {
	return "", errors.NewCryptoError("credential protection is not supported on this platform", nil)
}

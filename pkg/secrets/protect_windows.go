//go:build windows

package secrets

import (
	"encoding/hex"
	"unsafe"

	"github.com/core-tools/hsu-svcctl/pkg/errors"

	"golang.org/x/sys/windows"
)

// NewProtector returns the DPAPI-backed credential protector
func NewProtector() Protector {
	return &dpapiProtector{}
}

type dpapiProtector struct{}

func (p *dpapiProtector) Available() bool {
	return true
}

// Protect encrypts the secret with DPAPI under the current user scope and
// returns the ciphertext hex-encoded, which is the form the daemon expects.
func (p *dpapiProtector) Protect(secret string) (string, error) {
	data := []byte(secret)

	var in windows.DataBlob
	in.Size = uint32(len(data))
	if len(data) > 0 {
		in.Data = &data[0]
	}

	var out windows.DataBlob
	err := windows.CryptProtectData(&in, nil, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out)
	if err != nil {
		return "", errors.NewCryptoError("failed to protect credential", err)
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))

	return hex.EncodeToString(unsafe.Slice(out.Data, out.Size)), nil
}

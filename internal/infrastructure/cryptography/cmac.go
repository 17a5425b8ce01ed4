package cryptography

import (
	"crypto/aes"
	"fmt"

	"github.com/aead/cmac"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

// AESCMACSign computes the AES-CMAC tag of message. Only AES-128 keys are
// accepted; any other key length fails with Unsupported.
func (m *KeyManager) AESCMACSign(key, message []byte) ([crypto.AESCMACSize]byte, error) {
	const op = "AESCMACSign"

	var tag [crypto.AESCMACSize]byte

	if key == nil {
		return tag, crypto.InvalidParameter(op, "key cannot be nil")
	}
	if len(key) != crypto.AESCMACKeySize {
		return tag, crypto.NewError(crypto.KindUnsupported, op, fmt.Errorf("AES key of %d bytes", len(key)))
	}

	m.provider.Initialize()

	block, err := aes.NewCipher(key)
	if err != nil {
		return tag, crypto.NewError(crypto.KindFailure, op, err)
	}

	sum, err := cmac.Sum(message, block, crypto.AESCMACSize)
	if err != nil {
		return tag, crypto.NewError(crypto.KindFailure, op, err)
	}

	copy(tag[:], sum)
	return tag, nil
}

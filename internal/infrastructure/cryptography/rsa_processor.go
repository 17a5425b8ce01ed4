package cryptography

import (
	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// RSAProcessor manages RSA key handles.
type RSAProcessor struct {
	algorithmProcessor
}

// NewRSAProcessor creates and returns a new instance of RSAProcessor
func NewRSAProcessor(manager *KeyManager, logger logger.Logger) (*RSAProcessor, error) {
	base, err := newAlgorithmProcessor(manager, crypto.AlgorithmRSA, logger)
	if err != nil {
		return nil, err
	}
	return &RSAProcessor{algorithmProcessor: base}, nil
}

// GenerateKeys generates an RSA key pair with the specified modulus size.
// Supported sizes: 2048, 3072, 4096 bits.
func (r *RSAProcessor) GenerateKeys(keySize int) (*PrivateKey, *PublicKey, error) {
	return r.generateKeys(keySize)
}

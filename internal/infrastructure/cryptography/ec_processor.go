package cryptography

import (
	"crypto/elliptic"
	"fmt"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// ECProcessor manages elliptic curve key handles.
type ECProcessor struct {
	algorithmProcessor
}

// NewECProcessor creates and returns a new instance of ECProcessor
func NewECProcessor(manager *KeyManager, logger logger.Logger) (*ECProcessor, error) {
	base, err := newAlgorithmProcessor(manager, crypto.AlgorithmEC, logger)
	if err != nil {
		return nil, err
	}
	return &ECProcessor{algorithmProcessor: base}, nil
}

// GenerateKeys generates a key pair on the NIST curve of the given size:
// 224, 256, 384 or 521.
func (e *ECProcessor) GenerateKeys(curveBits int) (*PrivateKey, *PublicKey, error) {
	return e.generateKeys(curveBits)
}

// GenerateKeysOnCurve generates a key pair on one of the NIST P curves.
func (e *ECProcessor) GenerateKeysOnCurve(curve elliptic.Curve) (*PrivateKey, *PublicKey, error) {
	if curve == nil {
		return nil, nil, crypto.InvalidParameter("GenerateKeysOnCurve", "curve cannot be nil")
	}
	bits := curve.Params().BitSize
	if curveForSize(bits) != curve {
		return nil, nil, crypto.NewError(crypto.KindUnsupported, "GenerateKeysOnCurve", fmt.Errorf("curve %s", curve.Params().Name))
	}
	return e.generateKeys(bits)
}

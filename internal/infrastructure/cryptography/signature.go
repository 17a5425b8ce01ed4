package cryptography

import (
	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

func checkDigest(op string, hashType crypto.HashType, hash []byte) error {
	if len(hash) == 0 {
		return crypto.InvalidParameter(op, "hash cannot be empty")
	}
	if !hashType.Valid() {
		return crypto.InvalidParameter(op, "unknown hash type %d", int(hashType))
	}
	if len(hash) < hashType.Size() {
		return crypto.InvalidParameter(op, "hash of %d bytes is shorter than %s", len(hash), hashType)
	}
	return nil
}

// Sign signs hash with key and writes the signature into sig, returning the
// number of bytes written.
//
// hashType only sets the minimum accepted length of hash. The signature
// itself is always bound to SignatureHash. If sig cannot hold the largest
// signature the key can produce, nothing is written and that size is
// returned with a BufferTooSmall error.
func (m *KeyManager) Sign(key *PrivateKey, hashType crypto.HashType, hash, sig []byte) (int, error) {
	const op = "Sign"

	if !key.Valid() {
		return 0, crypto.InvalidParameter(op, "invalid private key handle")
	}
	if err := checkDigest(op, hashType, hash); err != nil {
		return 0, err
	}

	m.provider.Initialize()

	required, err := m.provider.SignatureSize(key.material)
	if err != nil {
		return 0, crypto.NewError(crypto.KindFailure, op, err)
	}
	if len(sig) < required {
		return required, crypto.BufferTooSmall(op, required)
	}

	signature, err := m.provider.Sign(key.material, hash)
	if err != nil {
		return 0, crypto.NewError(crypto.KindFailure, op, err)
	}
	if len(signature) > required {
		return 0, crypto.NewError(crypto.KindUnexpected, op, nil)
	}

	m.logger.Debug("Signed ", len(hash), " byte digest with ", key.Algorithm(), " key")
	return copy(sig, signature), nil
}

// SignatureOf returns a freshly allocated signature of hash, negotiating the
// buffer size with Sign.
func (m *KeyManager) SignatureOf(key *PrivateKey, hashType crypto.HashType, hash []byte) ([]byte, error) {
	return negotiate(func(sig []byte) (int, error) {
		return m.Sign(key, hashType, hash, sig)
	})
}

// Verify checks sig over hash with key. A signature that does not match
// fails with VerifyFailed; every structural problem is InvalidParameter.
func (m *KeyManager) Verify(key *PublicKey, hashType crypto.HashType, hash, sig []byte) error {
	const op = "Verify"

	if !key.Valid() {
		return crypto.InvalidParameter(op, "invalid public key handle")
	}
	if err := checkDigest(op, hashType, hash); err != nil {
		return err
	}
	if len(sig) == 0 {
		return crypto.InvalidParameter(op, "signature cannot be empty")
	}

	m.provider.Initialize()

	if err := m.provider.Verify(key.material, hash, sig); err != nil {
		m.logger.Warn("Signature verification failed: ", err)
		return crypto.NewError(crypto.KindVerifyFailed, op, err)
	}
	return nil
}

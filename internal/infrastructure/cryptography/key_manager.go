package cryptography

import (
	"bytes"
	"fmt"

	"go.uber.org/multierr"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/logger"
)

// KeyManager creates, serializes, uses and frees key handles on top of a
// crypto provider. Every operation validates its arguments before the
// provider is touched and releases any provider resource it created on a
// failure path.
type KeyManager struct {
	provider crypto.Provider
	logger   logger.Logger
}

// NewKeyManager creates and returns a new KeyManager
func NewKeyManager(provider crypto.Provider, logger logger.Logger) (*KeyManager, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &KeyManager{
		provider: provider,
		logger:   logger,
	}, nil
}

// checkPEMContainer enforces the container shape: len(data) bytes with the
// only 0x00 byte in last position.
func checkPEMContainer(op string, data []byte) error {
	if len(data) == 0 {
		return crypto.InvalidParameter(op, "empty PEM container")
	}
	if bytes.IndexByte(data, 0) != len(data)-1 {
		return crypto.InvalidParameter(op, "PEM container must end with its only zero terminator")
	}
	return nil
}

func checkAlgorithm(op string, algorithm crypto.KeyAlgorithm) error {
	if algorithm != crypto.AlgorithmRSA && algorithm != crypto.AlgorithmEC {
		return crypto.InvalidParameter(op, "unsupported key algorithm %q", algorithm)
	}
	return nil
}

// ReadPrivateKeyPEM imports a zero-terminated PEM private key whose family
// must be algorithm. On any failure the returned handle is nil.
func (m *KeyManager) ReadPrivateKeyPEM(pemData []byte, algorithm crypto.KeyAlgorithm) (*PrivateKey, error) {
	const op = "ReadPrivateKeyPEM"

	if err := checkPEMContainer(op, pemData); err != nil {
		return nil, err
	}
	if err := checkAlgorithm(op, algorithm); err != nil {
		return nil, err
	}

	m.provider.Initialize()

	material, err := m.provider.DecodePrivateKey(pemData[:len(pemData)-1])
	if err != nil {
		return nil, crypto.NewError(crypto.KindFailure, op, err)
	}

	if material.Algorithm() != algorithm || !material.Private() {
		mismatch := fmt.Errorf("decoded %s key, expected %s private key", material.Algorithm(), algorithm)
		return nil, crypto.NewError(crypto.KindFailure, op, multierr.Append(mismatch, m.provider.Release(material)))
	}

	m.logger.Debug("Imported ", algorithm, " private key")
	return newPrivateKey(material), nil
}

// ReadPublicKeyPEM imports a zero-terminated PEM public key whose family
// must be algorithm. On any failure the returned handle is nil.
func (m *KeyManager) ReadPublicKeyPEM(pemData []byte, algorithm crypto.KeyAlgorithm) (*PublicKey, error) {
	const op = "ReadPublicKeyPEM"

	if err := checkPEMContainer(op, pemData); err != nil {
		return nil, err
	}
	if err := checkAlgorithm(op, algorithm); err != nil {
		return nil, err
	}

	m.provider.Initialize()

	material, err := m.provider.DecodePublicKey(pemData[:len(pemData)-1])
	if err != nil {
		return nil, crypto.NewError(crypto.KindFailure, op, err)
	}

	if material.Algorithm() != algorithm || material.Private() {
		mismatch := fmt.Errorf("decoded %s key, expected %s public key", material.Algorithm(), algorithm)
		return nil, crypto.NewError(crypto.KindFailure, op, multierr.Append(mismatch, m.provider.Release(material)))
	}

	m.logger.Debug("Imported ", algorithm, " public key")
	return newPublicKey(material), nil
}

// WritePrivateKeyPEM writes the key as a zero-terminated PEM container into
// data and returns the number of bytes written.
//
// If data is shorter than the container, nothing is written and the
// required size is returned together with a BufferTooSmall error; pass a nil
// slice to query the size.
func (m *KeyManager) WritePrivateKeyPEM(key *PrivateKey, data []byte) (int, error) {
	const op = "WritePrivateKeyPEM"

	if !key.Valid() {
		return 0, crypto.InvalidParameter(op, "invalid private key handle")
	}

	m.provider.Initialize()

	encoded, err := m.provider.EncodePrivateKey(key.material)
	if err != nil {
		return 0, crypto.NewError(crypto.KindFailure, op, err)
	}
	defer clear(encoded)

	return writeTerminated(op, encoded, data)
}

// WritePublicKeyPEM is WritePrivateKeyPEM for public keys.
func (m *KeyManager) WritePublicKeyPEM(key *PublicKey, data []byte) (int, error) {
	const op = "WritePublicKeyPEM"

	if !key.Valid() {
		return 0, crypto.InvalidParameter(op, "invalid public key handle")
	}

	m.provider.Initialize()

	encoded, err := m.provider.EncodePublicKey(key.material)
	if err != nil {
		return 0, crypto.NewError(crypto.KindFailure, op, err)
	}

	return writeTerminated(op, encoded, data)
}

func writeTerminated(op string, encoded, data []byte) (int, error) {
	required := len(encoded) + 1
	if len(data) < required {
		return required, crypto.BufferTooSmall(op, required)
	}

	copy(data, encoded)
	data[len(encoded)] = 0
	return required, nil
}

// PrivateKeyPEM returns the key as a freshly allocated zero-terminated PEM
// container, negotiating the size with WritePrivateKeyPEM.
func (m *KeyManager) PrivateKeyPEM(key *PrivateKey) ([]byte, error) {
	return negotiate(func(data []byte) (int, error) {
		return m.WritePrivateKeyPEM(key, data)
	})
}

// PublicKeyPEM returns the key as a freshly allocated zero-terminated PEM
// container, negotiating the size with WritePublicKeyPEM.
func (m *KeyManager) PublicKeyPEM(key *PublicKey) ([]byte, error) {
	return negotiate(func(data []byte) (int, error) {
		return m.WritePublicKeyPEM(key, data)
	})
}

// negotiate runs the query-then-fill protocol once.
func negotiate(write func([]byte) (int, error)) ([]byte, error) {
	required, err := write(nil)
	if err == nil {
		return nil, crypto.NewError(crypto.KindUnexpected, "negotiate", fmt.Errorf("size query succeeded without a buffer"))
	}
	if !crypto.IsKind(err, crypto.KindBufferTooSmall) {
		return nil, err
	}

	data := make([]byte, required)
	n, err := write(data)
	if err != nil {
		return nil, err
	}
	return data[:n], nil
}

// FreePrivateKey releases the key material and clears the handle. Freeing an
// invalid or already freed handle fails with InvalidParameter.
func (m *KeyManager) FreePrivateKey(key *PrivateKey) error {
	const op = "FreePrivateKey"

	if !key.Valid() {
		return crypto.InvalidParameter(op, "invalid private key handle")
	}

	m.provider.Initialize()

	err := m.provider.Release(key.material)
	key.clear()
	if err != nil {
		return crypto.NewError(crypto.KindFailure, op, err)
	}

	m.logger.Debug("Freed private key")
	return nil
}

// FreePublicKey releases the key material and clears the handle. Freeing an
// invalid or already freed handle fails with InvalidParameter.
func (m *KeyManager) FreePublicKey(key *PublicKey) error {
	const op = "FreePublicKey"

	if !key.Valid() {
		return crypto.InvalidParameter(op, "invalid public key handle")
	}

	m.provider.Initialize()

	err := m.provider.Release(key.material)
	key.clear()
	if err != nil {
		return crypto.NewError(crypto.KindFailure, op, err)
	}

	m.logger.Debug("Freed public key")
	return nil
}

// PublicKeyFromPrivate derives a public key handle from a private key. The
// public half goes through the same PEM import path as any other key.
func (m *KeyManager) PublicKeyFromPrivate(key *PrivateKey) (*PublicKey, error) {
	const op = "PublicKeyFromPrivate"

	if !key.Valid() {
		return nil, crypto.InvalidParameter(op, "invalid private key handle")
	}

	m.provider.Initialize()

	encoded, err := m.provider.EncodePublicKey(key.material)
	if err != nil {
		return nil, crypto.NewError(crypto.KindFailure, op, err)
	}

	return m.ReadPublicKeyPEM(append(encoded, 0), key.Algorithm())
}

// GenerateKeyPair creates a key pair of the given family and size. Both
// handles are produced by importing the provider's encoding of the new key.
func (m *KeyManager) GenerateKeyPair(algorithm crypto.KeyAlgorithm, keySize int) (*PrivateKey, *PublicKey, error) {
	const op = "GenerateKeyPair"

	if !algorithm.SupportsKeySize(keySize) {
		return nil, nil, crypto.InvalidParameter(op, "key size %d not supported for %s", keySize, algorithm)
	}

	m.provider.Initialize()

	material, err := m.provider.GenerateKey(algorithm, keySize)
	if err != nil {
		return nil, nil, crypto.NewError(crypto.KindFailure, op, err)
	}

	encoded, err := m.provider.EncodePrivateKey(material)
	if releaseErr := m.provider.Release(material); releaseErr != nil {
		err = multierr.Append(err, releaseErr)
	}
	if err != nil {
		clear(encoded)
		return nil, nil, crypto.NewError(crypto.KindFailure, op, err)
	}

	container := append(encoded, 0)
	defer clear(container)

	privateKey, err := m.ReadPrivateKeyPEM(container, algorithm)
	if err != nil {
		return nil, nil, err
	}

	publicKey, err := m.PublicKeyFromPrivate(privateKey)
	if err != nil {
		return nil, nil, multierr.Append(err, m.FreePrivateKey(privateKey))
	}

	m.logger.Info("Generated ", algorithm, " key pair")
	return privateKey, publicKey, nil
}

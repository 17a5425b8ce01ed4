//go:build unit
// +build unit

package cryptography

import (
	stdcrypto "crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

func digestOfLength(n int) []byte {
	sum := sha512.Sum512([]byte("open enclave"))
	return append([]byte(nil), sum[:n]...)
}

func TestSignVerify(t *testing.T) {
	manager := setupKeyManager(t)

	tests := []struct {
		name       string
		algorithm  crypto.KeyAlgorithm
		keySize    int
		hashType   crypto.HashType
		digestSize int
	}{
		{"RSA SHA-256", crypto.AlgorithmRSA, TestRSAKeySize, crypto.HashSHA256, 32},
		{"EC P-256 SHA-256", crypto.AlgorithmEC, 256, crypto.HashSHA256, 32},
		{"EC P-256 SHA-384", crypto.AlgorithmEC, 256, crypto.HashSHA384, 48},
		{"EC P-384 SHA-512", crypto.AlgorithmEC, 384, crypto.HashSHA512, 64},
		{"EC P-521 long digest", crypto.AlgorithmEC, 521, crypto.HashSHA256, 64},
		{"EC P-224 SHA-256", crypto.AlgorithmEC, 224, crypto.HashSHA256, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privateKey, publicKey := generateKeyPair(t, manager, tt.algorithm, tt.keySize)
			_, otherPublicKey := generateKeyPair(t, manager, tt.algorithm, tt.keySize)
			digest := digestOfLength(tt.digestSize)

			signature, err := manager.SignatureOf(privateKey, tt.hashType, digest)
			require.NoError(t, err)
			assert.NotEmpty(t, signature)

			assert.NoError(t, manager.Verify(publicKey, tt.hashType, digest, signature))

			err = manager.Verify(otherPublicKey, tt.hashType, digest, signature)
			assert.ErrorIs(t, err, crypto.ErrVerifyFailed)
			assert.True(t, crypto.IsKind(err, crypto.KindVerifyFailed))

			tampered := append([]byte(nil), signature...)
			tampered[len(tampered)/2] ^= 0xFF
			assert.ErrorIs(t, manager.Verify(publicKey, tt.hashType, digest, tampered), crypto.ErrVerifyFailed)
		})
	}
}

func TestSign_SizeProtocol(t *testing.T) {
	manager := setupKeyManager(t)

	tests := []struct {
		name      string
		algorithm crypto.KeyAlgorithm
		keySize   int
		maxSize   int
	}{
		{"RSA 2048", crypto.AlgorithmRSA, 2048, 256},
		{"EC P-256", crypto.AlgorithmEC, 256, 72},
		{"EC P-384", crypto.AlgorithmEC, 384, 104},
		{"EC P-521", crypto.AlgorithmEC, 521, 139},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privateKey, publicKey := generateKeyPair(t, manager, tt.algorithm, tt.keySize)
			digest := digestOfLength(32)

			required, err := manager.Sign(privateKey, crypto.HashSHA256, digest, nil)
			assert.ErrorIs(t, err, crypto.ErrBufferTooSmall)
			assert.Equal(t, tt.maxSize, required)

			sig := make([]byte, required)
			n, err := manager.Sign(privateKey, crypto.HashSHA256, digest, sig)
			require.NoError(t, err)
			assert.LessOrEqual(t, n, required)
			assert.NoError(t, manager.Verify(publicKey, crypto.HashSHA256, digest, sig[:n]))

			short := make([]byte, required-1)
			n, err = manager.Sign(privateKey, crypto.HashSHA256, digest, short)
			assert.ErrorIs(t, err, crypto.ErrBufferTooSmall)
			assert.Equal(t, required, n)
			assert.Equal(t, make([]byte, required-1), short)
		})
	}
}

func TestSign_InvalidParameters(t *testing.T) {
	manager := setupKeyManager(t)
	privateKey, publicKey := generateKeyPair(t, manager, crypto.AlgorithmEC, TestECKeySize)
	digest := digestOfLength(32)
	sig := make([]byte, 128)

	tests := []struct {
		name     string
		key      *PrivateKey
		hashType crypto.HashType
		hash     []byte
	}{
		{"NilKey", nil, crypto.HashSHA256, digest},
		{"ZeroKey", &PrivateKey{}, crypto.HashSHA256, digest},
		{"EmptyHash", privateKey, crypto.HashSHA256, nil},
		{"UnknownHashType", privateKey, crypto.HashType(20), digest},
		{"DigestShorterThanHashType", privateKey, crypto.HashSHA512, digest},
		{"TruncatedDigest", privateKey, crypto.HashSHA256, digest[:31]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := manager.Sign(tt.key, tt.hashType, tt.hash, sig)
			assert.Zero(t, n)
			assert.ErrorIs(t, err, crypto.ErrInvalidParameter)
		})
	}

	t.Run("VerifyEmptySignature", func(t *testing.T) {
		assert.ErrorIs(t, manager.Verify(publicKey, crypto.HashSHA256, digest, nil), crypto.ErrInvalidParameter)
	})

	t.Run("VerifyShortDigest", func(t *testing.T) {
		assert.ErrorIs(t, manager.Verify(publicKey, crypto.HashSHA384, digest, sig), crypto.ErrInvalidParameter)
	})

	t.Run("VerifyFreedKey", func(t *testing.T) {
		priv, pub, err := manager.GenerateKeyPair(crypto.AlgorithmEC, TestECKeySize)
		require.NoError(t, err)
		require.NoError(t, manager.FreePrivateKey(priv))
		require.NoError(t, manager.FreePublicKey(pub))
		assert.ErrorIs(t, manager.Verify(pub, crypto.HashSHA256, digest, sig), crypto.ErrInvalidParameter)
	})
}

func TestSign_RSARequiresSHA256SizedDigest(t *testing.T) {
	manager := setupKeyManager(t)
	privateKey, _ := generateKeyPair(t, manager, crypto.AlgorithmRSA, TestRSAKeySize)

	_, err := manager.SignatureOf(privateKey, crypto.HashSHA512, digestOfLength(64))
	assert.ErrorIs(t, err, crypto.ErrFailure)
}

func TestSign_AlwaysBindsSHA256(t *testing.T) {
	manager := setupKeyManager(t)
	privateKey, publicKey := generateKeyPair(t, manager, crypto.AlgorithmRSA, TestRSAKeySize)

	digest := sha256.Sum256([]byte("attestation evidence"))

	signature, err := manager.SignatureOf(privateKey, crypto.HashSHA256, digest[:])
	require.NoError(t, err)

	material, ok := publicKey.material.(*keyMaterial)
	require.True(t, ok)
	rsaKey, ok := material.public.(*rsa.PublicKey)
	require.True(t, ok)
	assert.NoError(t, rsa.VerifyPKCS1v15(rsaKey, stdcrypto.SHA256, digest[:], signature))

	// The declared hash type does not change the signature scheme.
	ecPrivate, ecPublic := generateKeyPair(t, manager, crypto.AlgorithmEC, TestECKeySize)
	longDigest := digestOfLength(48)
	ecSignature, err := manager.SignatureOf(ecPrivate, crypto.HashSHA384, longDigest)
	require.NoError(t, err)
	assert.NoError(t, manager.Verify(ecPublic, crypto.HashSHA256, longDigest, ecSignature))
}

func TestVerify_ConcurrentReaders(t *testing.T) {
	manager := setupKeyManager(t)
	privateKey, publicKey := generateKeyPair(t, manager, crypto.AlgorithmEC, TestECKeySize)

	digest := digestOfLength(32)
	signature, err := manager.SignatureOf(privateKey, crypto.HashSHA256, digest)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- manager.Verify(publicKey, crypto.HashSHA256, digest, signature)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestSign_ProviderFailure(t *testing.T) {
	manager, provider := setupMockKeyManager(t)

	material := &MockKeyMaterial{algorithm: crypto.AlgorithmEC, private: true}
	provider.On("Initialize").Return()
	provider.On("DecodePrivateKey", mock.Anything).Return(material, nil)
	provider.On("SignatureSize", material).Return(72, nil)
	provider.On("Sign", material, mock.Anything).Return(nil, errors.New("sign failed"))
	provider.On("Release", material).Return(nil)

	key, err := manager.ReadPrivateKeyPEM([]byte("pem\x00"), crypto.AlgorithmEC)
	require.NoError(t, err)
	defer func() { assert.NoError(t, manager.FreePrivateKey(key)) }()

	sig := make([]byte, 72)
	n, err := manager.Sign(key, crypto.HashSHA256, digestOfLength(32), sig)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, crypto.ErrFailure)
	assert.Equal(t, make([]byte, 72), sig)
}

//go:build unit
// +build unit

package cryptography

import (
	"github.com/stretchr/testify/mock"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

// MockKeyMaterial is a stand-in for provider-owned key material
type MockKeyMaterial struct {
	algorithm crypto.KeyAlgorithm
	private   bool
}

func (m *MockKeyMaterial) Algorithm() crypto.KeyAlgorithm {
	return m.algorithm
}

func (m *MockKeyMaterial) Private() bool {
	return m.private
}

// MockProvider is a mock implementation of crypto.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Initialize() {
	m.Called()
}

func (m *MockProvider) DecodePrivateKey(pemData []byte) (crypto.KeyMaterial, error) {
	args := m.Called(pemData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crypto.KeyMaterial), args.Error(1)
}

func (m *MockProvider) DecodePublicKey(pemData []byte) (crypto.KeyMaterial, error) {
	args := m.Called(pemData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crypto.KeyMaterial), args.Error(1)
}

func (m *MockProvider) EncodePrivateKey(material crypto.KeyMaterial) ([]byte, error) {
	args := m.Called(material)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockProvider) EncodePublicKey(material crypto.KeyMaterial) ([]byte, error) {
	args := m.Called(material)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockProvider) SignatureSize(material crypto.KeyMaterial) (int, error) {
	args := m.Called(material)
	return args.Int(0), args.Error(1)
}

func (m *MockProvider) Sign(material crypto.KeyMaterial, digest []byte) ([]byte, error) {
	args := m.Called(material, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockProvider) Verify(material crypto.KeyMaterial, digest, signature []byte) error {
	args := m.Called(material, digest, signature)
	return args.Error(0)
}

func (m *MockProvider) Release(material crypto.KeyMaterial) error {
	args := m.Called(material)
	return args.Error(0)
}

func (m *MockProvider) GenerateKey(algorithm crypto.KeyAlgorithm, keySize int) (crypto.KeyMaterial, error) {
	args := m.Called(algorithm, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(crypto.KeyMaterial), args.Error(1)
}

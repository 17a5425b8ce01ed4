package cryptography

import (
	"github.com/venuvedam/openenclave/internal/domain/crypto"
)

// Handle tags. Each handle type has its own so a handle of one type never
// validates as the other.
const (
	privateKeyMagic uint64 = 0xd48de5bae3994b41
	publicKeyMagic  uint64 = 0x713600af058c447a
)

// noCopy makes go vet's copylocks check flag copies of a handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// PrivateKey is an opaque handle to provider-owned private key material.
// Handles are only created by a KeyManager and must be released exactly once
// with FreePrivateKey. The zero value is not a valid key.
type PrivateKey struct {
	_        noCopy
	magic    uint64
	material crypto.KeyMaterial
}

func newPrivateKey(material crypto.KeyMaterial) *PrivateKey {
	return &PrivateKey{magic: privateKeyMagic, material: material}
}

// Valid reports whether k is live: non-nil, correctly tagged and backed by material.
func (k *PrivateKey) Valid() bool {
	return k != nil && k.magic == privateKeyMagic && k.material != nil
}

// Algorithm returns the key family, or "" for an invalid handle.
func (k *PrivateKey) Algorithm() crypto.KeyAlgorithm {
	if !k.Valid() {
		return ""
	}
	return k.material.Algorithm()
}

func (k *PrivateKey) clear() {
	k.magic = 0
	k.material = nil
}

// PublicKey is an opaque handle to provider-owned public key material.
// Handles are only created by a KeyManager and must be released exactly once
// with FreePublicKey. The zero value is not a valid key.
type PublicKey struct {
	_        noCopy
	magic    uint64
	material crypto.KeyMaterial
}

func newPublicKey(material crypto.KeyMaterial) *PublicKey {
	return &PublicKey{magic: publicKeyMagic, material: material}
}

// Valid reports whether k is live: non-nil, correctly tagged and backed by material.
func (k *PublicKey) Valid() bool {
	return k != nil && k.magic == publicKeyMagic && k.material != nil
}

// Algorithm returns the key family, or "" for an invalid handle.
func (k *PublicKey) Algorithm() crypto.KeyAlgorithm {
	if !k.Valid() {
		return ""
	}
	return k.material.Algorithm()
}

func (k *PublicKey) clear() {
	k.magic = 0
	k.material = nil
}

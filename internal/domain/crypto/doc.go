// Package crypto defines the core types and contracts of the key trust layer:
// key algorithm and hash algorithm tags, the structured error taxonomy, and
// the interface of the platform cryptographic provider that performs the
// actual primitives behind opaque key handles.
package crypto

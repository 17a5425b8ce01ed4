// Package x509name parses certificate subject and issuer strings of the form
// "CN=Open Enclave SDK,O=OESDK TLS,C=US" into ordered attribute lists.
//
// The grammar is deliberately narrow. The string may not start with
// whitespace. Attributes are separated by commas, and "\," inside a value
// is a literal comma. Spaces after a separator are skipped. Keys must be
// one of the recognized attribute short names. Keys and values longer than
// MaxAttributeLength bytes reject the whole string.
package x509name

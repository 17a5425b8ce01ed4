//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuvedam/openenclave/internal/domain/crypto"
	"github.com/venuvedam/openenclave/internal/pkg/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return out.String(), err
}

func generateKeyFiles(t *testing.T, args ...string) (string, string) {
	t.Helper()
	keyDir := t.TempDir()
	out, err := execute(t, append([]string{"generate-keys", "--key-dir", keyDir}, args...)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "-private-key.pem"))
	assert.True(t, strings.HasSuffix(lines[1], "-public-key.pem"))
	return lines[0], lines[1]
}

func TestSignVerifyCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		hash string
	}{
		{"RSA", []string{"--algorithm", "rsa", "--key-size", "2048"}, "sha256"},
		{"EC", []string{"--algorithm", "ec", "--key-size", "384"}, "sha384"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privateKeyPath, publicKeyPath := generateKeyFiles(t, tt.args...)
			algorithm := tt.args[1]

			dir := t.TempDir()
			inputFile := filepath.Join(dir, "input.txt")
			signatureFile := filepath.Join(dir, "input.sig")
			require.NoError(t, testutil.CreateTestFile(inputFile, []byte("enclave report data")))

			_, err := execute(t, "sign", "--algorithm", algorithm, "--hash", tt.hash,
				"--input-file", inputFile, "--private-key", privateKeyPath, "--output-file", signatureFile)
			require.NoError(t, err)

			out, err := execute(t, "verify", "--algorithm", algorithm, "--hash", tt.hash,
				"--input-file", inputFile, "--public-key", publicKeyPath, "--signature-file", signatureFile)
			require.NoError(t, err)
			assert.Contains(t, out, "Signature valid")

			require.NoError(t, os.WriteFile(inputFile, []byte("tampered report data"), 0600))
			_, err = execute(t, "verify", "--algorithm", algorithm, "--hash", tt.hash,
				"--input-file", inputFile, "--public-key", publicKeyPath, "--signature-file", signatureFile)
			assert.ErrorIs(t, err, crypto.ErrVerifyFailed)
		})
	}
}

func TestExportPublicKeyCommand(t *testing.T) {
	privateKeyPath, publicKeyPath := generateKeyFiles(t, "--algorithm", "ec")
	outputFile := filepath.Join(t.TempDir(), "exported.pem")

	_, err := execute(t, "export-public-key", "--algorithm", "ec",
		"--private-key", privateKeyPath, "--output-file", outputFile)
	require.NoError(t, err)

	expected, err := os.ReadFile(publicKeyPath)
	require.NoError(t, err)
	actual, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestGenerateKeysCommand_Errors(t *testing.T) {
	_, err := execute(t, "generate-keys", "--algorithm", "rsa")
	assert.Error(t, err)

	_, err = execute(t, "generate-keys", "--algorithm", "dsa", "--key-dir", t.TempDir())
	assert.Error(t, err)

	_, err = execute(t, "generate-keys", "--algorithm", "ec", "--key-size", "2048", "--key-dir", t.TempDir())
	assert.ErrorIs(t, err, crypto.ErrInvalidParameter)
}

func TestGenerateKeysCommand_ConfigDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, testutil.CreateTestFile(configFile, []byte(`
crypto:
  algorithm: EC
  key_size: 521
  hash_algorithm: sha512
`)))

	keyDir := t.TempDir()
	out, err := execute(t, "--config", configFile, "generate-keys", "--key-dir", keyDir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	text, err := os.ReadFile(lines[0])
	require.NoError(t, err)
	assert.Contains(t, string(text), "EC PRIVATE KEY")
}

func TestCommands_InvalidConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, testutil.CreateTestFile(configFile, []byte("crypto:\n  algorithm: DSA\n")))

	_, err := execute(t, "--config", configFile, "parse-name", "--name", "CN=x")
	assert.Error(t, err)
}

func TestParseNameCommand(t *testing.T) {
	out, err := execute(t, "parse-name", "--name", `CN=Open Enclave SDK\,OE SDK, O=OESDK TLS,C=US`)
	require.NoError(t, err)
	assert.Equal(t, "CN=Open Enclave SDK,OE SDK\nO=OESDK TLS\nC=US\n", out)

	_, err = execute(t, "parse-name", "--name", " CN=Open Enclave SDK")
	assert.Error(t, err)

	_, err = execute(t, "parse-name")
	assert.Error(t, err)
}

func TestCMACCommand(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, testutil.CreateTestFile(inputFile, nil))

	out, err := execute(t, "cmac", "--key-hex", "2b7e151628aed2a6abf7158809cf4f3c", "--input-file", inputFile)
	require.NoError(t, err)
	assert.Equal(t, "bb1d6929e95937287fa37d129b756746\n", out)

	_, err = execute(t, "cmac", "--key-hex", "00112233445566778899aabbccddeeff0011223344556677", "--input-file", inputFile)
	assert.ErrorIs(t, err, crypto.ErrUnsupported)

	_, err = execute(t, "cmac", "--key-hex", "not-hex", "--input-file", inputFile)
	assert.Error(t, err)
}

package chacha20poly1305_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmuens/chacha20poly1305/chacha20poly1305"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestSealRFC8439 is RFC 8439 §2.8.2's full AEAD_CHACHA20_POLY1305 vector.
func TestSealRFC8439(t *testing.T) {
	aad := mustHex(t, "50515253c0c1c2c3c4c5c6c7")
	key := mustHex(t, "808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce := mustHex(t, "070000004041424344454647")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	sealed, err := chacha20poly1305.Seal(key, nonce, plaintext, aad)
	require.NoError(t, err)
	require.Len(t, sealed, len(plaintext)+chacha20poly1305.Overhead)

	ciphertext := sealed[:len(plaintext)]
	tag := sealed[len(plaintext):]

	wantCiphertextPrefix := mustHex(t, "d31a8d34648e60db7b86afbc53ef7ec2")
	assert.Equal(t, wantCiphertextPrefix, ciphertext[:len(wantCiphertextPrefix)])

	wantTag := mustHex(t, "1ae10b594f09e26a7e902ecbd0600691")
	assert.Equal(t, wantTag, tag)

	opened, err := chacha20poly1305.Open(key, nonce, sealed, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

// TestOpenRejectsTamper covers RFC 8439's tamper scenario: flipping any
// single bit of the ciphertext, tag, AAD or nonce must make Open fail
// authentication and return no plaintext.
func TestOpenRejectsTamper(t *testing.T) {
	aad := mustHex(t, "50515253c0c1c2c3c4c5c6c7")
	key := mustHex(t, "808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce := mustHex(t, "070000004041424344454647")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	sealed, err := chacha20poly1305.Seal(key, nonce, plaintext, aad)
	require.NoError(t, err)

	t.Run("flip ciphertext bit", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[0] ^= 0x01
		_, err := chacha20poly1305.Open(key, nonce, tampered, aad)
		require.Error(t, err)
		var authErr chacha20poly1305.AuthFailedError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("flip tag bit", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0x01
		_, err := chacha20poly1305.Open(key, nonce, tampered, aad)
		require.Error(t, err)
		var authErr chacha20poly1305.AuthFailedError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("flip aad bit", func(t *testing.T) {
		tamperedAAD := append([]byte(nil), aad...)
		tamperedAAD[0] ^= 0x01
		_, err := chacha20poly1305.Open(key, nonce, sealed, tamperedAAD)
		require.Error(t, err)
		var authErr chacha20poly1305.AuthFailedError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("flip nonce bit", func(t *testing.T) {
		tamperedNonce := append([]byte(nil), nonce...)
		tamperedNonce[0] ^= 0x01
		_, err := chacha20poly1305.Open(key, tamperedNonce, sealed, aad)
		require.Error(t, err)
		var authErr chacha20poly1305.AuthFailedError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("flip key bit", func(t *testing.T) {
		tamperedKey := append([]byte(nil), key...)
		tamperedKey[0] ^= 0x01
		_, err := chacha20poly1305.Open(tamperedKey, nonce, sealed, aad)
		require.Error(t, err)
		var authErr chacha20poly1305.AuthFailedError
		require.ErrorAs(t, err, &authErr)
	})
}

func TestEmptyPlaintextAndAAD(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)

	sealed, err := chacha20poly1305.Seal(key, nonce, nil, nil)
	require.NoError(t, err)
	assert.Len(t, sealed, chacha20poly1305.Overhead)

	opened, err := chacha20poly1305.Open(key, nonce, sealed, nil)
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	nonce := []byte("nonce123456!")
	aad := []byte("header")
	plaintext := []byte("the quick brown fox jumps over the lazy dog, many times over")

	sealed, err := chacha20poly1305.Seal(key, nonce, plaintext, aad)
	require.NoError(t, err)

	opened, err := chacha20poly1305.Open(key, nonce, sealed, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := chacha20poly1305.Seal(make([]byte, 16), make([]byte, 12), nil, nil)
	require.Error(t, err)
	var keyErr chacha20poly1305.KeySizeError
	require.ErrorAs(t, err, &keyErr)
}

func TestInvalidNonceSize(t *testing.T) {
	_, err := chacha20poly1305.Seal(make([]byte, 32), make([]byte, 8), nil, nil)
	require.Error(t, err)
	var nonceErr chacha20poly1305.NonceSizeError
	require.ErrorAs(t, err, &nonceErr)
}

func TestInvalidEnvelope(t *testing.T) {
	_, err := chacha20poly1305.Open(make([]byte, 32), make([]byte, 12), make([]byte, 4), nil)
	require.Error(t, err)
	var envErr chacha20poly1305.InvalidEnvelopeError
	require.ErrorAs(t, err, &envErr)
}

// Package xchacha20poly1305 implements XChaCha20-Poly1305, the 24-byte
// nonce AEAD variant described in
// https://datatracker.ietf.org/doc/html/draft-irtf-cfrg-xchacha-03,
// layered on top of this module's chacha20poly1305 construction.
package xchacha20poly1305

import (
	"github.com/pmuens/chacha20poly1305/chacha20poly1305"
	"github.com/pmuens/chacha20poly1305/xchacha20"
)

// KeySize is the required length, in bytes, of an XChaCha20-Poly1305 key.
const KeySize = xchacha20.KeySize

// NonceSize is the required length, in bytes, of an XChaCha20-Poly1305
// nonce.
const NonceSize = xchacha20.NonceSize

// Overhead is the number of bytes of overhead Seal adds to the plaintext.
const Overhead = chacha20poly1305.Overhead

// Seal encrypts and authenticates plaintext the way chacha20poly1305.Seal
// does, but under a 24-byte nonce: it derives a ChaCha20 subkey with
// HChaCha20 from (key, nonce[0:16]), then runs the base ChaCha20-Poly1305
// construction with that subkey and a 12-byte nonce built from
// nonce[16:24].
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, NonceSizeError(len(nonce))
	}

	subKey, subNonce, err := derive(key, nonce)
	if err != nil {
		return nil, err
	}

	return chacha20poly1305.Seal(subKey[:], subNonce, plaintext, aad)
}

// Open verifies and decrypts a ciphertext produced by Seal under the same
// (key, nonce, aad).
func Open(key, nonce, ciphertextAndTag, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, NonceSizeError(len(nonce))
	}

	subKey, subNonce, err := derive(key, nonce)
	if err != nil {
		return nil, err
	}

	return chacha20poly1305.Open(subKey[:], subNonce, ciphertextAndTag, aad)
}

// derive computes the ChaCha20 subkey and 12-byte sub-nonce XChaCha20
// derives from a 32-byte key and a 24-byte nonce.
func derive(key, nonce []byte) ([32]byte, []byte, error) {
	subKey, err := xchacha20.HChaCha20(key, nonce[0:16])
	if err != nil {
		return [32]byte{}, nil, err
	}

	subNonce := make([]byte, 12)
	copy(subNonce[4:], nonce[16:24])
	return subKey, subNonce, nil
}

// Package chacha20poly1305 implements the ChaCha20-Poly1305 AEAD
// construction as specified in RFC 8439
// (https://datatracker.ietf.org/doc/html/rfc8439), built on this module's
// chacha20 and poly1305 packages.
//
// Seal and Open are symmetric: the same (key, nonce, aad) that encrypts a
// message can decrypt it. Nonces must never repeat for a given key —
// reuse destroys both confidentiality and authenticity. This package
// provides no nonce-misuse resistance; despite what some README files in
// this space claim, ChaCha20-Poly1305 fails catastrophically under nonce
// reuse, and callers are responsible for uniqueness.
package chacha20poly1305

import (
	"encoding/binary"

	"github.com/pmuens/chacha20poly1305/chacha20"
	"github.com/pmuens/chacha20poly1305/poly1305"
)

// deriveOneTimeKey derives the Poly1305 one-time key from the first 32
// bytes of the ChaCha20 keystream block at counter 0, per RFC 8439 §2.6.
func deriveOneTimeKey(key, nonce []byte) ([poly1305.KeySize]byte, error) {
	block, err := chacha20.Block(key, nonce, 0)
	if err != nil {
		return [poly1305.KeySize]byte{}, err
	}

	var otk [poly1305.KeySize]byte
	copy(otk[:], block[:poly1305.KeySize])

	zero(block[:])
	return otk, nil
}

// pad16 returns the number of zero bytes needed to round n up to a
// multiple of 16, per RFC 8439 §2.8's pad16(x).
func pad16(n int) int {
	return (16 - n%16) % 16
}

// macInput computes the Poly1305 tag over the AEAD's authenticated data:
// AAD ‖ pad16(AAD) ‖ ciphertext ‖ pad16(ciphertext) ‖ len(AAD) ‖
// len(ciphertext), the two lengths as 8-byte little-endian integers.
func macInput(otk [poly1305.KeySize]byte, aad, ciphertext []byte) ([poly1305.TagSize]byte, error) {
	mac, err := poly1305.New(otk[:])
	if err != nil {
		return [poly1305.TagSize]byte{}, err
	}

	pad := make([]byte, 16)

	mac.Write(aad)
	mac.Write(pad[:pad16(len(aad))])
	mac.Write(ciphertext)
	mac.Write(pad[:pad16(len(ciphertext))])

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lengths[8:16], uint64(len(ciphertext)))
	mac.Write(lengths[:])

	return mac.Sum(), nil
}

func validateKeyNonce(key, nonce []byte) error {
	if len(key) != KeySize {
		return KeySizeError(len(key))
	}
	if len(nonce) != NonceSize {
		return NonceSizeError(len(nonce))
	}
	return nil
}

// asMessageTooLong maps a chacha20.MessageTooLongError to this package's
// own MessageTooLongError, keeping the error taxonomy local to the AEAD
// layer callers interact with.
func asMessageTooLong(err error, n int) error {
	if _, ok := err.(chacha20.MessageTooLongError); ok {
		return MessageTooLongError(n)
	}
	return err
}

// Seal encrypts plaintext with ChaCha20 starting at block counter 1,
// authenticates (aad, ciphertext, lengths) with Poly1305 using a one-time
// key derived from (key, nonce) at counter 0, and returns ciphertext ‖ tag.
// The output is len(plaintext)+Overhead bytes. key must be KeySize bytes
// and nonce must be NonceSize bytes.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	if err := validateKeyNonce(key, nonce); err != nil {
		return nil, err
	}

	otk, err := deriveOneTimeKey(key, nonce)
	if err != nil {
		return nil, err
	}

	ciphertext, err := chacha20.Encrypt(key, nonce, plaintext, 1)
	if err != nil {
		return nil, asMessageTooLong(err, len(plaintext))
	}

	tag, err := macInput(otk, aad, ciphertext)
	zero(otk[:])
	if err != nil {
		return nil, err
	}

	return append(ciphertext, tag[:]...), nil
}

// Open verifies and decrypts a ciphertext produced by Seal under the same
// (key, nonce, aad). It rejects input shorter than Overhead bytes with
// InvalidEnvelopeError, recomputes and compares the tag in constant time,
// and only decrypts on a match. On any authentication failure it returns
// AuthFailedError and no plaintext — per RFC 8439 §7, no other information
// about the mismatch is ever produced.
func Open(key, nonce, ciphertextAndTag, aad []byte) ([]byte, error) {
	if err := validateKeyNonce(key, nonce); err != nil {
		return nil, err
	}
	if len(ciphertextAndTag) < Overhead {
		return nil, InvalidEnvelopeError(len(ciphertextAndTag))
	}

	boundary := len(ciphertextAndTag) - Overhead
	ciphertext := ciphertextAndTag[:boundary]
	receivedTag := ciphertextAndTag[boundary:]

	otk, err := deriveOneTimeKey(key, nonce)
	if err != nil {
		return nil, err
	}

	expectedTag, err := macInput(otk, aad, ciphertext)
	if err != nil {
		zero(otk[:])
		return nil, err
	}

	if !poly1305.Equal(expectedTag[:], receivedTag) {
		zero(otk[:])
		return nil, AuthFailedError{}
	}

	plaintext, err := chacha20.Decrypt(key, nonce, ciphertext, 1)
	zero(otk[:])
	if err != nil {
		return nil, asMessageTooLong(err, len(ciphertext))
	}
	return plaintext, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

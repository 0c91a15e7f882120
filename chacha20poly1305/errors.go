package chacha20poly1305

import "fmt"

// KeySize is the required length, in bytes, of a ChaCha20-Poly1305 key.
const KeySize = 32

// NonceSize is the required length, in bytes, of a ChaCha20-Poly1305 nonce.
const NonceSize = 12

// Overhead is the number of bytes of overhead Seal adds to the plaintext:
// the length of the authentication tag.
const Overhead = 16

// KeySizeError reports a key whose length isn't exactly KeySize bytes.
type KeySizeError int

func (e KeySizeError) Error() string {
	return fmt.Sprintf("chacha20poly1305: invalid key size %d, must be exactly %d bytes", int(e), KeySize)
}

// NonceSizeError reports a nonce whose length isn't exactly NonceSize bytes.
type NonceSizeError int

func (e NonceSizeError) Error() string {
	return fmt.Sprintf("chacha20poly1305: invalid nonce size %d, must be exactly %d bytes", int(e), NonceSize)
}

// InvalidEnvelopeError reports an Open input shorter than the tag size, so
// it cannot possibly contain a valid ciphertext-plus-tag envelope.
type InvalidEnvelopeError int

func (e InvalidEnvelopeError) Error() string {
	return fmt.Sprintf("chacha20poly1305: ciphertext of %d bytes is shorter than the %d-byte tag", int(e), Overhead)
}

// AuthFailedError reports a tag mismatch during Open. No further detail is
// carried: RFC 8439 §7 forbids communicating anything about the mismatch
// beyond this single signal.
type AuthFailedError struct{}

func (AuthFailedError) Error() string {
	return "chacha20poly1305: message authentication failed"
}

// MessageTooLongError reports a plaintext/ciphertext exceeding the maximum
// ChaCha20 can address.
type MessageTooLongError int

func (e MessageTooLongError) Error() string {
	return fmt.Sprintf("chacha20poly1305: message of %d bytes exceeds the maximum ChaCha20-Poly1305 can process", int(e))
}

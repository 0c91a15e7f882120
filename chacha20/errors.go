package chacha20

import "fmt"

// KeySize is the required length, in bytes, of a ChaCha20 key.
const KeySize = 32

// NonceSize is the required length, in bytes, of a ChaCha20 nonce.
const NonceSize = 12

// MaxMessageSize is the largest plaintext/ciphertext ChaCha20 will process:
// 2^32-1 blocks of 64 bytes each, the number of blocks the 32-bit counter
// addresses when starting at counter 1 and ending at 2^32-1. Longer
// messages are rejected whatever the initial counter.
const MaxMessageSize = 274877906880

// KeySizeError reports a key whose length isn't exactly KeySize bytes.
type KeySizeError int

func (e KeySizeError) Error() string {
	return fmt.Sprintf("chacha20: invalid key size %d, must be exactly %d bytes", int(e), KeySize)
}

// NonceSizeError reports a nonce whose length isn't exactly NonceSize bytes.
type NonceSizeError int

func (e NonceSizeError) Error() string {
	return fmt.Sprintf("chacha20: invalid nonce size %d, must be exactly %d bytes", int(e), NonceSize)
}

// MessageTooLongError reports a message that would require the 32-bit block
// counter to overflow starting from the given initial counter.
type MessageTooLongError struct {
	Len     int
	Counter uint32
}

func (e MessageTooLongError) Error() string {
	return fmt.Sprintf("chacha20: message of %d bytes starting at counter %d exceeds the maximum ChaCha20 can address", e.Len, e.Counter)
}

package xchacha20poly1305

import "fmt"

// NonceSizeError reports a nonce whose length isn't exactly NonceSize
// bytes. A wrong key size surfaces as chacha20.KeySizeError from the
// HChaCha20 subkey derivation; auth failure, invalid envelope and
// message-too-long errors are surfaced as-is from the underlying
// chacha20poly1305 package, since Seal/Open delegate to it once the
// 24-byte nonce has been reduced to a subkey and a 12-byte nonce.
type NonceSizeError int

func (e NonceSizeError) Error() string {
	return fmt.Sprintf("xchacha20poly1305: invalid nonce size %d, must be exactly %d bytes", int(e), NonceSize)
}

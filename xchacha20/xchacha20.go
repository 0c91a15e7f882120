package xchacha20

import "github.com/pmuens/chacha20poly1305/chacha20"

// KeySize is the required length, in bytes, of an XChaCha20 key.
const KeySize = chacha20.KeySize

// NonceSize is the required length, in bytes, of an XChaCha20 nonce: 24
// bytes, twice ChaCha20's, which is the whole point of the extension.
const NonceSize = 24

// subNonce builds the 12-byte ChaCha20 nonce XChaCha20 uses for its inner
// cipher: four zero bytes followed by the last 8 bytes of the 24-byte
// XChaCha20 nonce, per draft-irtf-cfrg-xchacha.
func subNonce(nonce []byte) []byte {
	n := make([]byte, chacha20.NonceSize)
	copy(n[4:], nonce[16:24])
	return n
}

// Encrypt encrypts plaintext with XChaCha20 under a 32-byte key and a
// 24-byte nonce, starting at the given ChaCha20 block counter. It derives
// a ChaCha20 subkey via HChaCha20 from the key and the first 16 bytes of
// the nonce, then runs ChaCha20 with that subkey and the last 8 bytes of
// the nonce.
func Encrypt(key, nonce, plaintext []byte, counter uint32) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, chacha20.NonceSizeError(len(nonce))
	}

	subKey, err := HChaCha20(key, nonce[0:16])
	if err != nil {
		return nil, err
	}

	return chacha20.Encrypt(subKey[:], subNonce(nonce), plaintext, counter)
}

// Decrypt decrypts ciphertext with XChaCha20 under key and nonce, starting
// at the given block counter.
func Decrypt(key, nonce, ciphertext []byte, counter uint32) ([]byte, error) {
	return Encrypt(key, nonce, ciphertext, counter)
}

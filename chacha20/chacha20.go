// Package chacha20 implements the ChaCha20 stream cipher as specified in
// RFC 8439 (https://datatracker.ietf.org/doc/html/rfc8439).
//
// The cipher is built from a 16-word state permuted by 20 rounds of the
// ChaCha quarter round, and a block counter that selects successive
// 64-byte keystream windows. This package implements only the algorithmic
// core: byte-sequence containers, streaming-sink plumbing and key/nonce
// generation are the caller's concern.
package chacha20

import (
	"encoding/binary"
	"math/bits"
)

// BlockSize is the number of keystream bytes produced by one invocation of
// the block function.
const BlockSize = 64

// state word indices, per RFC 8439 §2.3.
const (
	stateConst0 = iota
	stateConst1
	stateConst2
	stateConst3
	stateKey0
	stateKey1
	stateKey2
	stateKey3
	stateKey4
	stateKey5
	stateKey6
	stateKey7
	stateCounter
	stateNonce0
	stateNonce1
	stateNonce2
)

// the four constant words spelling "expand 32-byte k" in little-endian.
var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// initState builds the initial 16-word ChaCha20 state from a key, a nonce
// and a block counter.
func initState(key [8]uint32, nonce [3]uint32, counter uint32) [16]uint32 {
	var s [16]uint32
	copy(s[stateConst0:], constants[:])
	copy(s[stateKey0:], key[:])
	s[stateCounter] = counter
	copy(s[stateNonce0:], nonce[:])
	return s
}

// quarterRound is the ChaCha quarter round function QR(a,b,c,d), RFC 8439 §2.1.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)

	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)

	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)

	return a, b, c, d
}

// block runs the 20-round ChaCha20 permutation over the state built from
// key, nonce and counter, adds the original state, and returns the 16
// output words of the keystream block (serialize turns them into the 64
// bytes), per RFC 8439 §2.3.
func block(key [8]uint32, nonce [3]uint32, counter uint32) [16]uint32 {
	s := initState(key, nonce, counter)
	w := permute(s)

	for i := range w {
		w[i] += s[i]
	}

	return w
}

// permute runs the 20-round ChaCha20 permutation (10 double rounds) over a
// state and returns the result, without the block function's final
// feedforward addition of the original state.
func permute(s [16]uint32) [16]uint32 {
	w := s

	for i := 0; i < 10; i++ {
		// column round
		w[0], w[4], w[8], w[12] = quarterRound(w[0], w[4], w[8], w[12])
		w[1], w[5], w[9], w[13] = quarterRound(w[1], w[5], w[9], w[13])
		w[2], w[6], w[10], w[14] = quarterRound(w[2], w[6], w[10], w[14])
		w[3], w[7], w[11], w[15] = quarterRound(w[3], w[7], w[11], w[15])

		// diagonal round
		w[0], w[5], w[10], w[15] = quarterRound(w[0], w[5], w[10], w[15])
		w[1], w[6], w[11], w[12] = quarterRound(w[1], w[6], w[11], w[12])
		w[2], w[7], w[8], w[13] = quarterRound(w[2], w[7], w[8], w[13])
		w[3], w[4], w[9], w[14] = quarterRound(w[3], w[4], w[9], w[14])
	}

	return w
}

// Permute runs the 20-round ChaCha20 permutation over the state built from
// key, nonce and counter and returns it directly, without the final
// feedforward addition. HChaCha20 (see the xchacha20 package) is built on
// this primitive rather than on a second, parallel implementation of the
// round function.
func Permute(key, nonce []byte, counter uint32) ([16]uint32, error) {
	k, n, err := decodeKeyNonce(key, nonce)
	if err != nil {
		return [16]uint32{}, err
	}
	return permute(initState(k, n, counter)), nil
}

// serialize writes the 16 state words to a 64-byte keystream block in
// little-endian order.
func serialize(w [16]uint32) [BlockSize]byte {
	var out [BlockSize]byte
	for i, word := range w {
		binary.LittleEndian.PutUint32(out[i*4:], word)
	}
	return out
}

// Block returns the 64-byte ChaCha20 keystream block for the given key,
// nonce and counter, per RFC 8439 §2.3. Key must be KeySize bytes and nonce
// must be NonceSize bytes.
func Block(key, nonce []byte, counter uint32) ([BlockSize]byte, error) {
	k, n, err := decodeKeyNonce(key, nonce)
	if err != nil {
		return [BlockSize]byte{}, err
	}
	return serialize(block(k, n, counter)), nil
}

func decodeKeyNonce(key, nonce []byte) (k [8]uint32, n [3]uint32, err error) {
	if len(key) != KeySize {
		return k, n, KeySizeError(len(key))
	}
	if len(nonce) != NonceSize {
		return k, n, NonceSizeError(len(nonce))
	}

	for i := 0; i < 8; i++ {
		k[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	for i := 0; i < 3; i++ {
		n[i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}
	return k, n, nil
}

// numBlocks computes ceil(n/BlockSize).
func numBlocks(n int) int {
	return (n + BlockSize - 1) / BlockSize
}

// exceedsMaxMessageSize reports whether n bytes exceed MaxMessageSize, a
// length XORKeyStream rejects regardless of the counter it is called with.
func exceedsMaxMessageSize(n int) bool {
	return n > MaxMessageSize
}

// XORKeyStream XORs src with the ChaCha20 keystream for (key, nonce,
// counter) and writes the result to dst, which must be at least as long
// as src. It implements RFC 8439 §2.4 and is used for both encryption and
// decryption. counter is the initial block counter; blocks are consumed
// starting at counter and incrementing by one per 64-byte window.
func XORKeyStream(dst, src, key, nonce []byte, counter uint32) error {
	k, n, err := decodeKeyNonce(key, nonce)
	if err != nil {
		return err
	}

	if exceedsMaxMessageSize(len(src)) {
		return MessageTooLongError{Len: len(src), Counter: counter}
	}

	blocks := numBlocks(len(src))
	if blocks > 0 && uint64(counter)+uint64(blocks-1) > 1<<32-1 {
		return MessageTooLongError{Len: len(src), Counter: counter}
	}

	for i := 0; i < blocks; i++ {
		ks := serialize(block(k, n, counter+uint32(i)))
		lo := i * BlockSize
		hi := lo + BlockSize
		if hi > len(src) {
			hi = len(src)
		}
		for j := lo; j < hi; j++ {
			dst[j] = src[j] ^ ks[j-lo]
		}
		zero(ks[:])
	}
	return nil
}

// Encrypt encrypts plaintext with ChaCha20 under key and nonce, starting at
// the given block counter, and returns the ciphertext. Encrypt and Decrypt
// are the same XOR operation; Decrypt is provided as an alias for callers
// who want the direction to be explicit at the call site.
func Encrypt(key, nonce, plaintext []byte, counter uint32) ([]byte, error) {
	dst := make([]byte, len(plaintext))
	if err := XORKeyStream(dst, plaintext, key, nonce, counter); err != nil {
		return nil, err
	}
	return dst, nil
}

// Decrypt decrypts ciphertext with ChaCha20 under key and nonce, starting
// at the given block counter, and returns the plaintext.
func Decrypt(key, nonce, ciphertext []byte, counter uint32) ([]byte, error) {
	return Encrypt(key, nonce, ciphertext, counter)
}

// Keystream returns n bytes of raw ChaCha20 keystream for key, nonce and
// the given initial counter, without XORing them against any message. It
// exercises the block function directly for callers that only need
// pseudo-random bytes (e.g. deriving a one-time key, as
// chacha20poly1305.deriveOneTimeKey does internally).
func Keystream(key, nonce []byte, counter uint32, n int) ([]byte, error) {
	out := make([]byte, n)
	if err := XORKeyStream(out, make([]byte, n), key, nonce, counter); err != nil {
		return nil, err
	}
	return out, nil
}

// zero overwrites b with zeros. Used to scrub transient keystream buffers
// per spec's sensitive-buffer hygiene requirement.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Package poly1305 implements the Poly1305 one-time message authenticator
// as specified in RFC 8439 (https://datatracker.ietf.org/doc/html/rfc8439).
//
// A Poly1305 key authenticates exactly one message: generating a fresh key
// per message (or, in the AEAD construction, per (key, nonce) pair) is the
// caller's responsibility.
package poly1305

import (
	"crypto/subtle"
	"math/big"
	"slices"
)

// p is the Poly1305 prime, 2^130 - 5.
var p *big.Int

func init() {
	p = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 130), big.NewInt(5))
}

// clamp applies RFC 8439's little-endian clamp mask to r:
// 0x0ffffffc0ffffffc0ffffffc0fffffff.
func clamp(r [16]byte) [16]byte {
	r[3] &= 0x0f
	r[7] &= 0x0f
	r[11] &= 0x0f
	r[15] &= 0x0f

	r[4] &= 0xfc
	r[8] &= 0xfc
	r[12] &= 0xfc

	return r
}

// leToBigInt interprets b as a little-endian unsigned integer.
func leToBigInt(b []byte) *big.Int {
	rev := slices.Clone(b)
	slices.Reverse(rev)
	return new(big.Int).SetBytes(rev)
}

// MAC is a stateful Poly1305 one-time authenticator. The zero value is not
// usable; construct one with New. A MAC instance must be used for exactly
// one message.
type MAC struct {
	r, s *big.Int
	acc  *big.Int
	buf  []byte // fewer than BlockSize bytes of unprocessed input
}

// BlockSize is the number of message bytes absorbed per accumulator update.
const BlockSize = 16

// New returns a MAC that authenticates a single message under the given
// 32-byte one-time key, split into clamped r and additive s per RFC 8439
// §2.5.1. New returns a KeySizeError if key is not exactly KeySize bytes.
func New(key []byte) (*MAC, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	var rBytes [16]byte
	copy(rBytes[:], key[:16])
	rBytes = clamp(rBytes)

	return &MAC{
		r:   leToBigInt(rBytes[:]),
		s:   leToBigInt(key[16:32]),
		acc: new(big.Int),
	}, nil
}

// Write absorbs message bytes into the accumulator. It never returns an
// error; the error return exists to satisfy io.Writer.
func (m *MAC) Write(data []byte) (int, error) {
	n := len(data)
	m.buf = append(m.buf, data...)

	for len(m.buf) >= BlockSize {
		m.absorbBlock(m.buf[:BlockSize])
		m.buf = m.buf[BlockSize:]
	}
	return n, nil
}

// absorbBlock updates the accumulator with one message block, per RFC 8439
// §2.5.1: a ← ((a + (block ‖ 0x01)) · r) mod p. block may be a full
// BlockSize block or a shorter final block; the 0x01 terminator and
// implicit zero padding make either one a 17-byte little-endian integer.
func (m *MAC) absorbBlock(block []byte) {
	padded := make([]byte, len(block)+1)
	copy(padded, block)
	padded[len(block)] = 0x01

	n := leToBigInt(padded)

	m.acc.Add(m.acc, n)
	m.acc.Mul(m.acc, m.r)
	m.acc.Mod(m.acc, p)
}

// Sum finalizes the MAC and returns the 16-byte tag. Sum may be called only
// once; the MAC must not be reused for another message afterwards.
func (m *MAC) Sum() [TagSize]byte {
	if len(m.buf) > 0 {
		m.absorbBlock(m.buf)
		m.buf = nil
	}

	result := new(big.Int).Add(m.acc, m.s)
	mod128 := new(big.Int).Lsh(big.NewInt(1), 128)
	result.Mod(result, mod128)

	be := result.Bytes()
	var tag [TagSize]byte
	// be is big-endian, right-aligned and possibly shorter than TagSize;
	// copy into the low-order (rightmost) bytes of a big-endian buffer
	// before reversing to little-endian.
	copy(tag[TagSize-len(be):], be)
	slices.Reverse(tag[:])
	return tag
}

// Sum computes the Poly1305 tag of message under the 32-byte one-time key
// key in a single call. It is equivalent to New followed by one Write and
// one Sum.
func Sum(key, message []byte) ([TagSize]byte, error) {
	m, err := New(key)
	if err != nil {
		return [TagSize]byte{}, err
	}
	m.Write(message)
	return m.Sum(), nil
}

// Verify reports whether tag is the correct Poly1305 tag of message under
// key, using a constant-time comparison (see Equal). It returns an error
// only if key is malformed; an authentication mismatch is reported solely
// through the boolean return, never through the error, per RFC 8439 §4.5's
// discipline against leaking a distinguishable failure mode.
func Verify(key, message, tag []byte) (bool, error) {
	if len(key) != KeySize {
		return false, KeySizeError(len(key))
	}
	computed, err := Sum(key, message)
	if err != nil {
		return false, err
	}
	return Equal(computed[:], tag), nil
}

// Equal reports whether a and b have equal length and equal content. It
// runs in time that depends only on len(a), never on where a and b first
// differ, making it safe to compare secret MAC tags. This is the ct_eq
// primitive of RFC 8439 §4.5.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

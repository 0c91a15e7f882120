// Package xchacha20 implements HChaCha20 and XChaCha20, the 24-byte-nonce
// extension to ChaCha20 described in
// https://datatracker.ietf.org/doc/html/draft-irtf-cfrg-xchacha-03.
//
// RFC 8439's core construction uses a 12-byte nonce; spec.md's Non-goals
// exclude mandating this extended-nonce variant, but this package offers
// it as a thin, clearly-separate layer on top of chacha20 rather than a
// parallel reimplementation of the block function.
package xchacha20

import (
	"encoding/binary"

	"github.com/pmuens/chacha20poly1305/chacha20"
)

// HChaCha20 derives a 32-byte subkey from a 32-byte key and a 16-byte
// nonce by running the ChaCha20 permutation for 20 rounds without the
// final feedforward addition, and keeping the first and last rows of the
// resulting state.
func HChaCha20(key, nonce []byte) ([32]byte, error) {
	if len(key) != chacha20.KeySize {
		return [32]byte{}, chacha20.KeySizeError(len(key))
	}
	if len(nonce) != 16 {
		return [32]byte{}, chacha20.NonceSizeError(len(nonce))
	}

	counter := binary.LittleEndian.Uint32(nonce[0:4])
	state, err := chacha20.Permute(key, nonce[4:16], counter)
	if err != nil {
		return [32]byte{}, err
	}

	var sub [32]byte
	for i, word := range state[0:4] {
		binary.LittleEndian.PutUint32(sub[i*4:], word)
	}
	for i, word := range state[12:16] {
		binary.LittleEndian.PutUint32(sub[16+i*4:], word)
	}
	return sub, nil
}

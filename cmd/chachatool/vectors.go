package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/pmuens/chacha20poly1305/chacha20"
	"github.com/pmuens/chacha20poly1305/chacha20poly1305"
)

// vectorResult is the outcome of running a single named RFC 8439 test
// vector against this module's implementation.
type vectorResult struct {
	name string
	err  error
}

// runVectors exercises the ChaCha20 block function and the
// ChaCha20-Poly1305 AEAD against the RFC 8439 test vectors, so that
// `chachatool vectors` can confirm a build is byte-exact without a Go
// toolchain at hand.
func runVectors() []vectorResult {
	return []vectorResult{
		{"chacha20 block (RFC 8439 §2.3.2)", checkBlockVector()},
		{"chacha20-poly1305 seal (RFC 8439 §2.8.2)", checkSealVector()},
	}
}

func checkBlockVector() error {
	key := mustDecode("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	nonce := mustDecode("000000090000004a00000000")

	block, err := chacha20.Block(key, nonce, 1)
	if err != nil {
		return err
	}

	wantPrefix := mustDecode("10f1e7e4d13b5915500fdd1fa32071c4")
	wantSuffix := mustDecode("e883d0cb4e3c50a2eb65e5d5e4030eca")

	if !bytes.Equal(block[:len(wantPrefix)], wantPrefix) {
		return fmt.Errorf("block prefix mismatch: got %x", block[:len(wantPrefix)])
	}
	if !bytes.Equal(block[len(block)-len(wantSuffix):], wantSuffix) {
		return fmt.Errorf("block suffix mismatch: got %x", block[len(block)-len(wantSuffix):])
	}
	return nil
}

func checkSealVector() error {
	key := mustDecode("808182838485868788898a8b8c8d8e8f909192939495969798999a9b9c9d9e9f")
	nonce := mustDecode("070000004041424344454647")
	aad := mustDecode("50515253c0c1c2c3c4c5c6c7")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you " +
		"only one tip for the future, sunscreen would be it.")

	ciphertext, err := chacha20poly1305.Seal(key, nonce, plaintext, aad)
	if err != nil {
		return err
	}

	wantPrefix := mustDecode("d31a8d34648e60db7b86afbc53ef7ec2")
	wantTag := mustDecode("1ae10b594f09e26a7e902ecbd0600691")

	if !bytes.Equal(ciphertext[:len(wantPrefix)], wantPrefix) {
		return fmt.Errorf("ciphertext prefix mismatch: got %x", ciphertext[:len(wantPrefix)])
	}
	gotTag := ciphertext[len(ciphertext)-chacha20poly1305.Overhead:]
	if !bytes.Equal(gotTag, wantTag) {
		return fmt.Errorf("tag mismatch: got %x", gotTag)
	}

	plain, err := chacha20poly1305.Open(key, nonce, ciphertext, aad)
	if err != nil {
		return fmt.Errorf("open did not verify its own seal: %w", err)
	}
	if !bytes.Equal(plain, plaintext) {
		return fmt.Errorf("round trip mismatch")
	}
	return nil
}

func mustDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

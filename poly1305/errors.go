package poly1305

import "fmt"

// KeySize is the required length, in bytes, of a Poly1305 one-time key.
const KeySize = 32

// TagSize is the length, in bytes, of a Poly1305 tag.
const TagSize = 16

// KeySizeError reports a one-time key whose length isn't exactly KeySize
// bytes.
type KeySizeError int

func (e KeySizeError) Error() string {
	return fmt.Sprintf("poly1305: invalid mac key size %d, must be exactly %d bytes", int(e), KeySize)
}

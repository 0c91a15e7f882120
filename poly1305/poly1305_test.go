package poly1305_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmuens/chacha20poly1305/poly1305"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestSumRFC8439 is RFC 8439 §2.5.2's Poly1305 tag generation test vector.
func TestSumRFC8439(t *testing.T) {
	key := mustHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	message := []byte("Cryptographic Forum Research Group")

	tag, err := poly1305.Sum(key, message)
	require.NoError(t, err)

	want := mustHex(t, "a8061dc1305136c6c22b8baf0c0127a9")
	assert.Equal(t, want, tag[:])
}

func TestSumMatchesIncrementalWrite(t *testing.T) {
	key := mustHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	message := []byte("Cryptographic Forum Research Group")

	oneShot, err := poly1305.Sum(key, message)
	require.NoError(t, err)

	mac, err := poly1305.New(key)
	require.NoError(t, err)
	// Feed the message in uneven chunks to exercise the internal
	// partial-block buffering.
	mac.Write(message[:3])
	mac.Write(message[3:17])
	mac.Write(message[17:])
	incremental := mac.Sum()

	assert.Equal(t, oneShot, incremental)
}

func TestVerify(t *testing.T) {
	key := mustHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	message := []byte("Cryptographic Forum Research Group")
	tag := mustHex(t, "a8061dc1305136c6c22b8baf0c0127a9")

	ok, err := poly1305.Verify(key, message, tag)
	require.NoError(t, err)
	assert.True(t, ok)

	tampered := append([]byte(nil), tag...)
	tampered[0] ^= 0x01
	ok, err = poly1305.Verify(key, message, tampered)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := poly1305.New(make([]byte, 16))
	require.Error(t, err)
	var keyErr poly1305.KeySizeError
	require.ErrorAs(t, err, &keyErr)
}

func TestEqual(t *testing.T) {
	tt := map[string]struct {
		a, b []byte
		want bool
	}{
		"equal":           {a: []byte{1, 2, 3}, b: []byte{1, 2, 3}, want: true},
		"different bytes": {a: []byte{1, 2, 3}, b: []byte{1, 2, 4}, want: false},
		"different length": {
			a: []byte{1, 2, 3}, b: []byte{1, 2}, want: false,
		},
		"both empty": {a: []byte{}, b: []byte{}, want: true},
	}

	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, poly1305.Equal(tc.a, tc.b))
		})
	}
}

// TestEmptyMessage covers the empty-message edge case: no block is
// absorbed, and the tag (s alone) is still a well-formed 16-byte tag.
func TestEmptyMessage(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	tag, err := poly1305.Sum(key, nil)
	require.NoError(t, err)
	assert.Len(t, tag, poly1305.TagSize)
}

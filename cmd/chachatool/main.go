// Command chachatool is a small command-line front end for this module's
// ChaCha20, Poly1305 and ChaCha20-Poly1305 implementations. It exists for
// manual exercising of the primitives against hex-encoded input, and for
// self-checking the implementation against the RFC 8439 test vectors.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmuens/chacha20poly1305/chacha20"
	"github.com/pmuens/chacha20poly1305/chacha20poly1305"
	"github.com/pmuens/chacha20poly1305/xchacha20poly1305"
)

var logger *zap.Logger

func main() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "chachatool: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chachatool",
		Short:         "Exercise ChaCha20, Poly1305 and ChaCha20-Poly1305 from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSealCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newKeystreamCmd())
	root.AddCommand(newVectorsCmd())

	return root
}

// hexFlags holds the key/nonce/aad flags shared by seal and open.
type hexFlags struct {
	key     string
	nonce   string
	aad     string
	xchacha bool
}

func (f *hexFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "key", "", "32-byte key, hex-encoded (required)")
	cmd.Flags().StringVar(&f.nonce, "nonce", "", "nonce, hex-encoded: 12 bytes for ChaCha20-Poly1305, 24 for XChaCha20-Poly1305 (required)")
	cmd.Flags().StringVar(&f.aad, "aad", "", "additional authenticated data, hex-encoded (optional)")
	cmd.Flags().BoolVar(&f.xchacha, "xchacha", false, "use the XChaCha20-Poly1305 construction (implied by a 24-byte nonce)")
	cmd.MarkFlagRequired("key")   //nolint:errcheck
	cmd.MarkFlagRequired("nonce") //nolint:errcheck
}

func (f *hexFlags) decode() (key, nonce, aad []byte, err error) {
	key, err = hex.DecodeString(f.key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding --key: %w", err)
	}
	nonce, err = hex.DecodeString(f.nonce)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding --nonce: %w", err)
	}
	if f.aad != "" {
		aad, err = hex.DecodeString(f.aad)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("decoding --aad: %w", err)
		}
	}
	return key, nonce, aad, nil
}

func (f *hexFlags) useXChaCha(nonce []byte) bool {
	return f.xchacha || len(nonce) == xchacha20poly1305.NonceSize
}

func newSealCmd() *cobra.Command {
	f := &hexFlags{}
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt and authenticate plaintext read from stdin, writing hex ciphertext||tag to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, nonce, aad, err := f.decode()
			if err != nil {
				return err
			}

			plaintext, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading plaintext: %w", err)
			}

			var out []byte
			if f.useXChaCha(nonce) {
				out, err = xchacha20poly1305.Seal(key, nonce, plaintext, aad)
			} else {
				out, err = chacha20poly1305.Seal(key, nonce, plaintext, aad)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			logger.Info("sealed", zap.Int("plaintext_bytes", len(plaintext)), zap.Int("ciphertext_bytes", len(out)))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newOpenCmd() *cobra.Command {
	f := &hexFlags{}
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Verify and decrypt a hex ciphertext||tag read from stdin, writing plaintext to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, nonce, aad, err := f.decode()
			if err != nil {
				return err
			}

			encoded, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading ciphertext: %w", err)
			}
			ciphertextAndTag, err := hex.DecodeString(trimNewline(string(encoded)))
			if err != nil {
				return fmt.Errorf("decoding ciphertext: %w", err)
			}

			var plaintext []byte
			if f.useXChaCha(nonce) {
				plaintext, err = xchacha20poly1305.Open(key, nonce, ciphertextAndTag, aad)
			} else {
				plaintext, err = chacha20poly1305.Open(key, nonce, ciphertextAndTag, aad)
			}
			if err != nil {
				logger.Warn("authentication failed", zap.Error(err))
				return err
			}

			cmd.OutOrStdout().Write(plaintext) //nolint:errcheck
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newKeystreamCmd() *cobra.Command {
	var key, nonce string
	var counter uint32
	var length int

	cmd := &cobra.Command{
		Use:   "keystream",
		Short: "Print raw ChaCha20 keystream bytes, hex-encoded",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := hex.DecodeString(key)
			if err != nil {
				return fmt.Errorf("decoding --key: %w", err)
			}
			n, err := hex.DecodeString(nonce)
			if err != nil {
				return fmt.Errorf("decoding --nonce: %w", err)
			}

			ks, err := chacha20.Keystream(k, n, counter, length)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(ks))
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "32-byte key, hex-encoded (required)")
	cmd.Flags().StringVar(&nonce, "nonce", "", "12-byte nonce, hex-encoded (required)")
	cmd.Flags().Uint32Var(&counter, "counter", 0, "initial block counter")
	cmd.Flags().IntVar(&length, "length", chacha20.BlockSize, "number of keystream bytes to produce")
	cmd.MarkFlagRequired("key")   //nolint:errcheck
	cmd.MarkFlagRequired("nonce") //nolint:errcheck

	return cmd
}

func newVectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vectors",
		Short: "Run this module's built-in RFC 8439 test vectors and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runVectors()
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					logger.Error("vector failed", zap.String("name", r.name), zap.Error(r.err))
					continue
				}
				logger.Info("vector passed", zap.String("name", r.name))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d vectors passed\n", len(results)-failed, len(results))
			if failed > 0 {
				return fmt.Errorf("%d of %d vectors failed", failed, len(results))
			}
			return nil
		},
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

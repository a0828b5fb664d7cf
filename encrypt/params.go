// Package encrypt implements the native half of the verifiable encryption
// scheme: an exponential-ElGamal-style cryptosystem over Baby Jubjub whose
// second component masks each plaintext slot with a Poseidon2-derived pad,
// plus the public-input encoding consumed by proof verifiers. The in-circuit
// half lives in the circuit package and re-derives exactly this computation.
package encrypt

import (
	"fmt"

	"github.com/vocdoni/verifiable-elgamal/sponge"
)

// Parameters bundles the ciphertext batch width with the sponge shape. Every
// encryption, decryption and proof touching a given ciphertext must use the
// same Parameters; the value is immutable after construction and safe to
// share across goroutines.
type Parameters struct {
	// N is the batch width: the fixed number of ciphertext slots per
	// circuit instance. Messages shorter than N are zero-padded by the
	// public-input encoding.
	N      int
	Sponge sponge.Config
}

// NewParameters validates the batch width and sponge shape. A malformed
// parameter set is a recoverable configuration error, never a panic.
func NewParameters(n int, cfg sponge.Config) (Parameters, error) {
	if n <= 0 {
		return Parameters{}, fmt.Errorf("batch width must be positive, got %d", n)
	}
	if err := cfg.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("sponge config: %w", err)
	}
	return Parameters{N: n, Sponge: cfg}, nil
}

// DefaultParameters returns Parameters with batch width n and the default
// sponge shape.
func DefaultParameters(n int) (Parameters, error) {
	return NewParameters(n, sponge.DefaultConfig())
}

func (p Parameters) validate() error {
	_, err := NewParameters(p.N, p.Sponge)
	return err
}

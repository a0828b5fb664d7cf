// Package sponge implements a duplex sponge over the Poseidon2 permutation
// on the BN254 scalar field, in a native form and an in-circuit form with
// identical absorb/squeeze semantics. The scheme uses it as a key-derivation
// function from a shared Baby Jubjub point to a field mask, so the two forms
// must stay congruent bit for bit: round keys on both sides derive from the
// same (width, rF, rP) triple through gnark-crypto.
package sponge

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// Config fixes the shape of the Poseidon2 permutation. A deployment must use
// the same Config for every encryption, decryption and proof touching a
// given ciphertext; mixing configs silently derives different masks.
type Config struct {
	Width         int
	FullRounds    int
	PartialRounds int
}

// DefaultConfig returns a width-3 permutation (rate 2, capacity 1), so the
// two coordinates of an absorbed point fit in a single permutation call.
func DefaultConfig() Config {
	return Config{Width: 3, FullRounds: 8, PartialRounds: 56}
}

// Rate returns the number of state slots available for input/output. Slot 0
// is the capacity and is never written by callers.
func (cfg Config) Rate() int {
	return cfg.Width - 1
}

func (cfg Config) Validate() error {
	if cfg.Width < 2 {
		return fmt.Errorf("sponge width must be at least 2, got %d", cfg.Width)
	}
	if cfg.FullRounds <= 0 || cfg.FullRounds%2 != 0 {
		return fmt.Errorf("number of full rounds must be positive and even, got %d", cfg.FullRounds)
	}
	if cfg.PartialRounds <= 0 {
		return fmt.Errorf("number of partial rounds must be positive, got %d", cfg.PartialRounds)
	}
	return nil
}

// Sponge is the native duplex sponge. Inputs are buffered by Absorb and
// folded into the state by the next Squeeze. The zero state is the initial
// state; squeezing without absorbing first reads it unpermuted.
type Sponge struct {
	cfg   Config
	perm  *poseidon2.Permutation
	state []fr.Element
	buf   []fr.Element
}

func New(cfg Config) (*Sponge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sponge{
		cfg:   cfg,
		perm:  poseidon2.NewPermutation(cfg.Width, cfg.FullRounds, cfg.PartialRounds),
		state: make([]fr.Element, cfg.Width),
	}, nil
}

// Absorb queues elems for the next Squeeze.
func (s *Sponge) Absorb(elems ...fr.Element) {
	s.buf = append(s.buf, elems...)
}

// AbsorbPoint absorbs the affine coordinates of p, X first.
func (s *Sponge) AbsorbPoint(p *babyjubjub.PointAffine) {
	s.Absorb(p.X, p.Y)
}

// Squeeze folds all buffered input into the state and returns count output
// elements. Buffered input is added into the rate slots in rate-sized
// chunks, permuting after each chunk; outputs are read from the rate slots,
// permuting again between output blocks.
func (s *Sponge) Squeeze(count int) ([]fr.Element, error) {
	rate := s.cfg.Rate()
	for start := 0; start < len(s.buf); start += rate {
		end := min(start+rate, len(s.buf))
		for i := start; i < end; i++ {
			s.state[i-start+1].Add(&s.state[i-start+1], &s.buf[i])
		}
		if err := s.perm.Permutation(s.state); err != nil {
			return nil, fmt.Errorf("poseidon2 permutation: %w", err)
		}
	}
	s.buf = s.buf[:0]

	out := make([]fr.Element, 0, count)
	for len(out) < count {
		if len(out) > 0 {
			if err := s.perm.Permutation(s.state); err != nil {
				return nil, fmt.Errorf("poseidon2 permutation: %w", err)
			}
		}
		take := min(rate, count-len(out))
		out = append(out, s.state[1:1+take]...)
	}
	return out, nil
}

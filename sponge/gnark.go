package sponge

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/permutation/poseidon2"
)

// Gadget is the in-circuit mirror of Sponge. It buffers absorbed variables
// and emits the same chunking, state additions and permutation calls as the
// native side, so for matching inputs the squeezed variables are constrained
// to the native outputs.
type Gadget struct {
	api   frontend.API
	cfg   Config
	perm  *poseidon2.Permutation
	state []frontend.Variable
	buf   []frontend.Variable
}

func NewGadget(api frontend.API, cfg Config) (*Gadget, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	perm, err := poseidon2.NewPoseidon2FromParameters(api, cfg.Width, cfg.FullRounds, cfg.PartialRounds)
	if err != nil {
		return nil, fmt.Errorf("poseidon2 gadget: %w", err)
	}
	state := make([]frontend.Variable, cfg.Width)
	for i := range state {
		state[i] = 0
	}
	return &Gadget{api: api, cfg: cfg, perm: perm, state: state}, nil
}

// Absorb queues elems for the next Squeeze.
func (s *Gadget) Absorb(elems ...frontend.Variable) {
	s.buf = append(s.buf, elems...)
}

// AbsorbPoint absorbs the coordinates of p, X first.
func (s *Gadget) AbsorbPoint(p twistededwards.Point) {
	s.Absorb(p.X, p.Y)
}

// Squeeze folds buffered input into the state and returns count output
// variables. Mirrors Sponge.Squeeze exactly.
func (s *Gadget) Squeeze(count int) ([]frontend.Variable, error) {
	rate := s.cfg.Rate()
	for start := 0; start < len(s.buf); start += rate {
		end := min(start+rate, len(s.buf))
		for i := start; i < end; i++ {
			s.state[i-start+1] = s.api.Add(s.state[i-start+1], s.buf[i])
		}
		if err := s.perm.Permutation(s.state); err != nil {
			return nil, fmt.Errorf("poseidon2 permutation: %w", err)
		}
	}
	s.buf = s.buf[:0]

	out := make([]frontend.Variable, 0, count)
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

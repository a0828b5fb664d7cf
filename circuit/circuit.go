package circuit

import (
	"io"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"

	"github.com/vocdoni/verifiable-elgamal/encrypt"
)

// Circuit proves that the public ciphertext (C1, C2) is a correct
// encryption of the witnessed plaintext under the witnessed public key and
// randomness. The public part follows the PublicInputs order:
// C1.X, C1.Y, then the n mask slots.
type Circuit struct {
	K      frontend.Variable
	PubKey twistededwards.Point
	Msg    []frontend.Variable

	C1 twistededwards.Point `gnark:",public"`
	C2 []frontend.Variable  `gnark:",public"`

	params encrypt.Parameters
}

// New returns a compilable circuit with the slot slices sized to the batch
// width.
func New(params encrypt.Parameters) (*Circuit, error) {
	if _, err := encrypt.NewParameters(params.N, params.Sponge); err != nil {
		return nil, err
	}
	return &Circuit{
		Msg:    make([]frontend.Variable, params.N),
		C2:     make([]frontend.Variable, params.N),
		params: params,
	}, nil
}

func (c *Circuit) Define(api frontend.API) error {
	return VerifyEncryption(api, c.params, c.PubKey, c.K, c.Msg, Ciphertext{C1: c.C1, C2: c.C2})
}

// NewAssignment samples fresh randomness, encrypts msg natively and returns
// the full witness assignment together with the resulting ciphertext. The
// public ciphertext and the witnessed randomness are congruent by
// construction; a caller cannot pair the witness with a ciphertext it did
// not produce. Pass nil to use crypto/rand.
func NewAssignment(pk *encrypt.PublicKey, msg encrypt.Plaintext, params encrypt.Parameters,
	random io.Reader,
) (*Circuit, *encrypt.Ciphertext, error) {
	k, err := encrypt.NewRandomness(random)
	if err != nil {
		return nil, nil, err
	}
	ct, err := encrypt.Encrypt(pk, msg, k, params)
	if err != nil {
		return nil, nil, err
	}
	a, err := newAssignment(pk, msg, k, ct, params)
	if err != nil {
		return nil, nil, err
	}
	return a, ct, nil
}

func newAssignment(pk *encrypt.PublicKey, msg encrypt.Plaintext, k encrypt.Randomness,
	ct *encrypt.Ciphertext, params encrypt.Parameters,
) (*Circuit, error) {
	pub, err := encrypt.PublicInputs(ct, params)
	if err != nil {
		return nil, err
	}
	a := &Circuit{
		K: k,
		PubKey: twistededwards.Point{
			X: pk.X.BigInt(new(big.Int)),
			Y: pk.Y.BigInt(new(big.Int)),
		},
		Msg: make([]frontend.Variable, params.N),
		C1: twistededwards.Point{
			X: pub[0].BigInt(new(big.Int)),
			Y: pub[1].BigInt(new(big.Int)),
		},
		C2: make([]frontend.Variable, params.N),
	}
	for i := 0; i < params.N; i++ {
		if i < len(msg) {
			a.Msg[i] = msg[i].BigInt(new(big.Int))
		} else {
			a.Msg[i] = 0
		}
		a.C2[i] = pub[2+i].BigInt(new(big.Int))
	}
	return a, nil
}

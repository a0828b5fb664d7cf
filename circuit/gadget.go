// Package circuit re-executes the native encryption inside a gnark
// constraint system and enforces consistency with a published ciphertext.
// Satisfiability is the gadget's whole contract: an honest witness yields a
// satisfiable system, a dishonest one makes it unsatisfiable, which the
// proving backend surfaces as proof failure.
package circuit

import (
	"fmt"

	twisted "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"

	"github.com/vocdoni/verifiable-elgamal/encrypt"
	"github.com/vocdoni/verifiable-elgamal/sponge"
)

// Ciphertext mirrors encrypt.Ciphertext inside the constraint system: the
// first component as a twisted Edwards point, one variable per mask slot.
type Ciphertext struct {
	C1 twistededwards.Point
	C2 []frontend.Variable
}

// VerifyEncryption re-derives the encryption of msg under pk with randomness
// k and enforces it against ct. The c1 equality is unconditional. Each c2
// slot is enforced only when the public slot is nonzero: zero slots are
// padding and stay unconstrained, which lets one fixed-width circuit serve
// shorter messages without leaking their length. The flip side is that a
// slot legitimately encrypting to field zero is also left unconstrained;
// see DESIGN.md.
//
// Length preconditions are programming errors and are reported before any
// constraint is emitted.
func VerifyEncryption(api frontend.API, params encrypt.Parameters, pk twistededwards.Point,
	k frontend.Variable, msg []frontend.Variable, ct Ciphertext,
) error {
	if params.N < len(msg) {
		return fmt.Errorf("batch width %d smaller than plaintext length %d", params.N, len(msg))
	}
	if params.N < len(ct.C2) {
		return fmt.Errorf("batch width %d smaller than ciphertext length %d", params.N, len(ct.C2))
	}

	curve, err := twistededwards.NewEdCurve(api, twisted.BN254)
	if err != nil {
		return err
	}
	curve.AssertIsOnCurve(pk)

	// c1' = [k] * G, generator baked in as constants
	c1 := FixedBaseScalarMul(api, k)
	api.AssertIsEqual(c1.X, ct.C1.X)
	api.AssertIsEqual(c1.Y, ct.C1.Y)

	// s = [k] * publicKey
	s := curve.ScalarMul(pk, k)

	// dh = H(s), congruent with the native mask derivation
	h, err := sponge.NewGadget(api, params.Sponge)
	if err != nil {
		return err
	}
	h.AbsorbPoint(s)
	out, err := h.Squeeze(1)
	if err != nil {
		return err
	}
	dh := out[0]

	for i := range ct.C2 {
		var m frontend.Variable = 0
		if i < len(msg) {
			m = msg[i]
		}
		masked := api.Add(dh, m)
		isNotEmpty := api.Sub(1, api.IsZero(ct.C2[i]))
		api.AssertIsEqual(api.Mul(isNotEmpty, api.Sub(masked, ct.C2[i])), 0)
	}
	return nil
}

package encrypt

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// PublicInputs flattens a ciphertext into the ordered public-input vector a
// proof verifier must supply: [c1.X, c1.Y, c2_0, ..., c2_{n-1}]. Slots
// beyond len(ct.C2) are zero. This is the bridge between Encrypt's
// possibly-short C2 and the circuit's fixed width; any deviation in padding,
// order or width makes verification reject honest proofs.
func PublicInputs(ct *Ciphertext, params Parameters) ([]fr.Element, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(ct.C2) > params.N {
		return nil, fmt.Errorf("ciphertext has %d slots, batch width is %d", len(ct.C2), params.N)
	}
	inputs := make([]fr.Element, 0, 2+params.N)
	inputs = append(inputs, ct.C1.X, ct.C1.Y)
	for i := 0; i < params.N; i++ {
		var slot fr.Element
		if i < len(ct.C2) {
			slot = ct.C2[i]
		}
		inputs = append(inputs, slot)
	}
	return inputs, nil
}

package encrypt

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/vocdoni/verifiable-elgamal/sponge"
)

// sizePoint is the length of a compressed Baby Jubjub point encoding.
const sizePoint = 32

// Ciphertext is the publishable artifact: c1 = r·G and one masked field
// element per plaintext slot. C2 holds len(msg) slots as produced by
// Encrypt; padding to the batch width is applied by PublicInputs, which is
// the single source of truth for the padding convention.
type Ciphertext struct {
	C1 babyjubjub.PointAffine
	C2 []fr.Element
}

// Encrypt encrypts msg under pk with randomness r. The mask is derived once
// per ciphertext: dh = Squeeze1(Sponge(r·pk)), c2_i = dh + m_i. The result
// is a pure function of (pk, msg, r, params).
func Encrypt(pk *PublicKey, msg Plaintext, r Randomness, params Parameters) (*Ciphertext, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if len(msg) > params.N {
		return nil, fmt.Errorf("message length %d exceeds batch width %d", len(msg), params.N)
	}

	curve := babyjubjub.GetEdwardsCurve()
	var c1 babyjubjub.PointAffine
	c1.ScalarMultiplication(&curve.Base, r)

	var shared babyjubjub.PointAffine
	shared.ScalarMultiplication(pk, r)
	dh, err := deriveMask(&shared, params)
	if err != nil {
		return nil, err
	}

	c2 := make([]fr.Element, len(msg))
	for i := range msg {
		c2[i].Add(&dh, &msg[i])
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt recovers one field element per ciphertext slot. It cannot
// distinguish real data from padding: slots beyond the true plaintext
// length decrypt to meaningless values, and callers must track the true
// length out of band.
func Decrypt(ct *Ciphertext, sk SecretKey, params Parameters) (Plaintext, error) {
	dh, err := sharedMask(ct, sk, params)
	if err != nil {
		return nil, err
	}
	msg := make(Plaintext, len(ct.C2))
	for i := range ct.C2 {
		msg[i].Sub(&ct.C2[i], &dh)
	}
	return msg, nil
}

// DecryptAt decrypts the single slot idx.
func DecryptAt(ct *Ciphertext, idx int, sk SecretKey, params Parameters) (fr.Element, error) {
	if idx < 0 || idx >= len(ct.C2) {
		return fr.Element{}, fmt.Errorf("slot index %d out of range [0,%d)", idx, len(ct.C2))
	}
	dh, err := sharedMask(ct, sk, params)
	if err != nil {
		return fr.Element{}, err
	}
	var m fr.Element
	m.Sub(&ct.C2[idx], &dh)
	return m, nil
}

func sharedMask(ct *Ciphertext, sk SecretKey, params Parameters) (fr.Element, error) {
	var shared babyjubjub.PointAffine
	shared.ScalarMultiplication(&ct.C1, sk)
	return deriveMask(&shared, params)
}

func deriveMask(shared *babyjubjub.PointAffine, params Parameters) (fr.Element, error) {
	h, err := sponge.New(params.Sponge)
	if err != nil {
		return fr.Element{}, err
	}
	h.AbsorbPoint(shared)
	out, err := h.Squeeze(1)
	if err != nil {
		return fr.Element{}, err
	}
	return out[0], nil
}

// MarshalBinary encodes the ciphertext as the compressed point followed by
// each slot as a canonical 32-byte big-endian field element.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, sizePoint+len(ct.C2)*fr.Bytes)
	buf = append(buf, ct.C1.Marshal()...)
	for i := range ct.C2 {
		b := ct.C2[i].Bytes()
		buf = append(buf, b[:]...)
	}
	return buf, nil
}

// UnmarshalBinary decodes a ciphertext produced by MarshalBinary. The slot
// count is implied by the data length.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) < sizePoint || (len(data)-sizePoint)%fr.Bytes != 0 {
		return errors.New("malformed ciphertext encoding")
	}
	if err := ct.C1.Unmarshal(data[:sizePoint]); err != nil {
		return fmt.Errorf("decoding c1: %w", err)
	}
	n := (len(data) - sizePoint) / fr.Bytes
	ct.C2 = make([]fr.Element, n)
	for i := 0; i < n; i++ {
		ct.C2[i].SetBytes(data[sizePoint+i*fr.Bytes : sizePoint+(i+1)*fr.Bytes])
	}
	return nil
}

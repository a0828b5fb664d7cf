package encrypt

import (
	mrand "math/rand"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

func randomPlaintext(c *qt.C, n int) Plaintext {
	msg := make(Plaintext, n)
	for i := range msg {
		_, err := msg[i].SetRandom()
		c.Assert(err, qt.IsNil)
	}
	return msg
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(3)
	c.Assert(err, qt.IsNil)

	sk, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)

	msg := randomPlaintext(c, 2)
	ct, err := Encrypt(pk, msg, r, params)
	c.Assert(err, qt.IsNil)
	c.Assert(len(ct.C2), qt.Equals, len(msg))

	dec, err := Decrypt(ct, sk, params)
	c.Assert(err, qt.IsNil)
	c.Assert(len(dec), qt.Equals, len(msg))
	for i := range msg {
		c.Assert(dec[i].Equal(&msg[i]), qt.IsTrue)
	}

	for i := range msg {
		m, err := DecryptAt(ct, i, sk, params)
		c.Assert(err, qt.IsNil)
		c.Assert(m.Equal(&msg[i]), qt.IsTrue)
	}
}

func TestEncryptDeterminism(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(2)
	c.Assert(err, qt.IsNil)

	_, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)
	msg := randomPlaintext(c, 2)

	ct1, err := Encrypt(pk, msg, r, params)
	c.Assert(err, qt.IsNil)
	ct2, err := Encrypt(pk, msg, r, params)
	c.Assert(err, qt.IsNil)
	c.Assert(ct2, qt.DeepEquals, ct1)
}

func TestGenerateKeyPairReproducible(t *testing.T) {
	c := qt.New(t)

	sk1, pk1, err := GenerateKeyPair(mrand.New(mrand.NewSource(42)))
	c.Assert(err, qt.IsNil)
	sk2, pk2, err := GenerateKeyPair(mrand.New(mrand.NewSource(42)))
	c.Assert(err, qt.IsNil)
	c.Assert(sk1.Cmp(sk2), qt.Equals, 0)
	c.Assert(pk1.Equal(pk2), qt.IsTrue)

	// pk is exactly sk·G
	curve := babyjubjub.GetEdwardsCurve()
	var expected babyjubjub.PointAffine
	expected.ScalarMultiplication(&curve.Base, sk1)
	c.Assert(pk1.Equal(&expected), qt.IsTrue)
	c.Assert(pk1.IsOnCurve(), qt.IsTrue)
}

func TestEncryptRejectsOversizedMessage(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(1)
	c.Assert(err, qt.IsNil)
	_, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)

	_, err = Encrypt(pk, randomPlaintext(c, 2), r, params)
	c.Assert(err, qt.ErrorMatches, "message length 2 exceeds batch width 1")
}

func TestDecryptAtBounds(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(2)
	c.Assert(err, qt.IsNil)
	sk, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)
	ct, err := Encrypt(pk, randomPlaintext(c, 2), r, params)
	c.Assert(err, qt.IsNil)

	_, err = DecryptAt(ct, 2, sk, params)
	c.Assert(err, qt.IsNotNil)
	_, err = DecryptAt(ct, -1, sk, params)
	c.Assert(err, qt.IsNotNil)
}

func TestPublicInputsPadding(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(3)
	c.Assert(err, qt.IsNil)
	_, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)

	msg := randomPlaintext(c, 2)
	ct, err := Encrypt(pk, msg, r, params)
	c.Assert(err, qt.IsNil)

	inputs, err := PublicInputs(ct, params)
	c.Assert(err, qt.IsNil)
	c.Assert(len(inputs), qt.Equals, 2+params.N)
	c.Assert(inputs[0].Equal(&ct.C1.X), qt.IsTrue)
	c.Assert(inputs[1].Equal(&ct.C1.Y), qt.IsTrue)
	c.Assert(inputs[2].Equal(&ct.C2[0]), qt.IsTrue)
	c.Assert(inputs[3].Equal(&ct.C2[1]), qt.IsTrue)
	// slot past the real message is zero padding
	c.Assert(inputs[4].IsZero(), qt.IsTrue)

	// a ciphertext wider than the batch width is a configuration error
	wide := &Ciphertext{C1: ct.C1, C2: make([]fr.Element, params.N+1)}
	_, err = PublicInputs(wide, params)
	c.Assert(err, qt.IsNotNil)
}

func TestCiphertextSerialization(t *testing.T) {
	c := qt.New(t)
	params, err := DefaultParameters(2)
	c.Assert(err, qt.IsNil)
	_, pk, err := GenerateKeyPair(nil)
	c.Assert(err, qt.IsNil)
	r, err := NewRandomness(nil)
	c.Assert(err, qt.IsNil)
	ct, err := Encrypt(pk, randomPlaintext(c, 2), r, params)
	c.Assert(err, qt.IsNil)

	data, err := ct.MarshalBinary()
	c.Assert(err, qt.IsNil)
	c.Assert(len(data), qt.Equals, sizePoint+2*fr.Bytes)

	var back Ciphertext
	c.Assert(back.UnmarshalBinary(data), qt.IsNil)
	c.Assert(&back, qt.DeepEquals, ct)

	c.Assert(new(Ciphertext).UnmarshalBinary(data[:7]), qt.IsNotNil)
}

func TestNewParametersValidation(t *testing.T) {
	c := qt.New(t)
	_, err := DefaultParameters(0)
	c.Assert(err, qt.IsNotNil)
	_, err = DefaultParameters(-3)
	c.Assert(err, qt.IsNotNil)
	p, err := DefaultParameters(4)
	c.Assert(err, qt.IsNil)
	c.Assert(p.N, qt.Equals, 4)
}

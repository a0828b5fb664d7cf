package encrypt

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// SecretKey is a uniformly random scalar below the Baby Jubjub subgroup
// order. It never leaves the key holder.
type SecretKey = *big.Int

// PublicKey is sk·G for the fixed subgroup generator G. Shared freely.
type PublicKey = babyjubjub.PointAffine

// Randomness is a fresh scalar sampled per encryption. It must never be
// reused under the same key, and must stay secret after encryption since it
// is also the circuit witness binding the ciphertext to the plaintext.
type Randomness = *big.Int

// Plaintext is an ordered sequence of base-field elements of length at most
// the batch width. Each position maps to a fixed ciphertext slot.
type Plaintext = []fr.Element

// GenerateKeyPair samples a secret key uniformly from the scalar field and
// derives the public key as sk·G. Pass nil to use crypto/rand.
func GenerateKeyPair(random io.Reader) (SecretKey, *PublicKey, error) {
	sk, err := randomScalar(random)
	if err != nil {
		return nil, nil, fmt.Errorf("sampling secret key: %w", err)
	}
	if sk.Sign() == 0 {
		sk.SetInt64(1) // avoid zero secret keys
	}
	curve := babyjubjub.GetEdwardsCurve()
	var pk babyjubjub.PointAffine
	pk.ScalarMultiplication(&curve.Base, sk)
	return sk, &pk, nil
}

// NewRandomness samples a fresh encryption randomness. Pass nil to use
// crypto/rand.
func NewRandomness(random io.Reader) (Randomness, error) {
	k, err := randomScalar(random)
	if err != nil {
		return nil, fmt.Errorf("sampling encryption randomness: %w", err)
	}
	return k, nil
}

func randomScalar(random io.Reader) (*big.Int, error) {
	if random == nil {
		random = rand.Reader
	}
	curve := babyjubjub.GetEdwardsCurve()
	return rand.Int(random, &curve.Order)
}

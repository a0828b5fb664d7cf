package circuit

import (
	"math/big"
	"sync"

	babyjubjub "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	twisted "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/consensys/gnark/std/math/bits"
)

// 254-bit scalars split into 4-bit windows: 63 full windows plus a 2-bit
// tail. Window i selects among precomputed multiples [v * 2^(4i)]·G, so the
// generator enters the circuit purely as constants.
const (
	scalarBits = 254
	windowBits = 4
	numWindows = 64
	tailBits   = scalarBits - (numWindows-1)*windowBits
)

// generatorTable[i][v] holds [v * 2^(4i)]·G; index 0 is the identity (0,1).
var (
	generatorTable     [numWindows][][2]*big.Int
	generatorTableOnce sync.Once
)

func initGeneratorTable() {
	curve := babyjubjub.GetEdwardsCurve()
	for i := 0; i < numWindows; i++ {
		entries := 1 << windowBits
		if i == numWindows-1 {
			entries = 1 << tailBits
		}
		table := make([][2]*big.Int, entries)
		table[0] = [2]*big.Int{big.NewInt(0), big.NewInt(1)}
		step := new(big.Int).Lsh(big.NewInt(1), uint(windowBits*i))
		for v := 1; v < entries; v++ {
			var p babyjubjub.PointAffine
			p.ScalarMultiplication(&curve.Base, new(big.Int).Mul(big.NewInt(int64(v)), step))
			table[v] = [2]*big.Int{p.X.BigInt(new(big.Int)), p.Y.BigInt(new(big.Int))}
		}
		generatorTable[i] = table
	}
}

// lookupWindow selects table[sel] coordinate-wise for a 2- or 4-bit window,
// sel given as little-endian bits.
func lookupWindow(api frontend.API, sel []frontend.Variable, table [][2]*big.Int) (x, y frontend.Variable) {
	if len(sel) == tailBits {
		x = api.Lookup2(sel[0], sel[1], table[0][0], table[1][0], table[2][0], table[3][0])
		y = api.Lookup2(sel[0], sel[1], table[0][1], table[1][1], table[2][1], table[3][1])
		return x, y
	}
	// low bit pair selects within each quad, high pair selects the quad
	var qx, qy [4]frontend.Variable
	for q := 0; q < 4; q++ {
		qx[q] = api.Lookup2(sel[0], sel[1], table[4*q][0], table[4*q+1][0], table[4*q+2][0], table[4*q+3][0])
		qy[q] = api.Lookup2(sel[0], sel[1], table[4*q][1], table[4*q+1][1], table[4*q+2][1], table[4*q+3][1])
	}
	x = api.Lookup2(sel[2], sel[3], qx[0], qx[1], qx[2], qx[3])
	y = api.Lookup2(sel[2], sel[3], qy[0], qy[1], qy[2], qy[3])
	return x, y
}

func windowIsZero(api frontend.API, sel []frontend.Variable) frontend.Variable {
	z := api.Sub(1, sel[0])
	for _, b := range sel[1:] {
		z = api.And(z, api.Sub(1, b))
	}
	return z
}

// FixedBaseScalarMul computes [scalar]·G for the fixed Baby Jubjub
// generator using windowed lookups over the precomputed table.
//
// Panics if twistededwards curve init fails.
func FixedBaseScalarMul(api frontend.API, scalar frontend.Variable) twistededwards.Point {
	generatorTableOnce.Do(initGeneratorTable)

	curve, err := twistededwards.NewEdCurve(api, twisted.BN254)
	if err != nil {
		panic(err)
	}

	sel := bits.ToBinary(api, scalar, bits.WithNbDigits(scalarBits))

	var acc twistededwards.Point
	for i := 0; i < numWindows; i++ {
		lo := i * windowBits
		hi := min(lo+windowBits, scalarBits)
		window := sel[lo:hi]
		px, py := lookupWindow(api, window, generatorTable[i])
		contrib := twistededwards.Point{X: px, Y: py}
		if i == 0 {
			// window 0 initializes the accumulator; a zero nibble yields
			// the identity from the table, which is the correct start
			acc = contrib
			continue
		}
		// skip the identity contribution when the window is zero
		zero := windowIsZero(api, window)
		sum := curve.Add(acc, contrib)
		acc.X = api.Select(zero, acc.X, sum.X)
		acc.Y = api.Select(zero, acc.Y, sum.Y)
	}
	return acc
}

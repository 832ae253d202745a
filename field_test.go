package mlkem

import (
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomRingElement(r *mrand.Rand) ringElement {
	var f ringElement
	for i := range f {
		f[i] = fieldElement(r.IntN(q))
	}
	return f
}

func TestFieldReduceOnce(t *testing.T) {
	for a := uint16(0); a < 2*q; a++ {
		if got := fieldReduceOnce(a); uint16(got) != a%q {
			t.Fatalf("fieldReduceOnce(%d) = %d, want %d", a, got, a%q)
		}
	}
}

func TestFieldReduce(t *testing.T) {
	r := mrand.New(mrand.NewPCG(1, 1))
	check := func(a uint32) {
		if got := fieldReduce(a); uint32(got) != a%q {
			t.Fatalf("fieldReduce(%d) = %d, want %d", a, got, a%q)
		}
	}
	for a := uint32(0); a < 4*q*q; a += 7 {
		if a >= q+2*q*q {
			break
		}
		check(a)
	}
	check(q + 2*q*q - 1)
	for i := 0; i < 100000; i++ {
		check(r.Uint32N(q + 2*q*q))
	}
}

func TestFieldArithmetic(t *testing.T) {
	a := require.New(t)
	for x := fieldElement(0); x < q; x += 13 {
		for y := fieldElement(0); y < q; y += 17 {
			a.Equal(fieldElement((uint32(x)+uint32(y))%q), fieldAdd(x, y))
			a.Equal(fieldElement((uint32(x)+q-uint32(y))%q), fieldSub(x, y))
			a.Equal(fieldElement(uint32(x)*uint32(y)%q), fieldMul(x, y))
			a.Equal(fieldElement(uint32(x)*((uint32(y)+q-5)%q)%q), fieldMulSub(x, y, 5))
			a.Equal(fieldElement((uint32(x)*uint32(y)+uint32(y)*uint32(x))%q), fieldAddMul(x, y, y, x))
		}
	}
}

func TestPolyAddSub(t *testing.T) {
	r := mrand.New(mrand.NewPCG(2, 2))
	a := randomRingElement(r)
	b := randomRingElement(r)
	require.Equal(t, a, polySub(polyAdd(a, b), b))
	require.Equal(t, ringElement{}, polySub(a, a))
}

func TestPolyMulNaive(t *testing.T) {
	a := require.New(t)

	// X^255 * X = X^256 = -1
	var x255, x ringElement
	x255[255] = 1
	x[1] = 1
	var minusOne ringElement
	minusOne[0] = q - 1
	a.Equal(minusOne, polyMulNaive(x255, x))

	// Multiplying by the constant 1 is the identity.
	r := mrand.New(mrand.NewPCG(3, 3))
	f := randomRingElement(r)
	var one ringElement
	one[0] = 1
	a.Equal(f, polyMulNaive(f, one))
	a.Equal(polyMulNaive(f, x), polyMulNaive(x, f))
}

package mlkem

// fieldElement is an integer modulo q, always in reduced form [0, q).
type fieldElement uint16

// ringElement is a polynomial with n coefficients in Z_q.
type ringElement [n]fieldElement

// nttElement is the NTT representation of a polynomial.
type nttElement [n]fieldElement

// Barrett reduction constants: barrettMultiplier = floor(2^24 / q).
const (
	barrettMultiplier = 5039
	barrettShift      = 24
)

// fieldReduceOnce reduces a value < 2q to [0, q).
func fieldReduceOnce(a uint16) fieldElement {
	// If a >= q, subtract q
	x := a - q
	// If underflow (a < q), x has high bit set
	x += (x >> 15) * q
	return fieldElement(x)
}

// fieldAdd returns (a + b) mod q.
func fieldAdd(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint16(a) + uint16(b))
}

// fieldSub returns (a - b) mod q.
func fieldSub(a, b fieldElement) fieldElement {
	return fieldReduceOnce(uint16(a) - uint16(b) + q)
}

// fieldReduce performs Barrett reduction of a < q + 2q^2.
func fieldReduce(a uint32) fieldElement {
	quotient := uint32((uint64(a) * barrettMultiplier) >> barrettShift)
	return fieldReduceOnce(uint16(a - quotient*q))
}

// fieldMul returns (a * b) mod q.
func fieldMul(a, b fieldElement) fieldElement {
	return fieldReduce(uint32(a) * uint32(b))
}

// fieldMulSub returns a * (b - c) mod q.
func fieldMulSub(a, b, c fieldElement) fieldElement {
	return fieldReduce(uint32(a) * (uint32(b) - uint32(c) + q))
}

// fieldAddMul returns (a * b + c * d) mod q.
func fieldAddMul(a, b, c, d fieldElement) fieldElement {
	return fieldReduce(uint32(a)*uint32(b) + uint32(c)*uint32(d))
}

// polyAdd adds two polynomials coefficient-wise.
func polyAdd[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldAdd(a[i], b[i])
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise.
func polySub[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = fieldSub(a[i], b[i])
	}
	return c
}

// polyMulNaive multiplies two polynomials in Z_q[X]/(X^n+1) by schoolbook
// multiplication. Products always go through the NTT; this is the reference
// the NTT product is checked against.
func polyMulNaive(a, b ringElement) ringElement {
	var c ringElement
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t := fieldMul(a[i], b[j])
			if k := i + j; k < n {
				c[k] = fieldAdd(c[k], t)
			} else {
				// X^n = -1
				c[k-n] = fieldSub(c[k-n], t)
			}
		}
	}
	return c
}

package mlkem

const halfQ = (q - 1) / 2

// ctLess returns 0xffffffff if a < b and 0 otherwise, without branching.
func ctLess(a, b uint32) uint32 {
	return uint32(0 - int32(a^((a^b)|((a-b)^a)))>>31)
}

// compress maps x in [0, q) to round(2^d * x / q) mod 2^d.
// Since q is odd, 2^d * x / q is never exactly halfway between two
// integers, so the result does not depend on a tie-breaking rule.
// Implements Compress_d from FIPS 203 section 4.2.1.
func compress(x fieldElement, d uint8) uint16 {
	product := uint32(x) << d
	quotient := uint32((uint64(product) * barrettMultiplier) >> barrettShift)
	remainder := product - quotient*q

	// quotient may be up to two below floor(product / q); the remainder
	// tells us both the correction and the rounding direction.
	quotient += 1 & ctLess(halfQ, remainder)
	quotient += 1 & ctLess(q+halfQ, remainder)
	return uint16(quotient) & (1<<d - 1)
}

// decompress maps y in [0, 2^d) to round(q * y / 2^d), rounding halves up.
// Implements Decompress_d from FIPS 203 section 4.2.1.
func decompress(y uint16, d uint8) fieldElement {
	product := uint32(y) * q
	// The bit below the binary point decides the rounding.
	return fieldElement(product>>d + (product>>(d-1))&1)
}

// ringCompressAndEncode compresses each coefficient of f to d bits and
// appends the packed result to b.
func ringCompressAndEncode(b []byte, f ringElement, d uint8) []byte {
	var c ringElement
	for i := range f {
		c[i] = fieldElement(compress(f[i], d))
	}
	b = polyByteEncode(b, c, d)
	clear(c[:])
	return b
}

// ringDecodeAndDecompress unpacks n d-bit values from b and decompresses
// each of them. b must be exactly n*d/8 bytes.
func ringDecodeAndDecompress(b []byte, d uint8) ringElement {
	f := polyByteDecode[ringElement](b, d)
	for i := range f {
		f[i] = decompress(uint16(f[i]), d)
	}
	return f
}

package mlkem

// encodingSize returns the number of bytes of a polynomial packed with
// d bits per coefficient.
func encodingSize(d uint8) int {
	return n * int(d) / 8
}

// encodingSize12 is the size of a polynomial with full 12-bit coefficients.
const encodingSize12 = n * 12 / 8

// polyByteEncode packs the coefficients of f, each assumed < 2^d, into
// n*d/8 bytes least-significant bit first, appending them to b.
// Implements FIPS 203 Algorithm 5 (ByteEncode_d).
func polyByteEncode[T ~[n]fieldElement](b []byte, f T, d uint8) []byte {
	var acc uint32
	var bits uint8
	for i := range f {
		acc |= uint32(f[i]) << bits
		bits += d
		for bits >= 8 {
			b = append(b, byte(acc))
			acc >>= 8
			bits -= 8
		}
	}
	return b
}

// polyByteDecode unpacks n d-bit values from b, which must be exactly
// n*d/8 bytes. Decoding never fails: for d = 12 each value is reduced
// modulo q, as FIPS 203 specifies.
// Implements FIPS 203 Algorithm 6 (ByteDecode_d).
func polyByteDecode[T ~[n]fieldElement](b []byte, d uint8) T {
	var f T
	var acc uint32
	var bits uint8
	mask := uint32(1)<<d - 1
	for i := range f {
		for bits < d {
			acc |= uint32(b[0]) << bits
			b = b[1:]
			bits += 8
		}
		v := uint16(acc & mask)
		acc >>= d
		bits -= d
		if d == 12 {
			// v < 2^12 < 2q
			f[i] = fieldReduceOnce(v)
		} else {
			f[i] = fieldElement(v)
		}
	}
	return f
}

// vectorEncode12 appends the 12-bit encoding of every polynomial of v to b.
func vectorEncode12[T ~[n]fieldElement](b []byte, v []T) []byte {
	for i := range v {
		b = polyByteEncode(b, v[i], 12)
	}
	return b
}

// vectorDecode12 decodes len(v) polynomials from b, which must be exactly
// len(v)*encodingSize12 bytes.
func vectorDecode12[T ~[n]fieldElement](v []T, b []byte) {
	for i := range v {
		v[i] = polyByteDecode[T](b[i*encodingSize12:(i+1)*encodingSize12], 12)
	}
}

// checkModulus reports whether b is the canonical 12-bit encoding of its
// own decoding, that is whether every packed value is below q.
// Implements the FIPS 203 section 7.2 modulus check.
func checkModulus(b []byte) bool {
	for len(b) >= 3 {
		d1 := uint16(b[0]) | uint16(b[1]&0x0f)<<8
		d2 := uint16(b[1]>>4) | uint16(b[2])<<4
		if d1 >= q || d2 >= q {
			return false
		}
		b = b[3:]
	}
	return len(b) == 0
}

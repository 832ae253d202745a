package mlkem

import (
	"crypto/sha3"
)

// sampleNTT generates a uniformly random polynomial in NTT domain
// using rejection sampling from SHAKE128(rho || j || i) output.
// Implements FIPS 203 Algorithm 7 (SampleNTT).
func sampleNTT(rho []byte, j, i byte) nttElement {
	h := sha3.NewSHAKE128()
	h.Write(rho)
	h.Write([]byte{j, i})

	var buf [168]byte // SHAKE128 rate
	var a nttElement
	k := 0

	for {
		h.Read(buf[:])
		for off := 0; off < len(buf) && k < n; off += 3 {
			// Two 12-bit candidates from 3 bytes, little-endian
			d1 := uint16(buf[off]) | uint16(buf[off+1]&0x0f)<<8
			d2 := uint16(buf[off+1]>>4) | uint16(buf[off+2])<<4
			if d1 < q {
				a[k] = fieldElement(d1)
				k++
			}
			if k < n && d2 < q {
				a[k] = fieldElement(d2)
				k++
			}
		}
		if k >= n {
			return a
		}
	}
}

// samplePolyCBD samples a polynomial from the centered binomial
// distribution D_eta. b must be exactly 64*eta bytes; every bit is consumed.
// Implements FIPS 203 Algorithm 8 (SamplePolyCBD).
func samplePolyCBD(b []byte, eta int) ringElement {
	var f ringElement
	pos := 0
	for i := range f {
		var x, y uint16
		for j := 0; j < eta; j++ {
			x += uint16(b[pos>>3]>>(pos&7)) & 1
			pos++
		}
		for j := 0; j < eta; j++ {
			y += uint16(b[pos>>3]>>(pos&7)) & 1
			pos++
		}
		f[i] = fieldSub(fieldElement(x), fieldElement(y))
	}
	return f
}

// prf computes PRF_eta(s, b) = SHAKE256(s || b) truncated to 64*eta bytes,
// writing into out.
func prf(out []byte, s []byte, b byte) {
	h := sha3.NewSHAKE256()
	h.Write(s)
	h.Write([]byte{b})
	h.Read(out)
}

// sampleCBDVector fills v with CBD_eta samples keyed by sigma, using nonces
// starting at *nonce and advancing it.
func sampleCBDVector(v []ringElement, sigma []byte, eta int, nonce *byte) {
	var buf [64 * 3]byte
	b := buf[:64*eta]
	for i := range v {
		prf(b, sigma, *nonce)
		*nonce++
		v[i] = samplePolyCBD(b, eta)
	}
	clear(buf[:])
}

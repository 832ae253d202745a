package mlkem

import (
	"crypto/sha3"
)

// pkeEncryptionKey is a K-PKE encryption key: the vector t̂ in NTT form and
// the seed rho of the matrix Â. Â itself is never stored; it is regenerated
// from rho by every encryption.
type pkeEncryptionKey struct {
	p   *ParameterSet
	t   []nttElement
	rho [32]byte
}

// bytes appends ByteEncode_12(t̂) || rho to b.
func (ek *pkeEncryptionKey) bytes(b []byte) []byte {
	b = vectorEncode12(b, ek.t)
	return append(b, ek.rho[:]...)
}

// parsePKEEncryptionKey decodes an encryption key. b must have the size of
// an encapsulation key for p; decoding itself cannot fail.
func parsePKEEncryptionKey(p *ParameterSet, b []byte) pkeEncryptionKey {
	ek := pkeEncryptionKey{p: p, t: make([]nttElement, p.k)}
	vectorDecode12(ek.t, b[:p.k*encodingSize12])
	copy(ek.rho[:], b[p.k*encodingSize12:])
	return ek
}

// pkeKeyGen derives a K-PKE key pair from the 32-byte seed d. It returns the
// encryption key and the secret vector ŝ in NTT form.
// Implements FIPS 203 Algorithm 13 (K-PKE.KeyGen).
func pkeKeyGen(p *ParameterSet, d []byte) (pkeEncryptionKey, []nttElement) {
	// (rho, sigma) = G(d || k)
	var in [33]byte
	copy(in[:32], d)
	in[32] = byte(p.k)
	g := sha3.Sum512(in[:])
	clear(in[:])

	ek := pkeEncryptionKey{p: p, t: make([]nttElement, p.k)}
	copy(ek.rho[:], g[:32])
	sigma := g[32:]

	var nonce byte
	s := make([]ringElement, p.k)
	e := make([]ringElement, p.k)
	sampleCBDVector(s, sigma, p.eta1, &nonce)
	sampleCBDVector(e, sigma, p.eta1, &nonce)
	clear(g[:])

	sHat := make([]nttElement, p.k)
	for i := range s {
		sHat[i] = ntt(s[i])
	}

	// t̂ = Â ∘ ŝ + ê, with Â[i][j] = SampleNTT(rho || j || i)
	row := make([]nttElement, p.k)
	for i := 0; i < p.k; i++ {
		for j := 0; j < p.k; j++ {
			row[j] = sampleNTT(ek.rho[:], byte(j), byte(i))
		}
		ek.t[i] = polyAdd(nttInnerProduct(row, sHat), ntt(e[i]))
	}

	clear(s)
	clear(e)
	return ek, sHat
}

// encrypt encrypts the 32-byte message m with the 32-byte randomness r and
// appends the ciphertext to c.
// Implements FIPS 203 Algorithm 14 (K-PKE.Encrypt).
func (ek *pkeEncryptionKey) encrypt(c []byte, m, r []byte) []byte {
	p := ek.p

	var nonce byte
	y := make([]ringElement, p.k)
	e1 := make([]ringElement, p.k)
	e2 := make([]ringElement, 1)
	sampleCBDVector(y, r, p.eta1, &nonce)
	sampleCBDVector(e1, r, p.eta2, &nonce)
	sampleCBDVector(e2, r, p.eta2, &nonce)

	yHat := make([]nttElement, p.k)
	for i := range y {
		yHat[i] = ntt(y[i])
	}

	// u = NTT^-1(Âᵀ ∘ ŷ) + e1, where Âᵀ[i][j] = Â[j][i] = SampleNTT(rho || i || j)
	col := make([]nttElement, p.k)
	for i := 0; i < p.k; i++ {
		for j := 0; j < p.k; j++ {
			col[j] = sampleNTT(ek.rho[:], byte(i), byte(j))
		}
		u := polyAdd(invNTT(nttInnerProduct(col, yHat)), e1[i])
		c = ringCompressAndEncode(c, u, p.du)
	}

	// v = NTT^-1(t̂ᵀ ∘ ŷ) + e2 + Decompress_1(m)
	mu := ringDecodeAndDecompress(m, 1)
	v := polyAdd(polyAdd(invNTT(nttInnerProduct(ek.t, yHat)), e2[0]), mu)
	c = ringCompressAndEncode(c, v, p.dv)

	clear(y)
	clear(yHat)
	clear(e1)
	clear(e2)
	clear(mu[:])
	clear(v[:])
	return c
}

// pkeDecrypt recovers the 32-byte message from ciphertext c with the secret
// vector s. It never fails: a ciphertext that was not produced for this key
// simply decrypts to some other message.
// Implements FIPS 203 Algorithm 15 (K-PKE.Decrypt).
func pkeDecrypt(p *ParameterSet, s []nttElement, c []byte) [32]byte {
	uSize := encodingSize(p.du)
	u := make([]nttElement, p.k)
	for i := range u {
		u[i] = ntt(ringDecodeAndDecompress(c[i*uSize:(i+1)*uSize], p.du))
	}
	v := ringDecodeAndDecompress(c[p.k*uSize:], p.dv)

	// w = v - NTT^-1(ŝᵀ ∘ NTT(u))
	w := polySub(v, invNTT(nttInnerProduct(s, u)))

	var m [32]byte
	ringCompressAndEncode(m[:0], w, 1)
	clear(w[:])
	return m
}

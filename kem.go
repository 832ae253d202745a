package mlkem

import (
	"bytes"
	"crypto/sha3"
	"crypto/subtle"
	"fmt"
	"io"
	"runtime"
)

// EncapsulationKey is the public key used to produce ciphertexts.
// It is immutable and safe for concurrent use.
type EncapsulationKey struct {
	pke pkeEncryptionKey
	h   [32]byte // H(ek)
}

// DecapsulationKey is the secret key used to decapsulate shared keys from
// ciphertexts. It carries its own encapsulation key and H(ek), so
// decapsulation needs nothing else.
type DecapsulationKey struct {
	ek  EncapsulationKey
	sec *decapsulationSecrets
}

// decapsulationSecrets holds every secret of a DecapsulationKey in a single
// allocation, so it can be zeroized independently of the key's lifetime.
type decapsulationSecrets struct {
	s       []nttElement // K-PKE secret ŝ
	d       [32]byte     // key generation seed, if known
	z       [32]byte     // implicit rejection value
	hasSeed bool

	destroyed bool
}

func (s *decapsulationSecrets) zeroize() {
	clear(s.s)
	clear(s.d[:])
	clear(s.z[:])
	s.hasSeed = false
	s.destroyed = true
}

// checkLive panics if the key's secrets have been zeroized.
func (dk *DecapsulationKey) checkLive() {
	if dk.sec.destroyed {
		panic("mlkem: use of destroyed key")
	}
}

// newDecapsulationKey assembles a key and arranges for its secrets to be
// zeroized once the key becomes unreachable.
func newDecapsulationKey(pke pkeEncryptionKey, sec *decapsulationSecrets) *DecapsulationKey {
	dk := &DecapsulationKey{
		ek:  EncapsulationKey{pke: pke},
		sec: sec,
	}
	dk.ek.h = sha3.Sum256(pke.bytes(make([]byte, 0, pke.p.EncapsulationKeySize())))
	runtime.AddCleanup(dk, (*decapsulationSecrets).zeroize, sec)
	return dk
}

// GenerateKey generates a new decapsulation key, reading a 64-byte seed
// from rand. The decapsulation key must be kept secret.
func (p *ParameterSet) GenerateKey(rand io.Reader) (*DecapsulationKey, error) {
	if !p.valid() {
		return nil, ErrUnknownParameterSet
	}
	var seed [SeedSize]byte
	defer clear(seed[:])
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return p.NewDecapsulationKey(seed[:])
}

// NewDecapsulationKey deterministically derives a decapsulation key from a
// 64-byte seed in the "d || z" form. The seed must be uniformly random and
// must never be reused.
func (p *ParameterSet) NewDecapsulationKey(seed []byte) (*DecapsulationKey, error) {
	if !p.valid() {
		return nil, ErrUnknownParameterSet
	}
	if len(seed) != SeedSize {
		return nil, ErrSeedLength
	}
	return p.keyGen(seed[:32], seed[32:]), nil
}

// keyGen implements FIPS 203 Algorithm 16 (ML-KEM.KeyGen_internal).
func (p *ParameterSet) keyGen(d, z []byte) *DecapsulationKey {
	pke, s := pkeKeyGen(p, d)
	sec := &decapsulationSecrets{s: s, hasSeed: true}
	copy(sec.d[:], d)
	copy(sec.z[:], z)
	return newDecapsulationKey(pke, sec)
}

// ParseDecapsulationKey parses an expanded decapsulation key in the FIPS 203
// "dk_PKE || ek || H(ek) || z" form, checking its length and the embedded
// hash (FIPS 203 section 7.3).
func (p *ParameterSet) ParseDecapsulationKey(b []byte) (*DecapsulationKey, error) {
	if !p.valid() {
		return nil, ErrUnknownParameterSet
	}
	if len(b) != p.DecapsulationKeySize() {
		return nil, ErrDecapsulationKeyLength
	}

	sSize := p.k * encodingSize12
	ekBytes := b[sSize : sSize+p.EncapsulationKeySize()]
	h := b[sSize+len(ekBytes) : sSize+len(ekBytes)+32]
	z := b[sSize+len(ekBytes)+32:]

	hCheck := sha3.Sum256(ekBytes)
	if subtle.ConstantTimeCompare(h, hCheck[:]) != 1 {
		return nil, ErrDecapsulationKeyHash
	}
	if !checkModulus(ekBytes[:p.k*encodingSize12]) {
		return nil, ErrEncapsulationKeyModulus
	}

	sec := &decapsulationSecrets{s: make([]nttElement, p.k)}
	vectorDecode12(sec.s, b[:sSize])
	copy(sec.z[:], z)
	return newDecapsulationKey(parsePKEEncryptionKey(p, ekBytes), sec), nil
}

// NewEncapsulationKey parses an encapsulation key, checking its length and
// that every coefficient is reduced (FIPS 203 section 7.2).
func (p *ParameterSet) NewEncapsulationKey(b []byte) (*EncapsulationKey, error) {
	if !p.valid() {
		return nil, ErrUnknownParameterSet
	}
	if len(b) != p.EncapsulationKeySize() {
		return nil, ErrEncapsulationKeyLength
	}
	if !checkModulus(b[:p.k*encodingSize12]) {
		return nil, ErrEncapsulationKeyModulus
	}
	return &EncapsulationKey{
		pke: parsePKEEncryptionKey(p, b),
		h:   sha3.Sum256(b),
	}, nil
}

// ParameterSet returns the parameter set of the key.
func (ek *EncapsulationKey) ParameterSet() *ParameterSet {
	return ek.pke.p
}

// Bytes returns the encoded encapsulation key.
func (ek *EncapsulationKey) Bytes() []byte {
	return ek.pke.bytes(make([]byte, 0, ek.pke.p.EncapsulationKeySize()))
}

// Equal reports whether ek and other are the same encapsulation key.
func (ek *EncapsulationKey) Equal(other *EncapsulationKey) bool {
	if other == nil || ek.pke.p != other.pke.p {
		return false
	}
	return ek.h == other.h && bytes.Equal(ek.Bytes(), other.Bytes())
}

// Encapsulate generates a shared key and an associated ciphertext, reading
// 32 bytes of randomness from rand. The shared key must be kept secret.
func (ek *EncapsulationKey) Encapsulate(rand io.Reader) (ciphertext, sharedKey []byte, err error) {
	var m [MessageSize]byte
	defer clear(m[:])
	if _, err := io.ReadFull(rand, m[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	ciphertext, sharedKey = ek.encapsulate(&m)
	return ciphertext, sharedKey, nil
}

// encapsulate implements FIPS 203 Algorithm 17 (ML-KEM.Encaps_internal).
func (ek *EncapsulationKey) encapsulate(m *[MessageSize]byte) (ciphertext, sharedKey []byte) {
	// (K, r) = G(m || H(ek))
	var in [64]byte
	copy(in[:32], m[:])
	copy(in[32:], ek.h[:])
	g := sha3.Sum512(in[:])

	ciphertext = ek.pke.encrypt(make([]byte, 0, ek.pke.p.CiphertextSize()), m[:], g[32:])
	sharedKey = make([]byte, SharedKeySize)
	copy(sharedKey, g[:32])

	clear(in[:])
	clear(g[:])
	return ciphertext, sharedKey
}

// ParameterSet returns the parameter set of the key.
func (dk *DecapsulationKey) ParameterSet() *ParameterSet {
	return dk.ek.pke.p
}

// EncapsulationKey returns the public encapsulation key necessary to produce
// ciphertexts.
func (dk *DecapsulationKey) EncapsulationKey() *EncapsulationKey {
	ek := dk.ek
	return &ek
}

// Bytes returns the expanded decapsulation key in the FIPS 203
// "dk_PKE || ek || H(ek) || z" form.
func (dk *DecapsulationKey) Bytes() []byte {
	dk.checkLive()
	b := make([]byte, 0, dk.ek.pke.p.DecapsulationKeySize())
	b = vectorEncode12(b, dk.sec.s)
	b = dk.ek.pke.bytes(b)
	b = append(b, dk.ek.h[:]...)
	return append(b, dk.sec.z[:]...)
}

// Seed returns the 64-byte "d || z" seed the key was derived from, or nil if
// the key was parsed from its expanded form.
func (dk *DecapsulationKey) Seed() []byte {
	dk.checkLive()
	if !dk.sec.hasSeed {
		return nil
	}
	seed := make([]byte, 0, SeedSize)
	seed = append(seed, dk.sec.d[:]...)
	return append(seed, dk.sec.z[:]...)
}

// Destroy zeroizes the secret material of the key. Any later call to
// Decapsulate, Bytes or Seed panics.
func (dk *DecapsulationKey) Destroy() {
	dk.sec.zeroize()
}

// Decapsulate recovers the shared key from a ciphertext. The only error is a
// ciphertext of the wrong length: any other ciphertext that was not produced
// for this key yields a pseudorandom shared key (implicit rejection).
// The shared key must be kept secret.
func (dk *DecapsulationKey) Decapsulate(ciphertext []byte) (sharedKey []byte, err error) {
	dk.checkLive()
	if len(ciphertext) != dk.ek.pke.p.CiphertextSize() {
		return nil, ErrCiphertextLength
	}
	return dk.decapsulate(ciphertext), nil
}

// decapsulate implements FIPS 203 Algorithm 18 (ML-KEM.Decaps_internal).
// The re-encryption comparison and the selection of the returned key are
// constant time.
func (dk *DecapsulationKey) decapsulate(c []byte) []byte {
	p := dk.ek.pke.p

	m := pkeDecrypt(p, dk.sec.s, c)

	// (K', r') = G(m' || h)
	var in [64]byte
	copy(in[:32], m[:])
	copy(in[32:], dk.ek.h[:])
	g := sha3.Sum512(in[:])
	kPrime := g[:32]

	// K̄ = J(z || c)
	j := sha3.NewSHAKE256()
	j.Write(dk.sec.z[:])
	j.Write(c)
	var kBar [32]byte
	j.Read(kBar[:])

	c1 := dk.ek.pke.encrypt(make([]byte, 0, p.CiphertextSize()), m[:], g[32:])
	equal := subtle.ConstantTimeCompare(c, c1)
	subtle.ConstantTimeCopy(1-equal, kPrime, kBar[:])

	sharedKey := make([]byte, SharedKeySize)
	copy(sharedKey, kPrime)

	clear(m[:])
	clear(in[:])
	clear(g[:])
	clear(kBar[:])
	return sharedKey
}

// Package mlkem implements ML-KEM (Module-Lattice-Based Key-Encapsulation
// Mechanism) as specified in FIPS 203.
//
// ML-KEM is a post-quantum key-encapsulation mechanism standardized by NIST.
// This package supports three security levels:
//   - ML-KEM-512: NIST security category 1
//   - ML-KEM-768: NIST security category 3
//   - ML-KEM-1024: NIST security category 5
//
// Basic usage:
//
//	dk, err := mlkem.GenerateKey768(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ek := dk.EncapsulationKey()
//	ciphertext, sharedKey, err := ek.Encapsulate(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sharedKey2, err := dk.Decapsulate(ciphertext)
//
// Decapsulation never reports an invalid ciphertext: a ciphertext that was
// not produced for the key yields a pseudorandom shared key instead
// (implicit rejection). Only a ciphertext of the wrong length is an error.
package mlkem

import "errors"

// Global ML-KEM constants from FIPS 203.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 13 * 2^8 + 1 = 3329
	q = 3329

	// SharedKeySize is the size of a shared key produced by ML-KEM.
	SharedKeySize = 32

	// SeedSize is the size of a seed used to generate a decapsulation key,
	// in the "d || z" form.
	SeedSize = 64

	// MessageSize is the size of the randomness consumed by encapsulation.
	MessageSize = 32
)

// ML-KEM-512 sizes.
const (
	EncapsulationKeySize512 = 2*encodingSize12 + 32
	DecapsulationKeySize512 = 2*2*encodingSize12 + 96
	CiphertextSize512       = 32 * (10*2 + 4)
)

// ML-KEM-768 sizes.
const (
	EncapsulationKeySize768 = 3*encodingSize12 + 32
	DecapsulationKeySize768 = 2*3*encodingSize12 + 96
	CiphertextSize768       = 32 * (10*3 + 4)
)

// ML-KEM-1024 sizes.
const (
	EncapsulationKeySize1024 = 4*encodingSize12 + 32
	DecapsulationKeySize1024 = 2*4*encodingSize12 + 96
	CiphertextSize1024       = 32 * (11*4 + 5)
)

// Errors returned at the API boundary. Every one of them is reported before
// any cryptographic computation on the input starts.
var (
	// ErrSeedLength is returned when a key generation seed is not SeedSize bytes.
	ErrSeedLength = errors.New("mlkem: invalid seed length")

	// ErrMessageLength is returned when encapsulation randomness is not
	// MessageSize bytes.
	ErrMessageLength = errors.New("mlkem: invalid message length")

	// ErrEncapsulationKeyLength is returned when an encapsulation key does
	// not have the size of its parameter set.
	ErrEncapsulationKeyLength = errors.New("mlkem: invalid encapsulation key length")

	// ErrEncapsulationKeyModulus is returned when an encapsulation key
	// contains a coefficient that is not reduced modulo q.
	ErrEncapsulationKeyModulus = errors.New("mlkem: invalid encapsulation key encoding")

	// ErrDecapsulationKeyLength is returned when a decapsulation key does
	// not have the size of its parameter set.
	ErrDecapsulationKeyLength = errors.New("mlkem: invalid decapsulation key length")

	// ErrDecapsulationKeyHash is returned when the hash embedded in an
	// expanded decapsulation key does not match its encapsulation key.
	ErrDecapsulationKeyHash = errors.New("mlkem: invalid decapsulation key hash")

	// ErrCiphertextLength is returned when a ciphertext does not have the
	// size of the key's parameter set.
	ErrCiphertextLength = errors.New("mlkem: invalid ciphertext length")

	// ErrRandomSource wraps failures of the randomness source.
	ErrRandomSource = errors.New("mlkem: randomness source failure")

	// ErrUnknownParameterSet is returned by ParameterSetByName, and by key
	// constructors called on a ParameterSet that is not one of MLKEM512,
	// MLKEM768 or MLKEM1024.
	ErrUnknownParameterSet = errors.New("mlkem: unknown parameter set")
)

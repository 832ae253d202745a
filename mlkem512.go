package mlkem

import "io"

// GenerateKey512 generates a new ML-KEM-512 decapsulation key, reading its
// seed from rand.
func GenerateKey512(rand io.Reader) (*DecapsulationKey, error) {
	return MLKEM512.GenerateKey(rand)
}

// NewDecapsulationKey512 derives an ML-KEM-512 decapsulation key from a 64-byte
// "d || z" seed.
func NewDecapsulationKey512(seed []byte) (*DecapsulationKey, error) {
	return MLKEM512.NewDecapsulationKey(seed)
}

// ParseDecapsulationKey512 parses an expanded ML-KEM-512 decapsulation key of
// DecapsulationKeySize512 bytes.
func ParseDecapsulationKey512(b []byte) (*DecapsulationKey, error) {
	return MLKEM512.ParseDecapsulationKey(b)
}

// NewEncapsulationKey512 parses an ML-KEM-512 encapsulation key of
// EncapsulationKeySize512 bytes.
func NewEncapsulationKey512(b []byte) (*EncapsulationKey, error) {
	return MLKEM512.NewEncapsulationKey(b)
}

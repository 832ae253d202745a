package mlkem

import "io"

// GenerateKey768 generates a new ML-KEM-768 decapsulation key, reading its
// seed from rand.
func GenerateKey768(rand io.Reader) (*DecapsulationKey, error) {
	return MLKEM768.GenerateKey(rand)
}

// NewDecapsulationKey768 derives an ML-KEM-768 decapsulation key from a 64-byte
// "d || z" seed.
func NewDecapsulationKey768(seed []byte) (*DecapsulationKey, error) {
	return MLKEM768.NewDecapsulationKey(seed)
}

// ParseDecapsulationKey768 parses an expanded ML-KEM-768 decapsulation key of
// DecapsulationKeySize768 bytes.
func ParseDecapsulationKey768(b []byte) (*DecapsulationKey, error) {
	return MLKEM768.ParseDecapsulationKey(b)
}

// NewEncapsulationKey768 parses an ML-KEM-768 encapsulation key of
// EncapsulationKeySize768 bytes.
func NewEncapsulationKey768(b []byte) (*EncapsulationKey, error) {
	return MLKEM768.NewEncapsulationKey(b)
}

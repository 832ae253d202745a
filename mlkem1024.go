package mlkem

import "io"

// GenerateKey1024 generates a new ML-KEM-1024 decapsulation key, reading its
// seed from rand.
func GenerateKey1024(rand io.Reader) (*DecapsulationKey, error) {
	return MLKEM1024.GenerateKey(rand)
}

// NewDecapsulationKey1024 derives an ML-KEM-1024 decapsulation key from a 64-byte
// "d || z" seed.
func NewDecapsulationKey1024(seed []byte) (*DecapsulationKey, error) {
	return MLKEM1024.NewDecapsulationKey(seed)
}

// ParseDecapsulationKey1024 parses an expanded ML-KEM-1024 decapsulation key of
// DecapsulationKeySize1024 bytes.
func ParseDecapsulationKey1024(b []byte) (*DecapsulationKey, error) {
	return MLKEM1024.ParseDecapsulationKey(b)
}

// NewEncapsulationKey1024 parses an ML-KEM-1024 encapsulation key of
// EncapsulationKeySize1024 bytes.
func NewEncapsulationKey1024(b []byte) (*EncapsulationKey, error) {
	return MLKEM1024.NewEncapsulationKey(b)
}

package mlkem

import (
	"fmt"
	"strings"
)

// A ParameterSet describes one of the three ML-KEM security levels. All
// algorithms are shared; only the rank and the noise and compression widths
// differ.
type ParameterSet struct {
	name string
	k    int   // rank of the module
	eta1 int   // noise width of s, e and y
	eta2 int   // noise width of e1 and e2
	du   uint8 // compression width of u
	dv   uint8 // compression width of v
}

// Standard parameter sets from FIPS 203 section 8.
var (
	MLKEM512  = &ParameterSet{name: "ML-KEM-512", k: 2, eta1: 3, eta2: 2, du: 10, dv: 4}
	MLKEM768  = &ParameterSet{name: "ML-KEM-768", k: 3, eta1: 2, eta2: 2, du: 10, dv: 4}
	MLKEM1024 = &ParameterSet{name: "ML-KEM-1024", k: 4, eta1: 2, eta2: 2, du: 11, dv: 5}
)

// ParameterSets returns the supported parameter sets, weakest first.
func ParameterSets() []*ParameterSet {
	return []*ParameterSet{MLKEM512, MLKEM768, MLKEM1024}
}

// ParameterSetByName returns the parameter set with the given name.
// Matching is case-insensitive and accepts the forms "ML-KEM-768",
// "MLKEM768" and "768".
func ParameterSetByName(name string) (*ParameterSet, error) {
	norm := strings.ToUpper(strings.ReplaceAll(name, "-", ""))
	norm = strings.TrimPrefix(norm, "MLKEM")
	for _, p := range ParameterSets() {
		if strings.TrimPrefix(p.name, "ML-KEM-") == norm {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParameterSet, name)
}

// valid reports whether p is one of the standard parameter sets. The zero
// ParameterSet has rank 0 and must not produce keys.
func (p *ParameterSet) valid() bool {
	return p != nil && p.k != 0
}

// Name returns the FIPS 203 name of the parameter set, such as "ML-KEM-768".
func (p *ParameterSet) Name() string { return p.name }

// String implements fmt.Stringer.
func (p *ParameterSet) String() string { return p.name }

// EncapsulationKeySize returns the size of an encoded encapsulation key.
func (p *ParameterSet) EncapsulationKeySize() int {
	return p.k*encodingSize12 + 32
}

// DecapsulationKeySize returns the size of an expanded decapsulation key.
func (p *ParameterSet) DecapsulationKeySize() int {
	return p.k*encodingSize12 + p.EncapsulationKeySize() + 32 + 32
}

// CiphertextSize returns the size of a ciphertext.
func (p *ParameterSet) CiphertextSize() int {
	return p.k*encodingSize(p.du) + encodingSize(p.dv)
}

// SharedKeySize returns SharedKeySize.
func (p *ParameterSet) SharedKeySize() int { return SharedKeySize }

// SeedSize returns SeedSize.
func (p *ParameterSet) SeedSize() int { return SeedSize }

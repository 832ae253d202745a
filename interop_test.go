package mlkem

import (
	"bytes"
	"crypto/mlkem"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// stdlibKEM adapts the standard library's ML-KEM keys so the same checks run
// against both of its parameter sets.
type stdlibKEM struct {
	p              *ParameterSet
	newKey         func(seed []byte) (stdlibDecapsulator, error)
	newEncapsulate func(ek []byte) (func() (sharedKey, ciphertext []byte), error)
}

type stdlibDecapsulator interface {
	Decapsulate(ciphertext []byte) ([]byte, error)
	encapsulationKeyBytes() []byte
}

type stdlib768 struct{ *mlkem.DecapsulationKey768 }

func (k stdlib768) encapsulationKeyBytes() []byte { return k.EncapsulationKey().Bytes() }

type stdlib1024 struct{ *mlkem.DecapsulationKey1024 }

func (k stdlib1024) encapsulationKeyBytes() []byte { return k.EncapsulationKey().Bytes() }

var stdlibKEMs = []stdlibKEM{
	{
		p: MLKEM768,
		newKey: func(seed []byte) (stdlibDecapsulator, error) {
			k, err := mlkem.NewDecapsulationKey768(seed)
			return stdlib768{k}, err
		},
		newEncapsulate: func(ek []byte) (func() ([]byte, []byte), error) {
			k, err := mlkem.NewEncapsulationKey768(ek)
			if err != nil {
				return nil, err
			}
			return k.Encapsulate, nil
		},
	},
	{
		p: MLKEM1024,
		newKey: func(seed []byte) (stdlibDecapsulator, error) {
			k, err := mlkem.NewDecapsulationKey1024(seed)
			return stdlib1024{k}, err
		},
		newEncapsulate: func(ek []byte) (func() ([]byte, []byte), error) {
			k, err := mlkem.NewEncapsulationKey1024(ek)
			if err != nil {
				return nil, err
			}
			return k.Encapsulate, nil
		},
	},
}

func TestStdlibInterop(t *testing.T) {
	for _, kem := range stdlibKEMs {
		t.Run(kem.p.Name(), func(t *testing.T) {
			a := require.New(t)

			for i := 0; i < 10; i++ {
				seed := make([]byte, SeedSize)
				rand.Read(seed)

				std, err := kem.newKey(seed)
				a.NoError(err)
				ours, err := kem.p.NewDecapsulationKey(seed)
				a.NoError(err)

				// Same seed, same encapsulation key.
				ekBytes := ours.EncapsulationKey().Bytes()
				a.Equal(std.encapsulationKeyBytes(), ekBytes)

				// Theirs to ours.
				encapsulate, err := kem.newEncapsulate(ekBytes)
				a.NoError(err)
				ss, ct := encapsulate()
				got, err := ours.Decapsulate(ct)
				a.NoError(err)
				a.Equal(ss, got)

				// Ours to theirs.
				ct, ss, err = ours.EncapsulationKey().Encapsulate(rand.Reader)
				a.NoError(err)
				got, err = std.Decapsulate(ct)
				a.NoError(err)
				a.Equal(ss, got)

				// Both reject a tampered ciphertext to the same J(z || c).
				bad := bytes.Clone(ct)
				bad[0] ^= 0x10
				want, err := std.Decapsulate(bad)
				a.NoError(err)
				got, err = ours.Decapsulate(bad)
				a.NoError(err)
				a.Equal(want, got)
			}
		})
	}
}

func TestStdlibInteropModulus(t *testing.T) {
	// Both implementations reject the same unreduced encapsulation key.
	dk, err := GenerateKey768(rand.Reader)
	require.NoError(t, err)
	ek := dk.EncapsulationKey().Bytes()
	ek[3] = 0xff
	ek[4] |= 0x0f

	_, err = mlkem.NewEncapsulationKey768(ek)
	require.Error(t, err)
	_, err = NewEncapsulationKey768(ek)
	require.ErrorIs(t, err, ErrEncapsulationKeyModulus)
}

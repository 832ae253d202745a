//go:build mlkem_deterministic

package mlkem

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncapsulateDeterministic(t *testing.T) {
	for _, p := range ParameterSets() {
		t.Run(p.Name(), func(t *testing.T) {
			a := require.New(t)

			dk, err := p.GenerateKey(rand.Reader)
			a.NoError(err)
			ek := dk.EncapsulationKey()

			m := make([]byte, MessageSize)
			rand.Read(m)

			c1, k1, err := ek.EncapsulateDeterministic(m)
			a.NoError(err)
			c2, k2, err := ek.EncapsulateDeterministic(m)
			a.NoError(err)
			a.Equal(c1, c2)
			a.Equal(k1, k2)
			a.Len(c1, p.CiphertextSize())

			k, err := dk.Decapsulate(c1)
			a.NoError(err)
			a.Equal(k1, k)

			m[0] ^= 1
			c3, k3, err := ek.EncapsulateDeterministic(m)
			a.NoError(err)
			a.NotEqual(c1, c3)
			a.NotEqual(k1, k3)

			_, _, err = ek.EncapsulateDeterministic(m[:31])
			a.ErrorIs(err, ErrMessageLength)
		})
	}
}

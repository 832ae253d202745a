//go:build mlkem_deterministic

package mlkem

// EncapsulateDeterministic encapsulates using the caller-supplied 32-byte
// message m instead of fresh randomness. It only exists in builds tagged
// mlkem_deterministic, for reproducing test vectors: reusing m for the same
// key reveals the shared key to anyone who saw the first ciphertext.
func (ek *EncapsulationKey) EncapsulateDeterministic(m []byte) (ciphertext, sharedKey []byte, err error) {
	if len(m) != MessageSize {
		return nil, nil, ErrMessageLength
	}
	ciphertext, sharedKey = ek.encapsulate((*[MessageSize]byte)(m))
	return ciphertext, sharedKey, nil
}

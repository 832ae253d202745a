package mlkem

import (
	"testing"
)

var compressionWidths = []uint8{1, 4, 5, 10, 11}

func TestCompressExact(t *testing.T) {
	for _, d := range compressionWidths {
		for x := uint32(0); x < q; x++ {
			// round(2^d * x / q) = floor((2^(d+1) * x + q) / 2q)
			want := uint16(((x<<(d+1))+q)/(2*q)) & (1<<d - 1)
			if got := compress(fieldElement(x), d); got != want {
				t.Fatalf("compress(%d, %d) = %d, want %d", x, d, got, want)
			}
		}
	}
}

func TestDecompressExact(t *testing.T) {
	for _, d := range compressionWidths {
		for y := uint32(0); y < 1<<d; y++ {
			// round(q * y / 2^d) with halves rounded up
			want := fieldElement((y*q*2 + 1<<d) >> (d + 1))
			got := decompress(uint16(y), d)
			if got != want {
				t.Fatalf("decompress(%d, %d) = %d, want %d", y, d, got, want)
			}
			if got >= q {
				t.Fatalf("decompress(%d, %d) = %d is not reduced", y, d, got)
			}
		}
	}
}

func TestCompressionBound(t *testing.T) {
	for _, d := range compressionWidths {
		// round(q / 2^(d+1))
		bound := (q + 1<<d) >> (d + 1)
		for x := fieldElement(0); x < q; x++ {
			y := compress(x, d)
			if y >= 1<<d {
				t.Fatalf("compress(%d, %d) = %d does not fit in %d bits", x, d, y, d)
			}
			diff := int(decompress(y, d)) - int(x)
			if diff < 0 {
				diff = -diff
			}
			if q-diff < diff {
				diff = q - diff
			}
			if diff > bound {
				t.Fatalf("d=%d x=%d: error %d exceeds %d", d, x, diff, bound)
			}
		}
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	// Decompression followed by compression is the identity for d < 12.
	for _, d := range compressionWidths {
		for y := uint16(0); y < 1<<d; y++ {
			if got := compress(decompress(y, d), d); got != y {
				t.Fatalf("compress(decompress(%d, %d)) = %d", y, d, got)
			}
		}
	}
}

func TestMessageEncoding(t *testing.T) {
	var m [32]byte
	for i := range m {
		m[i] = byte(i * 37)
	}
	mu := ringDecodeAndDecompress(m[:], 1)
	for i := range mu {
		bit := (m[i/8] >> (i % 8)) & 1
		want := fieldElement(bit) * (q + 1) / 2
		if mu[i] != want {
			t.Fatalf("coefficient %d = %d, want %d", i, mu[i], want)
		}
	}
	got := ringCompressAndEncode(nil, mu, 1)
	if string(got) != string(m[:]) {
		t.Fatalf("message round trip failed: %x", got)
	}
}

func TestRingCompressAndEncodeInPlace(t *testing.T) {
	// pkeDecrypt writes the message into a caller array through m[:0]; the
	// encoded bits must land there intact once the scratch copy is cleared.
	var m [32]byte
	for i := range m {
		m[i] = byte(0xa5 ^ i)
	}
	mu := ringDecodeAndDecompress(m[:], 1)

	var out [32]byte
	b := ringCompressAndEncode(out[:0], mu, 1)
	if &b[0] != &out[0] {
		t.Fatal("encoding did not reuse the destination array")
	}
	if out != m {
		t.Fatalf("got %x, want %x", out, m)
	}

	prefix := []byte{1, 2, 3}
	b = ringCompressAndEncode(prefix, mu, 1)
	if len(b) != 3+32 || b[0] != 1 || b[2] != 3 || string(b[3:]) != string(m[:]) {
		t.Fatalf("append to prefix: %x", b)
	}
}

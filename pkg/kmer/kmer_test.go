/*
Copyright 2019 The kaamer Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package kmer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKmer(rng *rand.Rand, k int) string {
	var sb strings.Builder
	for i := 0; i < k; i++ {
		sb.WriteByte(decodeTable[rng.Intn(4)])
	}
	return sb.String()
}

// naive string reverse complement used as a reference
func reverseComplement(s string) string {
	comp := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}

func TestEncodeExamples(t *testing.T) {
	tests := []struct {
		kmer string
		want uint64
	}{
		{"ACGT", 27},
		{"T", 3},
		{"A", 0},
		{"N", 0},
		{"GTT", 47},
		{"", 0},
		{"ANA", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Encode(tt.kmer), tt.kmer)
	}
}

func TestEncodeStrict(t *testing.T) {
	v, err := EncodeStrict("ACGT")
	require.NoError(t, err)
	assert.Equal(t, uint64(27), v)

	_, err = EncodeStrict("ACNT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalBase))

	_, err = EncodeStrict("acgt")
	assert.True(t, errors.Is(err, ErrIllegalBase))

	_, err = EncodeStrict(strings.Repeat("A", 33))
	assert.True(t, errors.Is(err, ErrKOverflow))

	v, err = EncodeStrict(strings.Repeat("T", 32))
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), v)
}

func TestMaskRight(t *testing.T) {
	assert.Equal(t, uint64(0), MaskRight(0))
	assert.Equal(t, uint64(3), MaskRight(2))
	assert.Equal(t, uint64(1)<<62-1, MaskRight(62))
	assert.Equal(t, ^uint64(0), MaskRight(64))
	assert.Equal(t, ^uint64(0), MaskRight(100))
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for k := 1; k <= MaxK; k++ {
		for i := 0; i < 50; i++ {
			s := randomKmer(rng, k)
			require.Equal(t, s, Decode(Encode(s), k))
		}
	}
}

func TestDecodeNonPositiveLength(t *testing.T) {
	assert.Equal(t, "", Decode(Encode("ACGT"), 0))
	assert.Equal(t, "", Decode(Encode("ACGT"), -3))
}

func TestDecodeCollapsesUnknownToA(t *testing.T) {
	assert.Equal(t, "AACA", Decode(Encode("NxCa"), 4))
}

func TestReverseComplementMatchesStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for k := 1; k <= MaxK; k++ {
		for i := 0; i < 50; i++ {
			s := randomKmer(rng, k)
			got := Decode(ReverseComplement(Encode(s), uint(2*k)), k)
			require.Equal(t, reverseComplement(s), got, s)
		}
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for w := uint(2); w <= WordBits; w += 2 {
		for i := 0; i < 100; i++ {
			x := rng.Uint64() & MaskRight(w)
			require.Equal(t, x, ReverseComplement(ReverseComplement(x, w), w), "w=%d x=%x", w, x)
		}
	}
}

func TestReverseComplementSingleBases(t *testing.T) {
	assert.Equal(t, Encode("T"), ReverseComplement(Encode("A"), 2))
	assert.Equal(t, Encode("G"), ReverseComplement(Encode("C"), 2))
	assert.Equal(t, Encode("ACGT"), ReverseComplement(Encode("ACGT"), 8))
	assert.Equal(t, Encode("GTT"), ReverseComplement(Encode("AAC"), 6))
}

func TestCanonicalProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for k := 1; k <= MaxK; k++ {
		w := uint(2 * k)
		for i := 0; i < 50; i++ {
			s := randomKmer(rng, k)
			c := Canonical(Encode(s), w)

			require.Equal(t, c, Canonical(c, w), "idempotent %s", s)
			require.Equal(t, c, Canonical(Encode(reverseComplement(s)), w), "strand %s", s)
			require.LessOrEqual(t, c, Encode(s))
			require.LessOrEqual(t, c, ReverseComplement(Encode(s), w))
		}
	}
}

func TestCanonicalString(t *testing.T) {
	assert.Equal(t, "AAC", CanonicalString("GTT"))
	assert.Equal(t, "AAC", CanonicalString("AAC"))
	assert.Equal(t, "ACGT", CanonicalString("ACGT"))
	assert.Equal(t, "A", CanonicalString("T"))
	assert.Equal(t, CanonicalKey("AAC"), CanonicalKey("GTT"))
}

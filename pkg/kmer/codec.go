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

// Package kmer packs nucleotide k-mers into 64 bit integers (2 bits per base,
// first base in the most significant position) and computes their canonical
// form.
package kmer

import (
	"github.com/pkg/errors"
)

const (
	// MaxK is the largest k-mer that fits in a uint64.
	MaxK = 32
	// WordBits is the width of an encoded k-mer word.
	WordBits = 64
)

var (
	// ErrIllegalBase is returned by EncodeStrict for anything outside ACGT.
	ErrIllegalBase = errors.New("kmer: illegal base")
	// ErrKOverflow is returned when a k-mer is longer than MaxK.
	ErrKOverflow = errors.New("kmer: k-mer size (1-32) overflow")
)

var decodeTable = [4]byte{'A', 'C', 'G', 'T'}

// Encode packs kmer at 2 bits per base (A=0 C=1 G=2 T=3).
// Anything other than T, G or C is encoded as A.
// Only the low 2*len(kmer) bits are set; callers keep track of k.
func Encode(kmer string) uint64 {

	encoded := uint64(0)

	for i := 0; i < len(kmer); i++ {
		encoded <<= 2
		switch kmer[i] {
		case 'T':
			encoded |= 3
		case 'G':
			encoded |= 2
		case 'C':
			encoded |= 1
		}
	}

	return encoded

}

// EncodeBase returns the 2 bit code of an uppercase nucleotide.
func EncodeBase(nucl byte) (uint64, error) {
	switch nucl {
	case 'A':
		return 0, nil
	case 'C':
		return 1, nil
	case 'G':
		return 2, nil
	case 'T':
		return 3, nil
	}
	return 0, errors.Wrapf(ErrIllegalBase, "%q", nucl)
}

// EncodeStrict is Encode with validation: every byte must be one of ACGT
// and the k-mer must fit in a word.
func EncodeStrict(kmer string) (uint64, error) {

	if len(kmer) > MaxK {
		return 0, errors.Wrapf(ErrKOverflow, "length %d", len(kmer))
	}

	encoded := uint64(0)
	for i := 0; i < len(kmer); i++ {
		code, err := EncodeBase(kmer[i])
		if err != nil {
			return 0, errors.Wrapf(err, "position %d", i)
		}
		encoded = encoded<<2 | code
	}

	return encoded, nil

}

// Decode unpacks the low 2*k bits of value into a k-mer string.
// A non positive k gives the empty string.
func Decode(value uint64, k int) string {

	if k <= 0 {
		return ""
	}

	kmer := make([]byte, k)

	for i := k - 1; i >= 0; i-- {
		kmer[i] = decodeTable[value&MaskRight(2)]
		value >>= 2
	}

	return string(kmer)

}

// MaskRight returns a mask with the low n bits set (all bits for n >= 64).
func MaskRight(n uint) uint64 {
	if n >= WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

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

// revTable maps a byte (4 bases) to its reverse complement (4 bases).
// Read only once init has run.
var revTable [256]uint8

func init() {
	for b := 0; b < 256; b++ {
		rev := uint8(0)
		for i := uint(0); i < 4; i++ {
			base := uint8(b>>(2*i)) & 3
			rev |= (^base & 3) << (2 * (3 - i))
		}
		revTable[b] = rev
	}
}

// ReverseComplement returns the reverse complement of an encoded k-mer
// occupying the low bitWidth bits of value. bitWidth is 2*k.
func ReverseComplement(value uint64, bitWidth uint) uint64 {
	rc := uint64(revTable[value&0xff])<<56 |
		uint64(revTable[(value>>8)&0xff])<<48 |
		uint64(revTable[(value>>16)&0xff])<<40 |
		uint64(revTable[(value>>24)&0xff])<<32 |
		uint64(revTable[(value>>32)&0xff])<<24 |
		uint64(revTable[(value>>40)&0xff])<<16 |
		uint64(revTable[(value>>48)&0xff])<<8 |
		uint64(revTable[(value>>56)&0xff])
	return rc >> (WordBits - bitWidth)
}

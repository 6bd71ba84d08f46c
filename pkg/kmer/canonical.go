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

// Canonical returns the smaller of key and its reverse complement,
// so that both strands of a k-mer give the same value.
func Canonical(key uint64, bitWidth uint) uint64 {
	rc := ReverseComplement(key, bitWidth)
	if rc < key {
		return rc
	}
	return key
}

// CanonicalKey encodes kmer and returns its canonical value.
func CanonicalKey(kmer string) uint64 {
	return Canonical(Encode(kmer), uint(2*len(kmer)))
}

// CanonicalString returns the canonical strand of kmer as a string.
func CanonicalString(kmer string) string {
	return Decode(CanonicalKey(kmer), len(kmer))
}

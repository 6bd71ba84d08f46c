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

package kvstore

import (
	"encoding/binary"
	"sort"

	"github.com/OneOfOne/xxhash"
	"github.com/zorino/kmercount/pkg/kmer"
)

const (
	MaxCount = 255
)

// Lookuper returns the count of a canonical k-mer key, 0 if absent.
type Lookuper interface {
	Lookup(key uint64) uint8
}

// Record is a raw build input line.
type Record struct {
	Kmer  string
	Count int64
}

// Entry is a stored canonical key and its count.
type Entry struct {
	Key   uint64
	Count uint8
}

// Index maps canonical k-mer keys to saturated counts.
type Index struct {
	kmers map[uint64]uint8
}

func NewIndex() *Index {
	return &Index{kmers: make(map[uint64]uint8)}
}

// Build folds records into a new Index. Later records win on duplicate keys.
func Build(records []Record) *Index {

	idx := NewIndex()

	for _, r := range records {
		idx.Insert(r.Kmer, r.Count)
	}

	return idx

}

// ClampCount saturates count to [0, MaxCount].
func ClampCount(count int64) uint8 {
	if count > MaxCount {
		return MaxCount
	}
	if count < 0 {
		return 0
	}
	return uint8(count)
}

// Insert canonicalizes kmer and stores its clamped count.
// It returns false when the k-mer is empty or longer than kmer.MaxK.
func (idx *Index) Insert(kmerSeq string, count int64) bool {
	if len(kmerSeq) == 0 || len(kmerSeq) > kmer.MaxK {
		return false
	}
	idx.Set(kmer.CanonicalKey(kmerSeq), ClampCount(count))
	return true
}

// Set stores count under an already canonical key, replacing any previous count.
func (idx *Index) Set(key uint64, count uint8) {
	idx.kmers[key] = count
}

// Lookup returns the stored count of key or 0.
func (idx *Index) Lookup(key uint64) uint8 {
	return idx.kmers[key]
}

// LookupKmer canonicalizes kmerSeq and looks it up.
func (idx *Index) LookupKmer(kmerSeq string) uint8 {
	return idx.Lookup(kmer.CanonicalKey(kmerSeq))
}

func (idx *Index) Len() int {
	return len(idx.kmers)
}

// Entries returns all entries sorted by key.
func (idx *Index) Entries() []Entry {

	entries := make([]Entry, 0, len(idx.kmers))
	for k, c := range idx.kmers {
		entries = append(entries, Entry{Key: k, Count: c})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries

}

// Fingerprint is an order independent digest of the entries.
// Two indexes holding the same (key, count) pairs have the same fingerprint.
func (idx *Index) Fingerprint() uint64 {

	var sum uint64
	buf := make([]byte, RecordSize)

	for k, c := range idx.kmers {
		putRecord(buf, k, c)
		sum += xxhash.Checksum64(buf)
	}

	return sum

}

func putRecord(buf []byte, key uint64, count uint8) {
	binary.LittleEndian.PutUint64(buf[:8], key)
	buf[8] = count
}

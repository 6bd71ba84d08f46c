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

package search

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/zorino/kmercount/internal/helper/input"
	"github.com/zorino/kmercount/pkg/kmer"
	"github.com/zorino/kmercount/pkg/kvstore"
)

const (
	KMER_SIZE = 31
)

type QueryStats struct {
	Sequences int64
	Windows   int64
	Skipped   int64
}

// Query looks up the canonical key of every k long window of sequence,
// in order. Sequences shorter than k give no counts.
func Query(idx kvstore.Lookuper, sequence string, k int) []uint8 {

	if k < 1 || k > kmer.MaxK || len(sequence) < k {
		return nil
	}

	counts := make([]uint8, len(sequence)-k+1)
	bitWidth := uint(2 * k)
	mask := kmer.MaskRight(bitWidth)

	// rolling encoding of the current window
	window := kmer.Encode(sequence[:k-1])
	for i := range counts {
		window = (window<<2 | kmer.Encode(sequence[i+k-1:i+k])) & mask
		counts[i] = idx.Lookup(kmer.Canonical(window, bitWidth))
	}

	return counts

}

// WriteCounts writes counts as decimals, each followed by a space, then a newline.
func WriteCounts(w io.Writer, counts []uint8) error {

	line := make([]byte, 0, len(counts)*4+1)
	for _, c := range counts {
		line = strconv.AppendUint(line, uint64(c), 10)
		line = append(line, ' ')
	}
	line = append(line, '\n')

	_, err := w.Write(line)
	return err

}

// QueryLines runs Query on every sequence line of r and writes one line of
// counts per sequence to w. Empty lines and '>' headers are skipped, as are
// sequences shorter than k (with a warning).
func QueryLines(idx kvstore.Lookuper, r io.Reader, w io.Writer, k int) (QueryStats, error) {

	stats := QueryStats{}
	if k < 1 || k > kmer.MaxK {
		return stats, errors.Wrapf(kmer.ErrKOverflow, "k=%d", k)
	}
	bw := bufio.NewWriter(w)

	scanner := input.NewScanner(r)
	for scanner.Scan() {

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(line) < 1 || line[0] == '>' {
			continue
		}

		if len(line) < k {
			log.Printf("Sequence length is less than k: %s", line)
			stats.Skipped++
			continue
		}

		counts := Query(idx, line, k)
		if err := WriteCounts(bw, counts); err != nil {
			return stats, errors.Wrap(err, "writing counts")
		}
		stats.Sequences++
		stats.Windows += int64(len(counts))

	}

	if err := scanner.Err(); err != nil {
		return stats, errors.Wrap(err, "reading query")
	}

	return stats, errors.Wrap(bw.Flush(), "writing counts")

}

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

package makedb

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	cnt "github.com/zorino/counters"
	"github.com/zorino/kmercount/internal/helper/input"
	"github.com/zorino/kmercount/pkg/kmer"
	"github.com/zorino/kmercount/pkg/kvstore"
)

const (
	counterLines     = "lines"
	counterRecords   = "records"
	counterMalformed = "malformed"
	counterInvalid   = "invalid"
	counterSaturated = "saturated"
)

type BuildStats struct {
	Lines     int64
	Records   int64
	Malformed int64
	Invalid   int64
	Saturated int64
}

// ParseRecord parses a "<kmer> <count>" line.
func ParseRecord(line string) (kvstore.Record, bool) {

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return kvstore.Record{}, false
	}

	count, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return kvstore.Record{}, false
	}

	return kvstore.Record{Kmer: fields[0], Count: count}, true

}

// validRecord reports whether the k-mer of r can be indexed.
// In strict mode k-mers holding anything else than ACGT are rejected,
// otherwise those bases are indexed as A.
func validRecord(r kvstore.Record, strict bool) bool {
	if len(r.Kmer) == 0 || len(r.Kmer) > kmer.MaxK {
		return false
	}
	if strict {
		if _, err := kmer.EncodeStrict(r.Kmer); err != nil {
			return false
		}
	}
	return true
}

// BuildIndex reads k-mer count records from r and folds them into a new Index.
// Lines that are not a k-mer / integer pair are skipped.
func BuildIndex(r io.Reader, strict bool) (*kvstore.Index, BuildStats, error) {

	idx := kvstore.NewIndex()
	counter := cnt.NewCounterBox()

	scanner := input.NewScanner(r)
	for scanner.Scan() {

		counter.GetCounter(counterLines).Increment()

		record, ok := ParseRecord(scanner.Text())
		if !ok {
			counter.GetCounter(counterMalformed).Increment()
			continue
		}

		if !validRecord(record, strict) {
			counter.GetCounter(counterInvalid).Increment()
			continue
		}

		if record.Count > kvstore.MaxCount {
			counter.GetCounter(counterSaturated).Increment()
		}

		idx.Insert(record.Kmer, record.Count)
		counter.GetCounter(counterRecords).Increment()

	}

	stats := statsFromCounters(counter.GetCountersMap())
	if err := scanner.Err(); err != nil {
		return nil, stats, errors.Wrap(err, "reading k-mer records")
	}

	return idx, stats, nil

}

func statsFromCounters(counters *sync.Map) BuildStats {

	stats := BuildStats{}

	counters.Range(func(k, v interface{}) bool {
		key, okKey := k.(string)
		item, okValue := v.(cnt.Counter)
		if !okKey || !okValue {
			return true
		}
		switch key {
		case counterLines:
			stats.Lines = item.Value()
		case counterRecords:
			stats.Records = item.Value()
		case counterMalformed:
			stats.Malformed = item.Value()
		case counterInvalid:
			stats.Invalid = item.Value()
		case counterSaturated:
			stats.Saturated = item.Value()
		}
		return true
	})

	return stats

}

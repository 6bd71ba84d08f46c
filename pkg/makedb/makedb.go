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
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zorino/kmercount/internal/helper/duration"
	"github.com/zorino/kmercount/internal/helper/input"
	"github.com/zorino/kmercount/pkg/kvstore"
)

type Options struct {
	// Strict skips k-mers holding bases other than ACGT instead of indexing them as A.
	Strict bool
}

// NewMakedb builds the index of kmerFile and saves it to indexFile.
func NewMakedb(kmerFile string, indexFile string, opts Options) error {

	fmt.Printf("# Making index %s from %s\n", indexFile, kmerFile)
	startTime := time.Now()

	in, err := input.Open(kmerFile)
	if err != nil {
		return err
	}
	defer in.Close()

	idx, stats, err := BuildIndex(in, opts.Strict)
	if err != nil {
		return err
	}

	fmt.Printf("# Read %s lines, indexed %s records (%s malformed, %s invalid, %s saturated)\n",
		humanize.Comma(stats.Lines),
		humanize.Comma(stats.Records),
		humanize.Comma(stats.Malformed),
		humanize.Comma(stats.Invalid),
		humanize.Comma(stats.Saturated))

	if err := idx.SaveFile(indexFile); err != nil {
		return err
	}

	fmt.Printf("# Saved %s canonical k-mers (%s) in %s\n",
		humanize.Comma(int64(idx.Len())),
		humanize.Bytes(uint64(idx.Len()*kvstore.RecordSize)),
		duration.FmtDuration(time.Since(startTime)))

	return nil

}

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
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/zorino/kmercount/internal/helper/duration"
	"github.com/zorino/kmercount/internal/helper/input"
	"github.com/zorino/kmercount/pkg/kmer"
	"github.com/zorino/kmercount/pkg/kvstore"
)

// NewSearch queries every sequence of queryFile against the index at
// indexPath (index file or store directory) and writes counts to outputFile.
func NewSearch(indexPath string, queryFile string, outputFile string, k int) error {

	if k < 1 || k > kmer.MaxK {
		return errors.Wrapf(kmer.ErrKOverflow, "k=%d", k)
	}

	fmt.Printf("# Loading index %s\n", indexPath)
	startTime := time.Now()

	idx, closer, err := kvstore.Open(indexPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	in, err := input.Open(queryFile)
	if err != nil {
		return errors.Wrap(err, "could not open query file")
	}
	defer in.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrapf(err, "could not open output file %s", outputFile)
	}

	stats, err := QueryLines(idx, in, out, k)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", outputFile)
	}

	fmt.Printf("# Queried %s sequences (%s k-mers, %s skipped) in %s\n",
		humanize.Comma(stats.Sequences),
		humanize.Comma(stats.Windows),
		humanize.Comma(stats.Skipped),
		duration.FmtDuration(time.Since(startTime)))

	return nil

}

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

package exportdb

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/zorino/kmercount/internal/helper/duration"
	"github.com/zorino/kmercount/pkg/kvstore"
)

// NewExport copies the index file into a badger store at dbPath,
// replacing what the store held before.
func NewExport(indexFile string, dbPath string) error {

	startTime := time.Now()

	idx, err := kvstore.LoadFile(indexFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dbPath, 0700); err != nil {
		return errors.Wrapf(err, "creating %s", dbPath)
	}

	fmt.Printf("# Exporting %s k-mers from %s to %s\n", humanize.Comma(int64(idx.Len())), indexFile, dbPath)

	kv, err := kvstore.OpenStore(dbPath, false)
	if err != nil {
		return err
	}

	if err := kv.ImportIndex(idx); err != nil {
		kv.Close()
		return err
	}

	if err := kv.Close(); err != nil {
		return errors.Wrap(err, "closing store")
	}

	fmt.Printf("# Export done [%s]\n", duration.FmtDuration(time.Since(startTime)))

	return nil

}

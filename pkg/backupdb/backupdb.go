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

package backupdb

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/zorino/kmercount/pkg/kvstore"
)

// Backupdb writes a full backup of the store at dbPath to the file output.
func Backupdb(dbPath string, output string) error {

	kv, err := kvstore.OpenStore(dbPath, true)
	if err != nil {
		return err
	}
	defer kv.Close()

	return Backup(kv, output)

}

func Backup(kv *kvstore.KVStore, bckFile string) error {

	f, err := os.Create(bckFile)
	if err != nil {
		return errors.Wrapf(err, "creating %s", bckFile)
	}

	fmt.Printf("# Backup %s\n", bckFile)
	if err := kv.Backup(f); err != nil {
		f.Close()
		return err
	}

	fi, err := f.Stat()
	if err == nil {
		fmt.Printf("# Backup size %s\n", humanize.Bytes(uint64(fi.Size())))
	}

	return errors.Wrapf(f.Close(), "closing %s", bckFile)

}

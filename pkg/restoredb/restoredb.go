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

package restoredb

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/zorino/kmercount/pkg/gcdb"
	"github.com/zorino/kmercount/pkg/kvstore"
)

// RestoreDB loads the backup file into a store created at output.
func RestoreDB(backupFile string, output string) error {

	if _, err := os.Stat(output); err == nil {
		return errors.Errorf("restore directory %s already exists", output)
	}
	if err := os.MkdirAll(output, 0700); err != nil {
		return errors.Wrapf(err, "creating %s", output)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return errors.Wrapf(err, "opening %s", backupFile)
	}
	defer f.Close()

	fmt.Printf("# Restoring %s into %s\n", backupFile, output)
	if err := kvstore.RestoreStore(f, output); err != nil {
		return err
	}

	return gcdb.NewGC(output, 10, 0.5)

}

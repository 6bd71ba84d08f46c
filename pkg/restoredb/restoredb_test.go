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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorino/kmercount/pkg/backupdb"
	"github.com/zorino/kmercount/pkg/exportdb"
	"github.com/zorino/kmercount/pkg/kvstore"
)

func TestExportBackupRestore(t *testing.T) {
	dir := t.TempDir()
	indexFile := filepath.Join(dir, "index.bin")
	storeDir := filepath.Join(dir, "kmer_store")
	backupFile := filepath.Join(dir, "kmer_store.bdg")
	restoredDir := filepath.Join(dir, "restored")

	idx := kvstore.Build([]kvstore.Record{
		{Kmer: "ACGTACGTACGTACGTACGTACGTACGTACG", Count: 5},
		{Kmer: "GATTACA", Count: 40},
	})
	require.NoError(t, idx.SaveFile(indexFile))

	require.NoError(t, exportdb.NewExport(indexFile, storeDir))
	require.NoError(t, backupdb.Backupdb(storeDir, backupFile))
	require.NoError(t, RestoreDB(backupFile, restoredDir))

	kv, err := kvstore.OpenStore(restoredDir, true)
	require.NoError(t, err)
	defer kv.Close()

	back, err := kv.Index()
	require.NoError(t, err)
	assert.Equal(t, idx.Entries(), back.Entries())

	assert.Error(t, RestoreDB(backupFile, restoredDir))
}
